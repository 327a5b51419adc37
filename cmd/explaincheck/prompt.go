package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// promptExplanation is a test hook for replacing the interactive editor in
// tests. It returns the entered explanation text.
var promptExplanation = defaultPromptExplanation

// defaultPromptExplanation opens a multi-line editor when in is a terminal
// and otherwise reads in until EOF.
func defaultPromptExplanation(in io.Reader, out io.Writer) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var text string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Explanation").
				Description("Paste or type the explanation to evaluate.").
				Lines(12).
				Value(&text),
		),
	).WithInput(in).WithOutput(out).Run()
	if err != nil {
		return "", fmt.Errorf("interactive input: %w", err)
	}
	return text, nil
}
