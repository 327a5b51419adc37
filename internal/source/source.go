// Package source supplies explanation text to the evaluator from files,
// readers and in-memory literals.
package source

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Source yields the text of one explanation.
type Source interface {
	// Name identifies the source in reports, e.g. a file path or "stdin".
	Name() string
	// Read returns the full text. Failures are reported as
	// *InputUnavailableError.
	Read() (string, error)
}

// InputUnavailableError indicates that a source could not be read. The text
// was never evaluated.
type InputUnavailableError struct {
	Source string
	Err    error
}

func (e *InputUnavailableError) Error() string {
	return fmt.Sprintf("input unavailable: %s: %v", e.Source, e.Err)
}

func (e *InputUnavailableError) Unwrap() error { return e.Err }

type fileSource struct {
	path string
}

// File returns a Source that reads the file at path.
func File(path string) Source {
	return &fileSource{path: path}
}

func (f *fileSource) Name() string { return f.path }

func (f *fileSource) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", &InputUnavailableError{Source: f.path, Err: err}
	}
	slog.Debug("Read explanation", "source", f.path, "bytes", len(data))
	return string(data), nil
}

type readerSource struct {
	name string
	r    io.Reader
}

// Reader returns a Source that reads r to EOF. It can be read only once.
func Reader(name string, r io.Reader) Source {
	return &readerSource{name: name, r: r}
}

func (rs *readerSource) Name() string { return rs.name }

func (rs *readerSource) Read() (string, error) {
	data, err := io.ReadAll(rs.r)
	if err != nil {
		return "", &InputUnavailableError{Source: rs.name, Err: err}
	}
	slog.Debug("Read explanation", "source", rs.name, "bytes", len(data))
	return string(data), nil
}

type literalSource struct {
	name string
	text string
}

// Literal returns a Source for text already held in memory.
func Literal(name, text string) Source {
	return &literalSource{name: name, text: text}
}

func (l *literalSource) Name() string          { return l.name }
func (l *literalSource) Read() (string, error) { return l.text, nil }
