package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/spboyer/explaincheck/internal/rubric"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "explanation.txt")
	require.NoError(t, os.WriteFile(path, []byte("Imagine a queue."), 0644))

	src := File(path)
	require.Equal(t, path, src.Name())

	text, err := src.Read()
	require.NoError(t, err)
	require.Equal(t, "Imagine a queue.", text)
}

func TestFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	_, err := File(path).Read()
	require.Error(t, err)

	var unavailable *InputUnavailableError
	require.True(t, errors.As(err, &unavailable))
	require.Equal(t, path, unavailable.Source)
	require.True(t, errors.Is(err, fs.ErrNotExist))
	require.Contains(t, err.Error(), "input unavailable")
}

func TestReader(t *testing.T) {
	src := Reader("stdin", strings.NewReader("line one\nline two"))
	require.Equal(t, "stdin", src.Name())

	text, err := src.Read()
	require.NoError(t, err)
	require.Equal(t, "line one\nline two", text)
}

func TestReader_Error(t *testing.T) {
	boom := errors.New("boom")

	_, err := Reader("stdin", iotest.ErrReader(boom)).Read()

	var unavailable *InputUnavailableError
	require.True(t, errors.As(err, &unavailable))
	require.ErrorIs(t, err, boom)
}

func TestLiteral(t *testing.T) {
	text, err := Literal("inline", "").Read()
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestSamples(t *testing.T) {
	samples := Samples()
	require.Len(t, samples, 3)

	for _, s := range samples {
		t.Run(s.Title, func(t *testing.T) {
			text, err := s.Source().Read()
			require.NoError(t, err)
			require.Equal(t, s.WantPassed, rubric.Evaluate(text).Passed)
		})
	}

	missingDiagram := rubric.Evaluate(samples[1].Text)
	c, _ := missingDiagram.Check(rubric.CriterionDiagram)
	require.False(t, c.Passed)
	require.Equal(t, 3, missingDiagram.Score)

	missingGotcha := rubric.Evaluate(samples[2].Text)
	c, _ = missingGotcha.Check(rubric.CriterionGotcha)
	require.False(t, c.Passed)
	c, _ = missingGotcha.Check(rubric.CriterionDiagram)
	require.True(t, c.Passed)
}
