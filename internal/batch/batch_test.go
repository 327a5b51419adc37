package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spboyer/explaincheck/internal/rubric"
	"github.com/spboyer/explaincheck/internal/source"
	"github.com/stretchr/testify/require"
)

func TestRun_PreservesOrder(t *testing.T) {
	var sources []source.Source
	for i := range 20 {
		text := "plain text"
		if i%2 == 0 {
			text = "Note that this is tricky."
		}
		sources = append(sources, source.Literal(fmt.Sprintf("src-%02d", i), text))
	}

	results, err := Run(context.Background(), sources, 3)
	require.NoError(t, err)
	require.Len(t, results, 20)

	for i, r := range results {
		require.Equal(t, fmt.Sprintf("src-%02d", i), r.Source)
		require.NoError(t, r.Err)
		require.NotNil(t, r.Report)

		c, ok := r.Report.Check(rubric.CriterionGotcha)
		require.True(t, ok)
		require.Equal(t, i%2 == 0, c.Passed)
	}
	require.NoError(t, Errors(results))
}

func TestRun_UnreadableSourceDoesNotStopOthers(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	sources := []source.Source{
		source.Literal("ok", "Imagine a queue."),
		source.File(missing),
		source.Literal("empty", ""),
	}

	results, err := Run(context.Background(), sources, 0)
	require.NoError(t, err)

	require.NotNil(t, results[0].Report)
	require.Nil(t, results[1].Report)
	require.NotNil(t, results[2].Report)

	var unavailable *source.InputUnavailableError
	require.True(t, errors.As(results[1].Err, &unavailable))
	require.True(t, errors.As(Errors(results), &unavailable))

	h := History(results)
	require.Len(t, h.Entries, 2)
	require.Equal(t, 2, h.Summary().Failed)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, []source.Source{source.Literal("a", "x"), source.Literal("b", "y")}, 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, r := range results {
		require.Nil(t, r.Report)
		require.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRun_Empty(t *testing.T) {
	results, err := Run(context.Background(), nil, 2)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestRun_WithProgress(t *testing.T) {
	sources := []source.Source{
		source.Literal("a", "Imagine a queue."),
		source.Literal("b", ""),
		source.File(filepath.Join(t.TempDir(), "missing.md")),
	}

	var calls atomic.Int32
	results, err := Run(context.Background(), sources, 2, WithProgress(func(Result) {
		calls.Add(1)
	}))
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.EqualValues(t, 3, calls.Load())
}

func TestRun_SingleSourceReturnsNoError(t *testing.T) {
	results, err := Run(context.Background(), []source.Source{source.Literal("a", "Note that x")}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Report)
}

func TestRun_CancelAfterSchedulingKeepsResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sources := []source.Source{source.Literal("a", "Imagine a queue.")}
	results, err := Run(ctx, sources, 1, WithProgress(func(Result) { cancel() }))
	require.NoError(t, err)
	require.NotNil(t, results[0].Report)
	require.NoError(t, Errors(results))
}
