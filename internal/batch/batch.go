// Package batch evaluates many explanation sources concurrently.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spboyer/explaincheck/internal/rubric"
	"github.com/spboyer/explaincheck/internal/source"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when Run is given a non-positive worker count.
const DefaultWorkers = 4

// Result is the outcome for one source. Exactly one of Report and Err is
// set.
type Result struct {
	Source     string
	Report     *rubric.ScoreReport
	Err        error
	DurationMs int64
}

// Option configures Run.
type Option func(*options)

type options struct {
	onResult func(Result)
}

// WithProgress calls fn after each source finishes. fn may be called
// concurrently from several workers.
func WithProgress(fn func(Result)) Option {
	return func(o *options) { o.onResult = fn }
}

// Run evaluates every source with at most workers concurrent reads.
// Results are returned in input order. A source that cannot be read gets
// its error in Result.Err and does not stop the others; the returned error
// is non-nil only when ctx is done before all sources were scheduled.
func Run(ctx context.Context, sources []source.Source, workers int, opts ...Option) ([]Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	results := make([]Result, len(sources))

	var g errgroup.Group
	g.SetLimit(workers)

	scheduled := 0
	for i, src := range sources {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = evaluateOne(src)
			if o.onResult != nil {
				o.onResult(results[i])
			}
			return nil
		})
		scheduled++
	}

	// Workers never return errors.
	_ = g.Wait()

	if scheduled < len(sources) {
		err := ctx.Err()
		for i := scheduled; i < len(sources); i++ {
			results[i] = Result{Source: sources[i].Name(), Err: err}
		}
		return results, err
	}
	return results, nil
}

func evaluateOne(src source.Source) Result {
	start := time.Now()
	text, err := src.Read()
	if err != nil {
		slog.Debug("Skipping unreadable source", "source", src.Name(), "error", err)
		return Result{Source: src.Name(), Err: err, DurationMs: time.Since(start).Milliseconds()}
	}

	report := rubric.Evaluate(text)
	slog.Debug("Evaluated explanation", "source", src.Name(), "score", report.Score, "passed", report.Passed)

	return Result{Source: src.Name(), Report: report, DurationMs: time.Since(start).Milliseconds()}
}

// Errors joins the per-source errors of results, or returns nil.
func Errors(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// History records every evaluated result into a new caller-owned history.
func History(results []Result) *rubric.History {
	h := &rubric.History{}
	for _, r := range results {
		if r.Report != nil {
			h.Add(r.Source, r.Report)
		}
	}
	return h
}
