package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/spboyer/explaincheck/internal/batch"
	"github.com/spboyer/explaincheck/internal/dataset"
	"github.com/spboyer/explaincheck/internal/discovery"
	"github.com/spboyer/explaincheck/internal/projectconfig"
	"github.com/spboyer/explaincheck/internal/reporting"
	"github.com/spboyer/explaincheck/internal/rubric"
	"github.com/spboyer/explaincheck/internal/session"
	"github.com/spboyer/explaincheck/internal/source"
	"github.com/spboyer/explaincheck/internal/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// stdinName is the source name given to text read from standard input.
const stdinName = "stdin"

var outputFormats = []string{"text", "json", "yaml", "junit"}

type evaluateOptions struct {
	files       []string
	dirs        []string
	exts        []string
	csvPath     string
	csvColumn   string
	csvID       string
	interactive bool
	format      string
	workers     int
	verbose     bool
	sessionLog  bool
	junitPath   string
}

func newEvaluateCommand() *cobra.Command {
	var opts evaluateOptions

	cmd := &cobra.Command{
		Use:   "evaluate [file...]",
		Short: "Score explanations against the rubric",
		Long: `Score one or more explanations against the four-part rubric.

Explanations are read from the given files, from every matching file under
--dir, and from the rows of a --csv dataset. Use "-" (or no inputs at all)
to read a single explanation from standard input, or --interactive to type
or paste one into a multi-line editor.

Exit codes:
  0  every explanation passed
  1  at least one explanation failed the rubric
  2  an input could not be read, or another error occurred`,
		Example: `  explaincheck evaluate docs/explain-cache.md
  cat answer.txt | explaincheck evaluate --format json
  explaincheck evaluate -f a.md -f b.md --workers 8 --junit results.xml
  explaincheck evaluate --dir docs/explanations --ext md
  explaincheck evaluate --csv answers.csv --csv-column answer --csv-id question_id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}
			applyEvaluateDefaults(cmd, &opts, cfg)
			return runEvaluate(cmd, args, opts, cfg)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.files, "file", "f", nil, "Explanation file to evaluate (repeatable)")
	cmd.Flags().StringArrayVar(&opts.dirs, "dir", nil, "Evaluate every explanation file under this directory (repeatable)")
	cmd.Flags().StringSliceVar(&opts.exts, "ext", nil, "File extensions searched by --dir (default .md, .markdown, .txt)")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "Evaluate each row of this CSV file")
	cmd.Flags().StringVar(&opts.csvColumn, "csv-column", dataset.DefaultTextColumn, "CSV column holding the explanation text")
	cmd.Flags().StringVar(&opts.csvID, "csv-id", "", "CSV column used to name each row")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Enter the explanation in an editor")
	cmd.Flags().StringVar(&opts.format, "format", projectconfig.DefaultFormat, "Output format: text | json | yaml | junit")
	cmd.Flags().IntVar(&opts.workers, "workers", projectconfig.DefaultWorkers, "Maximum number of explanations evaluated concurrently")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show which rules fired for each criterion")
	cmd.Flags().BoolVar(&opts.sessionLog, "session-log", false, "Record the run as a session log")
	cmd.Flags().StringVar(&opts.junitPath, "junit", "", "Also write JUnit XML results to this path")

	return cmd
}

// applyEvaluateDefaults fills options the user did not set on the command
// line from the project config.
func applyEvaluateDefaults(cmd *cobra.Command, opts *evaluateOptions, cfg *projectconfig.ProjectConfig) {
	flags := cmd.Flags()
	if !flags.Changed("format") {
		opts.format = cfg.Defaults.Format
	}
	if !flags.Changed("workers") {
		opts.workers = cfg.Defaults.Workers
	}
	if !flags.Changed("verbose") {
		opts.verbose = cfg.Verbose()
	}
	if !flags.Changed("session-log") {
		opts.sessionLog = cfg.SessionLog()
	}
}

func runEvaluate(cmd *cobra.Command, args []string, opts evaluateOptions, cfg *projectconfig.ProjectConfig) error {
	if !slices.Contains(outputFormats, opts.format) {
		return fmt.Errorf("unknown format %q (want one of %v)", opts.format, outputFormats)
	}

	sources, err := collectSources(cmd, args, opts)
	if err != nil {
		return err
	}

	logger, err := openSessionLogger(opts.sessionLog, cfg.Session.Dir, cfg.CompressSessions())
	if err != nil {
		return err
	}
	defer func() {
		if err := logger.Close(); err != nil {
			slog.Warn("Closing session log failed", "error", err)
		}
	}()

	runOpts, stopProgress := startProgress(cmd.ErrOrStderr(), len(sources))
	start := time.Now()
	results, err := batch.Run(cmd.Context(), sources, opts.workers, runOpts...)
	stopProgress()
	if err != nil {
		return fmt.Errorf("evaluation interrupted: %w", err)
	}
	recordSession(logger, results, opts.workers, time.Since(start))

	if err := writeResults(cmd, results, opts); err != nil {
		return err
	}

	if opts.junitPath != "" {
		if err := reporting.WriteJUnitXML(results, start, opts.junitPath); err != nil {
			return fmt.Errorf("writing JUnit results: %w", err)
		}
		slog.Debug("Wrote JUnit results", "path", opts.junitPath)
	}

	return verdict(results)
}

// collectSources turns positional arguments, --file, --dir and --csv
// values and the interactive flag into sources, in that order.
func collectSources(cmd *cobra.Command, args []string, opts evaluateOptions) ([]source.Source, error) {
	paths := append(slices.Clone(args), opts.files...)

	if opts.interactive {
		if len(paths) > 0 || len(opts.dirs) > 0 || opts.csvPath != "" {
			return nil, errors.New("--interactive cannot be combined with other inputs")
		}
		text, err := promptExplanation(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return nil, fmt.Errorf("reading explanation: %w", err)
		}
		return []source.Source{source.Literal(stdinName, text)}, nil
	}

	if len(paths) == 0 && len(opts.dirs) == 0 && opts.csvPath == "" {
		paths = []string{"-"}
	}

	var (
		sources  []source.Source
		sawStdin bool
	)
	for _, p := range paths {
		if p != "-" {
			sources = append(sources, source.File(p))
			continue
		}
		if sawStdin {
			return nil, errors.New(`standard input ("-") can only be read once`)
		}
		sawStdin = true
		sources = append(sources, source.Reader(stdinName, cmd.InOrStdin()))
	}

	for _, dir := range opts.dirs {
		found, err := discovery.Discover(dir, opts.exts)
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", dir, err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no explanation files found under %s", dir)
		}
		slog.Debug("Discovered explanation files", "dir", dir, "count", len(found))
		for _, p := range found {
			sources = append(sources, source.File(p))
		}
	}

	if opts.csvPath != "" {
		records, err := dataset.LoadCSV(opts.csvPath, opts.csvColumn, opts.csvID)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			sources = append(sources, source.Literal(r.Name, r.Text))
		}
	}

	return sources, nil
}

// startProgress shows a progress line on w when it is a terminal and more
// than one explanation is evaluated. The returned func stops it.
func startProgress(w io.Writer, total int) ([]batch.Option, func()) {
	f, ok := w.(*os.File)
	if !ok || total < 2 || !term.IsTerminal(int(f.Fd())) {
		return nil, func() {}
	}
	p := spinner.Start(f, total)
	return []batch.Option{batch.WithProgress(func(batch.Result) { p.Advance() })}, p.Stop
}

func openSessionLogger(enabled bool, dir string, compressed bool) (session.Logger, error) {
	if !enabled {
		return session.NopLogger{}, nil
	}
	l, err := session.NewJSONLogger(session.DefaultLogPath(dir, compressed))
	if err != nil {
		return nil, err
	}
	slog.Debug("Recording session", "path", l.Path())
	return l, nil
}

// recordSession writes the lifecycle of a finished batch to l. Logging
// failures are reported but never fail the evaluation.
func recordSession(l session.Logger, results []batch.Result, workers int, elapsed time.Duration) {
	logEvent := func(t session.EventType, data map[string]any) {
		if err := l.Log(session.NewEvent(t, data)); err != nil {
			slog.Warn("Writing session event failed", "type", t, "error", err)
		}
	}

	logEvent(session.EventSessionStart, session.SessionStartData(len(results), workers))

	var passed, failed, errored int
	for i, res := range results {
		logEvent(session.EventEvaluationStart, session.EvaluationStartData(res.Source, i+1, len(results)))

		if res.Report == nil {
			errored++
			msg := "not evaluated"
			if res.Err != nil {
				msg = res.Err.Error()
			}
			logEvent(session.EventError, session.ErrorData(msg, map[string]any{"source": res.Source}))
			continue
		}

		for _, c := range res.Report.Checks {
			logEvent(session.EventCriterionResult, session.CriterionResultData(res.Source, c.ID.String(), c.Passed, c.Description))
		}
		logEvent(session.EventEvaluationEnd, session.EvaluationCompleteData(
			res.Source, res.Report.Score, res.Report.MaxScore, res.Report.Passed, res.DurationMs))

		if res.Report.Passed {
			passed++
		} else {
			failed++
		}
	}

	logEvent(session.EventSessionEnd, session.SessionCompleteData(
		passed+failed, passed, failed, errored, elapsed.Milliseconds()))
}

func writeResults(cmd *cobra.Command, results []batch.Result, opts evaluateOptions) error {
	w := cmd.OutOrStdout()

	switch opts.format {
	case "json":
		return reporting.WriteJSON(w, documentsFor(results))
	case "yaml":
		return reporting.WriteYAML(w, documentsFor(results))
	case "junit":
		return reporting.WriteJUnit(w, results, time.Now())
	}

	writeTextResults(w, cmd.ErrOrStderr(), results, opts.verbose)
	return nil
}

// documentsFor returns a single document for one source and a list
// otherwise.
func documentsFor(results []batch.Result) any {
	docs := reporting.NewDocuments(results)
	if len(docs) == 1 {
		return docs[0]
	}
	return docs
}

//nolint:errcheck // display-only writes; errors are not actionable
func writeTextResults(w, errW io.Writer, results []batch.Result, verbose bool) {
	for _, res := range results {
		if res.Report == nil {
			fmt.Fprintf(errW, "⚠️  %v\n", res.Err)
			continue
		}
		writeChecklistFor(w, res, verbose)
	}

	if len(results) > 1 {
		reporting.WriteSummaryTable(w, results)
		fmt.Fprint(w, reporting.FormatSummaryReport(batch.History(results).Summary()))
	}
}

// writeChecklistFor prints a single result, omitting the source line for
// standard input.
func writeChecklistFor(w io.Writer, res batch.Result, verbose bool) {
	name := res.Source
	if name == stdinName {
		name = ""
	}
	reporting.WriteChecklist(w, name, res.Report, verbose)
}

// verdict maps batch results to the command's error: unreadable inputs are
// errors, a failed rubric is a RubricFailureError.
func verdict(results []batch.Result) error {
	if err := batch.Errors(results); err != nil {
		return err
	}

	var failed []string
	for _, res := range results {
		if !res.Report.Passed {
			failed = append(failed, res.Source)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &RubricFailureError{
		Message: fmt.Sprintf("%d of %d explanation(s) failed the rubric (max score %d)", len(failed), len(results), rubric.MaxScore()),
	}
}
