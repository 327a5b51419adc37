package main

import (
	"fmt"

	"github.com/spboyer/explaincheck/internal/batch"
	"github.com/spboyer/explaincheck/internal/reporting"
	"github.com/spboyer/explaincheck/internal/source"
	"github.com/spf13/cobra"
)

func newSamplesCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Score the built-in sample explanations",
		Long: `Score the three built-in sample explanations: one complete, one without a
diagram and one without a gotcha. Useful as a demonstration of the rubric
and as a smoke test of an installation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSamples(cmd, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show which rules fired for each criterion")

	return cmd
}

func runSamples(cmd *cobra.Command, verbose bool) error {
	samples := source.Samples()
	sources := make([]source.Source, len(samples))
	for i, s := range samples {
		sources[i] = s.Source()
	}

	results, err := batch.Run(cmd.Context(), sources, len(sources))
	if err != nil {
		return fmt.Errorf("evaluating samples: %w", err)
	}

	w := cmd.OutOrStdout()
	var mismatched []string
	for i, res := range results {
		if res.Report == nil {
			return fmt.Errorf("evaluating sample %q: %w", res.Source, res.Err)
		}
		reporting.WriteChecklist(w, res.Source, res.Report, verbose)
		if res.Report.Passed != samples[i].WantPassed {
			mismatched = append(mismatched, res.Source)
		}
	}
	reporting.WriteSummaryTable(w, results)

	if len(mismatched) > 0 {
		return fmt.Errorf("samples scored differently than expected: %v", mismatched)
	}
	return nil
}
