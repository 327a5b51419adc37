package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spboyer/explaincheck/internal/projectconfig"
	"github.com/spboyer/explaincheck/internal/validation"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explaincheck",
		Short: "explaincheck - score code explanations against a teaching rubric",
		Long: `explaincheck is a command-line tool that scores a code explanation
against a fixed four-part rubric: an analogy, an ASCII diagram, a
step-by-step walkthrough, and a gotcha. An explanation passes only when
all four are present.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newSamplesCommand())
	cmd.AddCommand(newCaptureCommand())
	cmd.AddCommand(newCriteriaCommand())
	cmd.AddCommand(newSessionCommand())

	return cmd
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCommand().ExecuteContext(ctx)
}

// loadProjectConfig loads .explaincheck.yaml from the working directory or
// one of its parents, validating it against the config schema.
func loadProjectConfig() (*projectconfig.ProjectConfig, error) {
	cfg, err := projectconfig.Load(".", validation.ValidateConfigBytes)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		slog.Debug("Loaded project config", "path", cfg.Path)
	}
	return cfg, nil
}
