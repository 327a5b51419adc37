package main

import (
	"fmt"
	"log/slog"

	"github.com/spboyer/explaincheck/internal/capture"
	"github.com/spboyer/explaincheck/internal/session"
	"github.com/spf13/cobra"
)

func newCaptureCommand() *cobra.Command {
	var logPath string

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Append a JSON document from stdin to a log",
		Long: `Read one JSON document from standard input and append it, with a
timestamp, as a line of the capture log. Intended to run as a tool hook.

A log path ending in .zst is written as zstd-compressed frames. Capture
logs are not listed by "explaincheck session list"; view one with
"explaincheck session view <file>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("log") {
				cfg, err := loadProjectConfig()
				if err != nil {
					return err
				}
				logPath = cfg.Capture.LogPath
			}
			return runCapture(cmd, logPath)
		},
	}
	cmd.Flags().StringVar(&logPath, "log", "", "Capture log path (default from .explaincheck.yaml)")

	return cmd
}

func runCapture(cmd *cobra.Command, logPath string) (err error) {
	l, err := session.NewJSONLogger(logPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := l.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing capture log: %w", cerr)
		}
	}()

	env, err := capture.Capture(cmd.InOrStdin(), l)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	slog.Debug("Appended process input", "path", l.Path(), "hook_event_name", env.HookEventName)
	return nil
}
