package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spboyer/explaincheck/internal/session"
	"github.com/spf13/cobra"
)

func newSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "View and manage session logs",
		Long: `View and manage session event logs.

Session logs are NDJSON files written by "evaluate --session-log" and by
"capture". They record each evaluation, every criterion result and any
unreadable input. Logs ending in .zst are zstd-compressed.`,
	}

	cmd.AddCommand(newSessionListCommand())
	cmd.AddCommand(newSessionViewCommand())

	return cmd
}

func newSessionListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded session logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				cfg, err := loadProjectConfig()
				if err != nil {
					return err
				}
				dir = cfg.Session.Dir
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			files, err := session.ListSessions(absDir)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("listing sessions: %w", err)
			}

			if len(files) == 0 {
				fmt.Fprintln(w, "No session logs found.") //nolint:errcheck
				return nil
			}

			fmt.Fprintf(w, "%-40s %-8s %s\n", "File", "Events", "Modified") //nolint:errcheck
			fmt.Fprintln(w, "─────────────────────────────────────────────────────────────────") //nolint:errcheck
			for _, f := range files {
				fmt.Fprintf(w, "%-40s %-8d %s\n", f.Name, f.NumEvents, f.ModTime.Format("2006-01-02 15:04:05")) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to search for session logs (default from .explaincheck.yaml)")

	return cmd
}

func newSessionViewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <session-file>",
		Short: "View a session timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := session.ReadEvents(args[0])
			if err != nil {
				return fmt.Errorf("reading session: %w", err)
			}

			session.RenderTimeline(cmd.OutOrStdout(), events)
			return nil
		},
	}

	return cmd
}
