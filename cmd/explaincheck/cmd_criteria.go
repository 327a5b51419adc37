package main

import (
	"fmt"

	"github.com/spboyer/explaincheck/internal/reporting"
	"github.com/spboyer/explaincheck/internal/rubric"
	"github.com/spf13/cobra"
)

type criterionJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newCriteriaCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "criteria",
		Short: "List the rubric criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := rubric.Criteria()
			w := cmd.OutOrStdout()

			switch format {
			case "json":
				out := make([]criterionJSON, 0, len(criteria))
				for _, c := range criteria {
					out = append(out, criterionJSON{ID: c.ID.String(), Name: reporting.CriterionTitle(c.ID), Description: c.Description})
				}
				return reporting.WriteJSON(w, out)
			case "text":
				for _, c := range criteria {
					if _, err := fmt.Fprintf(w, "%-12s %s\n", c.ID, c.Description); err != nil {
						return err
					}
				}
				_, err := fmt.Fprintf(w, "\nAn explanation passes only when all %d criteria are met.\n", rubric.MaxScore())
				return err
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text | json")

	return cmd
}
