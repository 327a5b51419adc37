package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/explaincheck/internal/batch"
	"github.com/spboyer/explaincheck/internal/rubric"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const ruleWidth = 60

var titleCaser = cases.Title(language.English)

// CriterionTitle returns the display name of a criterion, e.g. "Analogy".
func CriterionTitle(id rubric.CriterionID) string {
	return titleCaser.String(string(id))
}

// WriteChecklist renders r as a pass/fail checklist. With verbose set each
// criterion is followed by its diagnostic details.
//
//nolint:errcheck // display-only writes; errors are not actionable
func WriteChecklist(w io.Writer, source string, r *rubric.ScoreReport, verbose bool) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", ruleWidth))
	fmt.Fprintln(w, "EXPLANATION RUBRIC RESULTS")
	if source != "" {
		fmt.Fprintf(w, "Source: %s\n", source)
	}
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", ruleWidth))

	status := "✗ FAILED"
	if r.Passed {
		status = "✓ PASSED"
	}
	fmt.Fprintf(w, "\nOverall Status: %s\n", status)
	fmt.Fprintf(w, "Score: %d/%d\n", r.Score, r.MaxScore)
	fmt.Fprintln(w, "\nDetailed Checks:")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", ruleWidth))

	nameWidth := 0
	for _, c := range r.Checks {
		if sw := runewidth.StringWidth(CriterionTitle(c.ID) + ":"); sw > nameWidth {
			nameWidth = sw
		}
	}

	for _, c := range r.Checks {
		fmt.Fprintf(w, "%s %s %s\n", mark(c.Passed), padRight(CriterionTitle(c.ID)+":", nameWidth), c.Description)
		if verbose {
			for _, d := range c.Details {
				fmt.Fprintf(w, "    %s\n", d)
			}
		}
	}

	if steps := NextSteps(r); len(steps) > 0 {
		fmt.Fprintln(w, "\nNext Steps:")
		for _, s := range steps {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", ruleWidth))
}

// WriteSummaryTable renders one row per batch result with a mark for every
// criterion.
//
//nolint:errcheck // display-only writes; errors are not actionable
func WriteSummaryTable(w io.Writer, results []batch.Result) {
	const maxNameWidth = 40
	const minNameWidth = 10
	const colScore = 7
	const colCheck = 12

	nameWidth := runewidth.StringWidth("Source")
	for _, r := range results {
		if sw := runewidth.StringWidth(r.Source); sw > nameWidth {
			nameWidth = sw
		}
	}
	nameWidth = min(max(nameWidth, minNameWidth), maxNameWidth)

	criteria := rubric.Criteria()
	totalWidth := nameWidth + colScore + colCheck*len(criteria) + 2*(len(criteria)+1) + len("Status")

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("═", totalWidth))
	fmt.Fprintln(w, " RUBRIC SUMMARY")
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("═", totalWidth))

	header := []string{padRight("Source", nameWidth), padRight("Score", colScore)}
	for _, c := range criteria {
		header = append(header, padRight(CriterionTitle(c.ID), colCheck))
	}
	header = append(header, "Status")
	fmt.Fprintln(w, strings.Join(header, "  "))
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", totalWidth))

	for _, r := range results {
		row := []string{padRight(truncateName(r.Source, nameWidth), nameWidth)}
		if r.Report == nil {
			row = append(row, padRight("—", colScore))
			for range criteria {
				row = append(row, padRight("—", colCheck))
			}
			row = append(row, "⚠️ unreadable")
			fmt.Fprintln(w, strings.Join(row, "  "))
			continue
		}

		row = append(row, padRight(fmt.Sprintf("%d/%d", r.Report.Score, r.Report.MaxScore), colScore))
		for _, c := range criteria {
			res, _ := r.Report.Check(c.ID)
			row = append(row, padRight(mark(res.Passed), colCheck))
		}
		status := "❌ failed"
		if r.Report.Passed {
			status = "✅ passed"
		}
		row = append(row, status)
		fmt.Fprintln(w, strings.Join(row, "  "))
	}
	fmt.Fprintln(w)
}

func mark(passed bool) string {
	if passed {
		return "✓"
	}
	return "✗"
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
