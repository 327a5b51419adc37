package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/explaincheck/internal/rubric"
	"github.com/spboyer/explaincheck/internal/statistics"
)

var nextStepHints = map[rubric.CriterionID]string{
	rubric.CriterionAnalogy:     `Open with an analogy ("think of it as…", "like a…", "imagine…").`,
	rubric.CriterionDiagram:     "Add an ASCII or box-drawing diagram spanning at least two lines.",
	rubric.CriterionWalkthrough: "Walk through the code using at least two kinds of sequencing (ordinal words, a numbered or bulleted list, \"after that\").",
	rubric.CriterionGotcha:      `Call out a gotcha ("common mistake", "watch out", "note that…").`,
}

// NextSteps returns one plain-language hint per failed criterion, in
// evaluation order.
func NextSteps(r *rubric.ScoreReport) []string {
	var steps []string
	for _, id := range r.Failed() {
		if hint, ok := nextStepHints[id]; ok {
			steps = append(steps, hint)
		}
	}
	return steps
}

// InterpretPassRate returns a human-readable explanation of a pass rate (0–1).
func InterpretPassRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct >= 100:
		return fmt.Sprintf("All explanations passed (%.0f%%)", pct)
	case pct >= 80:
		return fmt.Sprintf("Most explanations passed (%.0f%%)", pct)
	case pct >= 50:
		return fmt.Sprintf("About half the explanations passed (%.0f%%)", pct)
	default:
		return fmt.Sprintf("Few explanations passed (%.0f%%)", pct)
	}
}

// FormatSummaryReport produces a plain-language summary of a history.
func FormatSummaryReport(s rubric.HistorySummary) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")
	if s.Evaluated == 0 {
		b.WriteString("No explanations were evaluated.\n")
		return b.String()
	}

	rate := float64(s.Passed) / float64(s.Evaluated)
	b.WriteString(fmt.Sprintf("Pass Rate:  %s\n", InterpretPassRate(rate)))
	b.WriteString(fmt.Sprintf("Evaluated:  %d passed, %d failed out of %d\n", s.Passed, s.Failed, s.Evaluated))
	if s.Evaluated > 1 {
		ci := statistics.ScoreCI(s.Scores, 0.95)
		b.WriteString(fmt.Sprintf("Mean Score: %.2f/%d (95%% CI %.2f–%.2f)\n", ci.Mean, rubric.MaxScore(), ci.Lower, ci.Upper))
	}

	b.WriteString("\nPer-Criterion:\n")
	for _, c := range rubric.Criteria() {
		n := s.CriterionPasses[c.ID]
		b.WriteString(fmt.Sprintf("  %s %s %d/%d\n", mark(n == s.Evaluated), padRight(CriterionTitle(c.ID)+":", 12), n, s.Evaluated))
	}

	return b.String()
}
