package rubric

// HistoryEntry records one evaluated source.
type HistoryEntry struct {
	Source string
	Report *ScoreReport
}

// History is a caller-owned record of evaluations. Evaluate never reads or
// writes it; callers append explicitly.
type History struct {
	Entries []HistoryEntry
}

// Add appends a report computed by the caller.
func (h *History) Add(source string, report *ScoreReport) {
	h.Entries = append(h.Entries, HistoryEntry{Source: source, Report: report})
}

// HistorySummary aggregates a History.
type HistorySummary struct {
	Evaluated int
	Passed    int
	Failed    int
	// CriterionPasses counts passes per criterion across all entries.
	CriterionPasses map[CriterionID]int
	// Scores holds each entry's score in recording order.
	Scores []int
}

// Summary totals the recorded reports.
func (h *History) Summary() HistorySummary {
	s := HistorySummary{CriterionPasses: make(map[CriterionID]int, len(criteria))}
	for _, c := range criteria {
		s.CriterionPasses[c.ID] = 0
	}
	for _, e := range h.Entries {
		if e.Report == nil {
			continue
		}
		s.Evaluated++
		s.Scores = append(s.Scores, e.Report.Score)
		if e.Report.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		for _, c := range e.Report.Checks {
			if c.Passed {
				s.CriterionPasses[c.ID]++
			}
		}
	}
	return s
}
