// Package rubric scores an explanation against the explaining-code rubric:
// an analogy, a diagram, a step-by-step walkthrough and a gotcha warning.
//
// Every detector is a syntactic pattern matcher over precompiled
// expressions. Evaluate is a pure function and safe for concurrent use.
package rubric

// CriterionID is a stable rubric criterion identifier used in output and
// downstream processing.
type CriterionID string

const (
	CriterionAnalogy     CriterionID = "analogy"
	CriterionDiagram     CriterionID = "diagram"
	CriterionWalkthrough CriterionID = "walkthrough"
	CriterionGotcha      CriterionID = "gotcha"
)

func (id CriterionID) String() string { return string(id) }

// Criterion is a single rubric rule.
type Criterion struct {
	ID          CriterionID
	Description string
	// Detect reports whether the text satisfies the criterion.
	Detect func(text string) bool

	details func(text string) []string
}

// CriterionResult holds the outcome of one criterion for one text.
type CriterionResult struct {
	// ID identifies the criterion that produced this result.
	ID CriterionID `json:"-" yaml:"-"`
	// Passed indicates whether the criterion was satisfied.
	Passed bool `json:"passed" yaml:"passed"`
	// Description is the human-readable rule description.
	Description string `json:"description" yaml:"description"`
	// Details lists supporting diagnostics such as the patterns that fired.
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// ScoreReport is the result of evaluating every criterion against one text.
type ScoreReport struct {
	// Checks holds one result per criterion in evaluation order.
	Checks   []CriterionResult
	Score    int
	MaxScore int
	// Passed is true only when every criterion passed.
	Passed bool
}

// Check returns the result for id.
func (r *ScoreReport) Check(id CriterionID) (CriterionResult, bool) {
	for _, c := range r.Checks {
		if c.ID == id {
			return c, true
		}
	}
	return CriterionResult{}, false
}

// Failed returns the ids of the criteria that did not pass, in evaluation
// order.
func (r *ScoreReport) Failed() []CriterionID {
	var ids []CriterionID
	for _, c := range r.Checks {
		if !c.Passed {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

var criteria = []Criterion{
	{
		ID:          CriterionAnalogy,
		Description: "Contains an analogy or comparison",
		Detect:      DetectAnalogy,
		details:     analogyDetails,
	},
	{
		ID:          CriterionDiagram,
		Description: "Contains ASCII diagram or visual representation",
		Detect:      DetectDiagram,
		details:     diagramDetails,
	},
	{
		ID:          CriterionWalkthrough,
		Description: "Includes step-by-step code explanation",
		Detect:      DetectWalkthrough,
		details:     walkthroughDetails,
	},
	{
		ID:          CriterionGotcha,
		Description: "Mentions common mistakes or misconceptions",
		Detect:      DetectGotcha,
		details:     gotchaDetails,
	},
}

// Criteria returns the rubric in evaluation order. The returned slice is a
// copy and may be modified by the caller.
func Criteria() []Criterion {
	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return out
}

// MaxScore is the score of an explanation that satisfies every criterion.
func MaxScore() int { return len(criteria) }

// Evaluate scores text against every criterion. It never fails: empty or
// unstructured input simply yields a low score.
func Evaluate(text string) *ScoreReport {
	report := &ScoreReport{
		Checks:   make([]CriterionResult, 0, len(criteria)),
		MaxScore: len(criteria),
	}
	for _, c := range criteria {
		passed := c.Detect(text)
		if passed {
			report.Score++
		}
		report.Checks = append(report.Checks, CriterionResult{
			ID:          c.ID,
			Passed:      passed,
			Description: c.Description,
			Details:     c.details(text),
		})
	}
	report.Passed = report.Score == report.MaxScore
	return report
}
