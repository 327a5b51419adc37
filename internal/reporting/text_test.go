package reporting

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spboyer/explaincheck/internal/batch"
	"github.com/spboyer/explaincheck/internal/rubric"
	"github.com/stretchr/testify/assert"
)

func TestCriterionTitle(t *testing.T) {
	assert.Equal(t, "Analogy", CriterionTitle(rubric.CriterionAnalogy))
	assert.Equal(t, "Walkthrough", CriterionTitle(rubric.CriterionWalkthrough))
}

func TestWriteChecklist_Passed(t *testing.T) {
	var buf bytes.Buffer
	WriteChecklist(&buf, "a.md", rubric.Evaluate(completeText), false)

	out := buf.String()
	assert.Contains(t, out, "Source: a.md")
	assert.Contains(t, out, "Overall Status: ✓ PASSED")
	assert.Contains(t, out, "Score: 4/4")
	assert.Contains(t, out, "✓ Analogy:     Contains an analogy or comparison")
	assert.Contains(t, out, "✓ Walkthrough: Includes step-by-step code explanation")
	assert.NotContains(t, out, "Next Steps")
	assert.NotContains(t, out, "matched:")
}

func TestWriteChecklist_FailedVerbose(t *testing.T) {
	var buf bytes.Buffer
	WriteChecklist(&buf, "", rubric.Evaluate("Note that this is tricky."), true)

	out := buf.String()
	assert.NotContains(t, out, "Source:")
	assert.Contains(t, out, "Overall Status: ✗ FAILED")
	assert.Contains(t, out, "Score: 1/4")
	assert.Contains(t, out, "✗ Diagram:     Contains ASCII diagram or visual representation")
	assert.Contains(t, out, "    no diagram lines (need 2)")
	assert.Contains(t, out, "    matched: note that")
	assert.Contains(t, out, "Next Steps:")
}

func TestWriteChecklist_DoesNotModifyReport(t *testing.T) {
	r := rubric.Evaluate(completeText)
	before := *r
	before.Checks = append([]rubric.CriterionResult(nil), r.Checks...)

	var buf bytes.Buffer
	WriteChecklist(&buf, "a.md", r, true)

	assert.Equal(t, before, *r)
}

func TestWriteSummaryTable(t *testing.T) {
	results := []batch.Result{
		{Source: "complete.md", Report: rubric.Evaluate(completeText)},
		{Source: "thin.md", Report: rubric.Evaluate("Imagine a queue.")},
		{Source: "missing.md", Err: errors.New("gone")},
	}

	var buf bytes.Buffer
	WriteSummaryTable(&buf, results)

	out := buf.String()
	assert.Contains(t, out, "RUBRIC SUMMARY")
	assert.Contains(t, out, "complete.md")
	assert.Contains(t, out, "4/4")
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "✅ passed")
	assert.Contains(t, out, "❌ failed")
	assert.Contains(t, out, "⚠️ unreadable")
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short", 10))
	assert.Equal(t, "abcd…", truncateName("abcdefgh", 5))
}
