package reporting

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spboyer/explaincheck/internal/batch"
	"github.com/spboyer/explaincheck/internal/rubric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTimestamp = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestResults() []batch.Result {
	return []batch.Result{
		{Source: "complete.md", Report: rubric.Evaluate(completeText), DurationMs: 1500},
		{Source: "thin.md", Report: rubric.Evaluate("Imagine a queue."), DurationMs: 500},
		{Source: "missing.md", Err: errors.New("input unavailable: missing.md")},
	}
}

func TestConvertToJUnit_Structure(t *testing.T) {
	suites := ConvertToJUnit(newTestResults(), testTimestamp)

	assert.Equal(t, 9, suites.Tests)
	assert.Equal(t, 3, suites.Failures)
	assert.Equal(t, 1, suites.Errors)
	assert.InDelta(t, 2.0, suites.Time, 0.001)
	require.Len(t, suites.TestSuites, 3)

	s := suites.TestSuites[0]
	assert.Equal(t, "complete.md", s.Name)
	assert.Equal(t, 4, s.Tests)
	assert.Equal(t, 0, s.Failures)
	assert.Equal(t, "2025-06-15T12:00:00Z", s.Timestamp)
}

func TestConvertToJUnit_FailedCriterion(t *testing.T) {
	suites := ConvertToJUnit(newTestResults(), testTimestamp)
	s := suites.TestSuites[1]

	require.Len(t, s.TestCases, 4)
	assert.Nil(t, s.TestCases[0].Failure)

	tc := s.TestCases[1]
	assert.Equal(t, "diagram", tc.Name)
	assert.Equal(t, "thin.md", tc.Classname)
	require.NotNil(t, tc.Failure)
	assert.Equal(t, "CriterionFailure", tc.Failure.Type)
	assert.Contains(t, tc.Failure.Message, "Contains ASCII diagram")
	assert.Contains(t, tc.Failure.Body, "no diagram lines")
}

func TestConvertToJUnit_Properties(t *testing.T) {
	suites := ConvertToJUnit(newTestResults(), testTimestamp)

	props := map[string]string{}
	for _, p := range suites.TestSuites[1].Properties {
		props[p.Name] = p.Value
	}
	assert.Equal(t, "1/4", props["score"])
	assert.Equal(t, "false", props["passed"])
}

func TestConvertToJUnit_ErrorTestCase(t *testing.T) {
	suites := ConvertToJUnit(newTestResults(), testTimestamp)
	s := suites.TestSuites[2]

	require.Len(t, s.TestCases, 1)
	require.NotNil(t, s.TestCases[0].Error)
	assert.Equal(t, "InputUnavailable", s.TestCases[0].Error.Type)
	assert.Contains(t, s.TestCases[0].Error.Message, "missing.md")
}

func TestConvertToJUnit_Empty(t *testing.T) {
	suites := ConvertToJUnit(nil, testTimestamp)
	assert.Equal(t, 0, suites.Tests)
	assert.Empty(t, suites.TestSuites)
}

func TestWriteJUnitXML_ValidXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xml")

	require.NoError(t, WriteJUnitXML(newTestResults(), testTimestamp, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))

	var parsed JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &parsed))
	assert.Equal(t, 9, parsed.Tests)
	assert.Len(t, parsed.TestSuites, 3)
}
