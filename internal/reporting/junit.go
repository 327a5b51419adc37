package reporting

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spboyer/explaincheck/internal/batch"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one evaluated source.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one criterion of one source.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

// JUnitFailure represents a criterion that was not satisfied.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents a source that could not be evaluated.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts batch results to JUnit XML, one suite per source
// and one test case per criterion.
func ConvertToJUnit(results []batch.Result, timestamp time.Time) *JUnitTestSuites {
	out := &JUnitTestSuites{}
	for _, res := range results {
		suite := convertResult(res, timestamp)
		out.Tests += suite.Tests
		out.Failures += suite.Failures
		out.Errors += suite.Errors
		out.Time += suite.Time
		out.TestSuites = append(out.TestSuites, suite)
	}
	return out
}

func convertResult(res batch.Result, timestamp time.Time) JUnitTestSuite {
	durationSec := float64(res.DurationMs) / 1000.0
	suite := JUnitTestSuite{
		Name:      res.Source,
		Time:      durationSec,
		Timestamp: timestamp.Format(time.RFC3339),
	}

	if res.Report == nil {
		msg := "not evaluated"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		suite.Tests = 1
		suite.Errors = 1
		suite.TestCases = []JUnitTestCase{{
			Name:      "read",
			Classname: res.Source,
			Error:     &JUnitError{Message: msg, Type: "InputUnavailable"},
		}}
		return suite
	}

	r := res.Report
	suite.Properties = []JUnitProperty{
		{Name: "score", Value: fmt.Sprintf("%d/%d", r.Score, r.MaxScore)},
		{Name: "passed", Value: fmt.Sprint(r.Passed)},
	}
	for _, c := range r.Checks {
		tc := JUnitTestCase{
			Name:      string(c.ID),
			Classname: res.Source,
		}
		if !c.Passed {
			suite.Failures++
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("%s: %s", c.ID, c.Description),
				Type:    "CriterionFailure",
				Body:    strings.Join(c.Details, "\n"),
			}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}
	suite.Tests = len(suite.TestCases)
	return suite
}

// WriteJUnit encodes batch results as an indented JUnit XML document.
func WriteJUnit(w io.Writer, results []batch.Result, timestamp time.Time) error {
	data, err := xml.MarshalIndent(ConvertToJUnit(results, timestamp), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	output = append(output, '\n')
	_, err = w.Write(output)
	return err
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(results []batch.Result, timestamp time.Time, path string) error {
	var buf bytes.Buffer
	if err := WriteJUnit(&buf, results, timestamp); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
