// Package reporting renders rubric score reports for people (checklists,
// summary tables, interpretation) and machines (JSON, YAML, JUnit XML).
// Nothing in this package modifies a report.
package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spboyer/explaincheck/internal/batch"
	"github.com/spboyer/explaincheck/internal/rubric"
	"gopkg.in/yaml.v3"
)

// Document is the machine-readable shape of one evaluated source.
type Document struct {
	Source   string        `json:"source" yaml:"source"`
	Checks   OrderedChecks `json:"checks,omitempty" yaml:"checks,omitempty"`
	Score    int           `json:"score" yaml:"score"`
	MaxScore int           `json:"max_score" yaml:"max_score"`
	Passed   bool          `json:"passed" yaml:"passed"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// OrderedChecks encodes as an object keyed by criterion id, keeping
// evaluation order.
type OrderedChecks []rubric.CriterionResult

// MarshalJSON implements json.Marshaler.
func (oc OrderedChecks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range oc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(c.ID))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler.
func (oc OrderedChecks) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range oc {
		var val yaml.Node
		if err := val.Encode(c); err != nil {
			return nil, fmt.Errorf("encoding check %s: %w", c.ID, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(c.ID)},
			&val)
	}
	return node, nil
}

// NewDocument converts a report for source into its encodable form.
func NewDocument(source string, r *rubric.ScoreReport) Document {
	return Document{
		Source:   source,
		Checks:   OrderedChecks(r.Checks),
		Score:    r.Score,
		MaxScore: r.MaxScore,
		Passed:   r.Passed,
	}
}

// NewDocuments converts batch results, recording unreadable sources with
// their error instead of checks.
func NewDocuments(results []batch.Result) []Document {
	docs := make([]Document, 0, len(results))
	for _, res := range results {
		if res.Report == nil {
			msg := "not evaluated"
			if res.Err != nil {
				msg = res.Err.Error()
			}
			docs = append(docs, Document{Source: res.Source, MaxScore: rubric.MaxScore(), Error: msg})
			continue
		}
		docs = append(docs, NewDocument(res.Source, res.Report))
	}
	return docs
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	return enc.Close()
}
