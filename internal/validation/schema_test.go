package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validConfigYAML = `defaults:
  format: junit
  workers: 8
  verbose: true
  session_log: false
capture:
  log_path: .explaincheck/capture.jsonl.zst
session:
  dir: .explaincheck/sessions
  compress: true
`

func hasLocation(errs []string, loc string) bool {
	for _, e := range errs {
		if strings.HasPrefix(e, loc+":") {
			return true
		}
	}
	return false
}

func TestValidateConfigBytes_Valid(t *testing.T) {
	errs := ValidateConfigBytes([]byte(validConfigYAML))
	require.Empty(t, errs, "valid config should have no errors")
}

func TestValidateConfigBytes_Empty(t *testing.T) {
	require.Empty(t, ValidateConfigBytes(nil))
	require.Empty(t, ValidateConfigBytes([]byte("# nothing configured\n")))
}

func TestValidateConfigBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		loc  string
	}{
		{"unknown format", "defaults:\n  format: html\n", "/defaults/format"},
		{"zero workers", "defaults:\n  workers: 0\n", "/defaults/workers"},
		{"string workers", "defaults:\n  workers: many\n", "/defaults/workers"},
		{"non-bool verbose", "defaults:\n  verbose: [1]\n", "/defaults/verbose"},
		{"empty log path", "capture:\n  log_path: \"\"\n", "/capture/log_path"},
		{"unknown top-level key", "engine: mock\n", "/"},
		{"unknown nested key", "session:\n  ttl: 5\n", "/session"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateConfigBytes([]byte(tt.yaml))
			require.NotEmpty(t, errs)
			require.True(t, hasLocation(errs, tt.loc), "expected an error at %s, got %v", tt.loc, errs)
		})
	}
}

func TestValidateConfigBytes_ParseError(t *testing.T) {
	errs := ValidateConfigBytes([]byte("defaults: [unclosed\n"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestConvertToJSONCompatible(t *testing.T) {
	in := map[any]any{1: []any{map[any]any{"k": "v"}}}
	out := convertToJSONCompatible(in)

	m, ok := out.(map[string]any)
	require.True(t, ok)
	list, ok := m["1"].([]any)
	require.True(t, ok)
	inner, ok := list[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "v", inner["k"])
}
