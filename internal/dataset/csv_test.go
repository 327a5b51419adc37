package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "explanations.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV_DefaultColumn(t *testing.T) {
	path := writeCSV(t, "topic,explanation\ncache,\"Think of it as a shelf.\nNote that it expires.\"\nqueue,Imagine a line.\n")

	recs, err := LoadCSV(path, "", "")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, path+"#1", recs[0].Name)
	assert.Equal(t, "Think of it as a shelf.\nNote that it expires.", recs[0].Text)
	assert.Equal(t, path+"#2", recs[1].Name)
}

func TestLoadCSV_IDColumn(t *testing.T) {
	path := writeCSV(t, "id,body\nq1,first\nq2,second\n")

	recs, err := LoadCSV(path, "body", "id")
	require.NoError(t, err)
	assert.Equal(t, []Record{{Name: "q1", Text: "first"}, {Name: "q2", Text: "second"}}, recs)
}

func TestLoadCSV_EmptyIDSkipsRow(t *testing.T) {
	path := writeCSV(t, "id,explanation\nq1,first\n,second\n")

	recs, err := LoadCSV(path, "", "id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Equal(t, []Record{{Name: "q1", Text: "first"}}, recs)
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		text    string
		id      string
		wantErr string
	}{
		{"empty file", "", "", "", "empty"},
		{"missing text column", "a,b\n1,2\n", "", "", `no "explanation" column`},
		{"missing id column", "explanation\nx\n", "", "key", `no "key" column`},
		{"ragged rows", "explanation,id\nx\n", "", "", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(writeCSV(t, tt.content), tt.text, tt.id)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "none.csv"), "", "")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	recs, err := LoadCSV(writeCSV(t, "explanation\n"), "", "")
	require.NoError(t, err)
	assert.Empty(t, recs)
}
