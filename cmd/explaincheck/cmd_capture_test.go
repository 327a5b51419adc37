package main

import (
	"path/filepath"
	"testing"

	"github.com/spboyer/explaincheck/internal/capture"
	"github.com/spboyer/explaincheck/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hookPayload = `{"session_id":"abc","hook_event_name":"PostToolUse","tool_name":"Edit"}`

func TestCapture_AppendsToLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "capture.jsonl")

	_, err := runCommand(t, hookPayload, "capture", "--log", logPath)
	require.NoError(t, err)
	_, err = runCommand(t, `{"n": 2}`, "capture", "--log", logPath)
	require.NoError(t, err)

	events, err := session.ReadEvents(logPath)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, session.EventProcessInput, events[0].Type)

	payload, ok := events[0].Data["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "PostToolUse", payload["hook_event_name"])
}

func TestCapture_Compressed(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "capture.jsonl.zst")

	_, err := runCommand(t, hookPayload, "capture", "--log", logPath)
	require.NoError(t, err)

	events, err := session.ReadEvents(logPath)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestCapture_DefaultLogPath(t *testing.T) {
	_, err := runCommand(t, hookPayload, "capture")
	require.NoError(t, err)

	events, err := session.ReadEvents(filepath.Join(".explaincheck", "capture.jsonl"))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestCapture_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "  \n", capture.ErrEmptyInput},
		{"malformed", "{not json", capture.ErrInvalidJSON},
		{"two documents", "{} {}", capture.ErrInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "capture.jsonl")
			_, err := runCommand(t, tt.input, "capture", "--log", logPath)
			require.ErrorIs(t, err, tt.want)

			events, err := session.ReadEvents(logPath)
			require.NoError(t, err)
			assert.Empty(t, events)
		})
	}
}
