// Package capture persists raw process input (typically a hook's JSON
// payload on stdin) to a session log for offline inspection. It shares no
// data model with the rubric evaluator.
package capture

//go:generate go tool mockgen -destination=logger_mock_test.go -package=capture github.com/spboyer/explaincheck/internal/session Logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/explaincheck/internal/session"
)

var (
	// ErrEmptyInput is returned when the input holds no JSON document.
	ErrEmptyInput = errors.New("no input to capture")
	// ErrInvalidJSON is returned when the input is not exactly one JSON document.
	ErrInvalidJSON = errors.New("input is not a valid JSON document")
)

// Envelope holds the well-known fields of a hook payload. All fields are
// optional; unknown fields stay in the captured payload untouched.
type Envelope struct {
	SessionID     string `mapstructure:"session_id"`
	HookEventName string `mapstructure:"hook_event_name"`
	ToolName      string `mapstructure:"tool_name"`
	Cwd           string `mapstructure:"cwd"`
}

// Capture reads a single JSON document from r and appends it to l as a
// process_input event. It returns the decoded envelope of the payload.
func Capture(r io.Reader, l session.Logger) (*Envelope, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading process input: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyInput
	}

	payload, err := decodePayload(raw)
	if err != nil {
		return nil, err
	}

	env := DecodeEnvelope(payload)
	slog.Debug("Captured process input",
		"bytes", len(raw),
		"session_id", env.SessionID,
		"hook_event_name", env.HookEventName,
		"tool_name", env.ToolName)

	if err := l.Log(session.NewEvent(session.EventProcessInput, session.ProcessInputData(payload))); err != nil {
		return nil, fmt.Errorf("logging process input: %w", err)
	}
	return env, nil
}

func decodePayload(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidJSON)
	}
	return payload, nil
}

// DecodeEnvelope extracts the well-known fields from payload. Payloads
// that are not JSON objects, or whose fields have unexpected shapes, yield
// an empty or partial envelope.
func DecodeEnvelope(payload any) *Envelope {
	env := &Envelope{}
	m, ok := payload.(map[string]any)
	if !ok {
		return env
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           env,
	})
	if err != nil {
		return env
	}
	if err := dec.Decode(m); err != nil {
		slog.Debug("Partial process input envelope", "error", err)
	}
	return env
}
