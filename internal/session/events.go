package session

import "time"

// EventType identifies the kind of session event.
type EventType string

const (
	EventSessionStart    EventType = "session_start"
	EventSessionEnd      EventType = "session_complete"
	EventEvaluationStart EventType = "evaluation_start"
	EventCriterionResult EventType = "criterion_result"
	EventEvaluationEnd   EventType = "evaluation_complete"
	EventProcessInput    EventType = "process_input"
	EventError           EventType = "error"
)

// Event is a single timestamped entry in a session log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// SessionStartData returns event data for a session start.
func SessionStartData(sourceCount, workers int) map[string]any {
	return map[string]any{
		"source_count": sourceCount,
		"workers":      workers,
	}
}

// SessionCompleteData returns event data for a session end.
func SessionCompleteData(evaluated, passed, failed, errors int, durationMs int64) map[string]any {
	return map[string]any{
		"evaluated":   evaluated,
		"passed":      passed,
		"failed":      failed,
		"errors":      errors,
		"duration_ms": durationMs,
	}
}

// EvaluationStartData returns event data for the start of one evaluation.
func EvaluationStartData(source string, num, total int) map[string]any {
	return map[string]any{
		"source": source,
		"num":    num,
		"total":  total,
	}
}

// EvaluationCompleteData returns event data for a finished evaluation.
func EvaluationCompleteData(source string, score, maxScore int, passed bool, durationMs int64) map[string]any {
	return map[string]any{
		"source":      source,
		"score":       score,
		"max_score":   maxScore,
		"passed":      passed,
		"duration_ms": durationMs,
	}
}

// CriterionResultData returns event data for one criterion verdict.
func CriterionResultData(source, criterion string, passed bool, description string) map[string]any {
	return map[string]any{
		"source":      source,
		"criterion":   criterion,
		"passed":      passed,
		"description": description,
	}
}

// ProcessInputData returns event data for a captured process input payload.
func ProcessInputData(payload any) map[string]any {
	return map[string]any{
		"payload": payload,
	}
}

// ErrorData returns event data for an error.
func ErrorData(message string, details map[string]any) map[string]any {
	d := map[string]any{
		"message": message,
	}
	for k, v := range details {
		d[k] = v
	}
	return d
}
