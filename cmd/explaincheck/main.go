package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Every explanation passed the rubric
	ExitRubricFailed = 1 // One or more explanations failed the rubric
	ExitError        = 2 // Configuration, input or runtime error
)

// RubricFailureError indicates that evaluation ran successfully, but one
// or more explanations did not satisfy every criterion.
type RubricFailureError struct {
	Message string
}

func (e *RubricFailureError) Error() string {
	return e.Message
}

func main() {
	os.Exit(exitCode(execute()))
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(os.Stderr, err)

	var rubricErr *RubricFailureError
	if errors.As(err, &rubricErr) {
		return ExitRubricFailed
	}

	// All other errors are configuration/runtime errors
	return ExitError
}
