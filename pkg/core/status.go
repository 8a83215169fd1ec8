package core

import (
	"fmt"
	"strings"
)

// Outcome is the overall result of a test-suite run as reported by the
// external test runner.
type Outcome int

const (
	OutcomeUnknown Outcome = iota // Runner not invoked
	OutcomePassed                 // Runner exited with status 0
	OutcomeFailed                 // Runner exited non-zero or could not start
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsSuccess returns true only for OutcomePassed.
func (o Outcome) IsSuccess() bool {
	return o == OutcomePassed
}

// OutcomeFromExitCode maps a process exit status to an Outcome.
func OutcomeFromExitCode(code int) Outcome {
	if code == 0 {
		return OutcomePassed
	}
	return OutcomeFailed
}

// ParseOutcome parses "passed"/"pass"/"success" and "failed"/"fail"/"failure".
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "passed", "pass", "success", "ok":
		return OutcomePassed, nil
	case "failed", "fail", "failure":
		return OutcomeFailed, nil
	case "", "unknown":
		return OutcomeUnknown, nil
	}
	return OutcomeUnknown, fmt.Errorf("invalid outcome %q (want passed or failed)", s)
}
