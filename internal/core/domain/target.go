// Package domain holds the core types of the orcdev development loop.
package domain

// Target identifies one independently buildable project directory together
// with the fixed command that builds it.
type Target struct {
	Name    string
	Dir     string
	Command []string
}

// Outcome is the terminal state of one build invocation.
type Outcome uint8

const (
	// OutcomeSucceeded indicates the build command exited zero.
	OutcomeSucceeded Outcome = iota
	// OutcomeFailed indicates the build command exited non-zero without
	// being cancelled.
	OutcomeFailed
	// OutcomeSuperseded indicates the invocation was cancelled because a
	// newer build request for the same target arrived before completion.
	// Its exit status is irrelevant and its side effects are suppressed.
	OutcomeSuperseded
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}
