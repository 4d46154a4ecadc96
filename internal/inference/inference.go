// Package inference wraps the text-generation service every analysis stage
// depends on. Callers see a single Capability interface plus a small error
// taxonomy; the OpenAI-backed implementation lives in openai.go.
package inference

import (
	"context"
	"errors"
	"fmt"
)

// Task identifies which analysis the capability should run. The set is closed:
// stages are known at build time, so there is no dynamic registry.
type Task string

const (
	TaskRiskAssessment   Task = "risk-assessment"
	TaskMoodAnalysis     Task = "mood-analysis"
	TaskPromptGeneration Task = "prompt-generation"
	TaskPatternDetection Task = "pattern-detection"
	TaskEntryInsights    Task = "entry-insights"
)

// Capability is the opaque, fallible inference dependency. Implementations
// must honor ctx cancellation and return a classified *Error on failure.
type Capability interface {
	Invoke(ctx context.Context, task Task, input string) (string, error)
}

// Kind classifies a capability failure.
type Kind int

const (
	KindUnavailable Kind = iota
	KindTimeout
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindMalformed:
		return "malformed-output"
	default:
		return "unavailable"
	}
}

// Error is the failure type surfaced by Capability implementations.
type Error struct {
	Task Task
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("inference %s: %s", e.Task, e.Kind)
	}
	return fmt.Sprintf("inference %s: %s: %v", e.Task, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err as a classified inference failure.
func NewError(task Task, kind Kind, err error) *Error {
	return &Error{Task: task, Kind: kind, Err: err}
}

func isKind(err error, kind Kind) bool {
	var ie *Error
	return errors.As(err, &ie) && ie.Kind == kind
}

// IsTimeout reports whether err is an inference timeout.
func IsTimeout(err error) bool { return isKind(err, KindTimeout) }

// IsUnavailable reports whether err is a service-unavailable failure.
func IsUnavailable(err error) bool { return isKind(err, KindUnavailable) }

// IsMalformed reports whether err is a malformed-output failure.
func IsMalformed(err error) bool { return isKind(err, KindMalformed) }
