package core

import (
	"fmt"
	"time"
)

// EmptyInputError reports an aggregation call with nothing to aggregate.
// It is fatal to that call and never retried.
type EmptyInputError struct {
	Op string // Operation that received the empty input
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no items to process", e.Op)
}

// ClassificationError reports a strategy-specific classification failure.
// Callers with a documented fallback recover it locally.
type ClassificationError struct {
	Strategy string // Strategy that failed ("keyword" or "generative")
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%s classification failed: %v", e.Strategy, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// ExtractionError reports model output that could not be parsed as JSON.
// The orchestrator treats it like any other model failure and moves to the
// next candidate.
type ExtractionError struct {
	Reason string // Why extraction failed
	Err    error  // Underlying parse error, if any
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("json extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("json extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// GenerationExhaustedError reports that every candidate model failed.
type GenerationExhaustedError struct {
	Models  []string // Models attempted, in order
	LastErr error    // Failure of the final attempt
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("all %d candidate models failed (last: %v)", len(e.Models), e.LastErr)
}

func (e *GenerationExhaustedError) Unwrap() error { return e.LastErr }

// TimeoutError reports a sub-operation that exceeded its deadline. It is
// surfaced distinctly from exhaustion so callers can tell "too slow" from
// "all models broken".
type TimeoutError struct {
	Op     string        // Operation that timed out
	Budget time.Duration // Deadline budget that was exceeded
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Op, e.Budget)
}

// ProviderError reports an external content-source failure. It is not
// locally recoverable and propagates upward with its cause preserved.
type ProviderError struct {
	Op        string // Provider operation that failed
	Retryable bool   // Hint whether the caller may retry (quota, transient network)
	Err       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("content provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
