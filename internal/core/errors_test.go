package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&EmptyInputError{Op: "metrics.Aggregate"}, "metrics.Aggregate: no items to process"},
		{&TimeoutError{Op: "llm.Generate", Budget: 2 * time.Minute}, "llm.Generate timed out after 2m0s"},
		{&ExtractionError{Reason: "no JSON payload found"}, "json extraction failed: no JSON payload found"},
	}
	for _, tc := range cases {
		if tc.err.Error() != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, tc.err.Error())
		}
	}
}

func TestGenerationExhaustedErrorUnwraps(t *testing.T) {
	cause := errors.New("rate limited")
	err := &GenerationExhaustedError{Models: []string{"a", "b"}, LastErr: cause}
	if !errors.Is(err, cause) {
		t.Error("Expected the last attempt error to be unwrappable")
	}
	if !strings.Contains(err.Error(), "2 candidate models") {
		t.Errorf("Expected the attempt count in the message, got %q", err.Error())
	}
}

func TestProviderErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := &ProviderError{Op: "youtube.ListItems", Retryable: true, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("Expected the provider cause to be unwrappable")
	}
}

func TestClassificationErrorUnwraps(t *testing.T) {
	cause := &GenerationExhaustedError{Models: []string{"a"}}
	err := &ClassificationError{Strategy: "generative", Err: cause}
	var exhausted *GenerationExhaustedError
	if !errors.As(err, &exhausted) {
		t.Error("Expected the exhaustion cause to be reachable through errors.As")
	}
}
