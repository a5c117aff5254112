package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"tubelens/internal/core"
	"tubelens/test/mocks"
)

func TestGenerateFallsBackInOrder(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			if model == "model-a" {
				return "", errors.New("overloaded")
			}
			return "```json\n{\"winner\": \"" + model + "\"}\n```", nil
		},
	}
	orch := NewOrchestrator(backend, []string{"model-a", "model-b", "model-c"}, time.Minute)

	result, err := orch.Generate(context.Background(), "prompt", map[string]string{"winner": ""})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Model != "model-b" {
		t.Errorf("Expected model-b to win, got %s", result.Model)
	}
	if backend.Calls() != 2 {
		t.Errorf("Expected 2 attempts (no third call after success), got %d", backend.Calls())
	}
	if backend.Models[0] != "model-a" || backend.Models[1] != "model-b" {
		t.Errorf("Expected strict attempt order, got %v", backend.Models)
	}
}

func TestGenerateEmptyChainFailsWithoutNetwork(t *testing.T) {
	backend := &mocks.MockBackend{}
	orch := NewOrchestrator(backend, nil, time.Minute)

	_, err := orch.Generate(context.Background(), "prompt", nil)
	if err == nil {
		t.Fatal("Expected error for an empty model chain")
	}
	var exhausted *core.GenerationExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Expected GenerationExhaustedError, got %T", err)
	}
	if backend.Calls() != 0 {
		t.Errorf("Expected no backend calls, got %d", backend.Calls())
	}
}

func TestGenerateExhaustsWholeChain(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			return "", errors.New("down")
		},
	}
	orch := NewOrchestrator(backend, []string{"a", "b", "c"}, time.Minute)

	_, err := orch.Generate(context.Background(), "prompt", nil)
	var exhausted *core.GenerationExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Expected GenerationExhaustedError, got %v", err)
	}
	if backend.Calls() != 3 {
		t.Errorf("Expected each model to be tried exactly once, got %d calls", backend.Calls())
	}
	if exhausted.LastErr == nil || exhausted.LastErr.Error() != "down" {
		t.Errorf("Expected the last attempt error to be kept, got %v", exhausted.LastErr)
	}
}

func TestGenerateMalformedJSONCountsAsFailure(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			if model == "garbler" {
				return "no json here", nil
			}
			return "```json\n{\"value\": 1}\n```", nil
		},
	}
	orch := NewOrchestrator(backend, []string{"garbler", "clean"}, time.Minute)

	result, err := orch.Generate(context.Background(), "prompt", map[string]int{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Model != "clean" {
		t.Errorf("Expected fallback past the garbled model, got %s", result.Model)
	}
}

func TestGenerateTimesOut(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(5 * time.Second):
				return "too late", nil
			}
		},
	}
	orch := NewOrchestrator(backend, []string{"slow"}, 50*time.Millisecond)

	start := time.Now()
	_, err := orch.Generate(context.Background(), "prompt", nil)
	if time.Since(start) > time.Second {
		t.Fatal("Expected the deadline to cut the attempt short")
	}
	var timeout *core.TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("Expected TimeoutError, got %v", err)
	}
	if timeout.Budget != 50*time.Millisecond {
		t.Errorf("Expected budget 50ms in the error, got %v", timeout.Budget)
	}
}

func TestGenerateRespectsCallerCancellation(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	orch := NewOrchestrator(backend, []string{"slow"}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := orch.Generate(ctx, "prompt", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestGenerateIntoUnmarshals(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			return `{"name": "result", "count": 2}`, nil
		},
	}
	orch := NewOrchestrator(backend, []string{"m"}, time.Minute)

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	result, err := orch.GenerateInto(context.Background(), "prompt", out, &out)
	if err != nil {
		t.Fatalf("GenerateInto failed: %v", err)
	}
	if out.Name != "result" || out.Count != 2 {
		t.Errorf("Expected unmarshaled payload, got %+v", out)
	}
	if result.Model != "m" {
		t.Errorf("Expected winning model m, got %s", result.Model)
	}
}

func TestGenerateIntoShapeMismatch(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			return `{"count": "not-a-number"}`, nil
		},
	}
	orch := NewOrchestrator(backend, []string{"m"}, time.Minute)

	var out struct {
		Count int `json:"count"`
	}
	_, err := orch.GenerateInto(context.Background(), "prompt", out, &out)
	var extErr *core.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("Expected ExtractionError on shape mismatch, got %v", err)
	}
}

func TestNewOrchestratorDefaultTimeout(t *testing.T) {
	orch := NewOrchestrator(&mocks.MockBackend{}, []string{"m"}, 0)
	if orch.timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultTimeout, orch.timeout)
	}
}
