package mocks

import (
	"context"
	"fmt"
	"sync"
)

// MockBackend provides a mock implementation of llm.Backend. It records
// the models it was called with so tests can assert on the fallback order.
type MockBackend struct {
	CompleteFunc func(ctx context.Context, model, prompt string) (string, error)

	mu     sync.Mutex
	Models []string
}

func (m *MockBackend) Complete(ctx context.Context, model, prompt string) (string, error) {
	m.mu.Lock()
	m.Models = append(m.Models, model)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, model, prompt)
	}
	return fmt.Sprintf("```json\n{\"model\": %q}\n```", model), nil
}

// Calls returns how many completions were attempted.
func (m *MockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Models)
}
