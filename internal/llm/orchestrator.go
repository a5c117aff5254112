package llm

import (
	"context"
	"encoding/json"
	"time"

	"tubelens/internal/core"
	"tubelens/internal/logger"
)

// DefaultTimeout bounds a whole multi-model generation sequence.
const DefaultTimeout = 2 * time.Minute

// Result is one successful generation: the raw model text, the extracted
// JSON payload (when a shape was requested), and the model that produced it.
type Result struct {
	Model string
	Raw   string
	JSON  json.RawMessage
}

// Orchestrator drives generation requests across an ordered fallback chain
// of candidate models. Models are tried strictly in order; a failure on one
// immediately attempts the next, with no same-model retry. The whole
// sequence races a single wall-clock deadline.
type Orchestrator struct {
	backend Backend
	models  []string
	timeout time.Duration
}

// NewOrchestrator wires a backend to its candidate model chain. A zero
// timeout falls back to DefaultTimeout.
func NewOrchestrator(backend Backend, models []string, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Orchestrator{backend: backend, models: models, timeout: timeout}
}

// Models returns the candidate chain in attempt order.
func (o *Orchestrator) Models() []string { return o.models }

// Generate runs the prompt through the fallback chain and extracts a JSON
// payload shaped like shape from the winning response. An empty chain fails
// immediately with GenerationExhaustedError and no network attempt. The
// attempt sequence races the deadline; on expiry the in-flight attempt is
// abandoned and its result, if it ever arrives, is discarded.
func (o *Orchestrator) Generate(ctx context.Context, prompt string, shape any) (*Result, error) {
	if len(o.models) == 0 {
		return nil, &core.GenerationExhaustedError{}
	}

	fullPrompt := PromptWithShape(prompt, shape)
	wantJSON := shape != nil

	attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	type outcome struct {
		result *Result
		err    error
	}
	// Buffered so a late finisher never blocks after the deadline won.
	done := make(chan outcome, 1)

	go func() {
		result, err := o.runChain(attemptCtx, fullPrompt, wantJSON)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			// A chain cut short by the deadline surfaces as a timeout,
			// not as exhaustion.
			if attemptCtx.Err() == context.DeadlineExceeded {
				return nil, &core.TimeoutError{Op: "llm.Generate", Budget: o.timeout}
			}
			return nil, out.err
		}
		return out.result, nil
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &core.TimeoutError{Op: "llm.Generate", Budget: o.timeout}
	}
}

// runChain walks the candidate models in order, driven by the pure chain
// state machine.
func (o *Orchestrator) runChain(ctx context.Context, prompt string, wantJSON bool) (*Result, error) {
	st := ChainState{}.Next(EventStart, len(o.models))
	var lastErr error

	for st.State == StateTrying {
		model := o.models[st.Index]

		text, err := o.backend.Complete(ctx, model, prompt)
		if err != nil {
			logger.Warn("model attempt failed, trying next", "model", model, "error", err.Error())
			lastErr = err
			st = st.Next(EventAttemptFailed, len(o.models))
			continue
		}

		if !wantJSON {
			return &Result{Model: model, Raw: text}, nil
		}

		raw, err := ExtractJSON(text)
		if err != nil {
			// Malformed output counts as a model failure.
			logger.Warn("model response had no parseable JSON, trying next", "model", model, "error", err.Error())
			lastErr = err
			st = st.Next(EventAttemptFailed, len(o.models))
			continue
		}

		return &Result{Model: model, Raw: text, JSON: raw}, nil
	}

	return nil, &core.GenerationExhaustedError{Models: o.models, LastErr: lastErr}
}

// GenerateInto is a convenience wrapper that unmarshals the extracted
// payload into out.
func (o *Orchestrator) GenerateInto(ctx context.Context, prompt string, shape, out any) (*Result, error) {
	result, err := o.Generate(ctx, prompt, shape)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(result.JSON, out); err != nil {
		return nil, &core.ExtractionError{Reason: "payload does not match expected shape", Err: err}
	}
	return result, nil
}
