package ideas

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tubelens/internal/core"
	"tubelens/internal/llm"
	"tubelens/test/mocks"
)

func sampleMetrics() *core.ChannelMetrics {
	return &core.ChannelMetrics{
		TotalItems:            12,
		AverageViews:          5400,
		AverageLikes:          320,
		AverageComments:       45,
		AverageEngagementRate: 6.75,
		TopByViews: []core.PerformanceRecord{
			{ItemID: "v1", Title: "How the pipeline works", Views: 20000, EngagementRate: 8.1},
			{ItemID: "v2", Title: "Setup walkthrough", Views: 15000, EngagementRate: 5.2},
		},
		UploadPattern: core.UploadPattern{MostPopularDay: "Saturday", MostPopularHour: 18},
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	idea := Normalize(ideaShape{Title: "  My idea  "})
	if idea.Title != "My idea" {
		t.Errorf("Expected trimmed title, got %q", idea.Title)
	}
	if idea.RecommendedLength != "10-15 minutes" {
		t.Errorf("Expected default recommended length, got %q", idea.RecommendedLength)
	}
	if idea.Tags == nil || len(idea.Tags) != 0 {
		t.Errorf("Expected empty non-nil tags, got %v", idea.Tags)
	}
	if idea.SuccessTips == nil {
		t.Error("Expected empty non-nil success tips")
	}
	if len(idea.Structure) == 0 {
		t.Error("Expected default structure")
	}
	if idea.TargetAudience != "Existing viewers" {
		t.Errorf("Expected default audience, got %q", idea.TargetAudience)
	}
	if idea.ID == "" {
		t.Error("Expected a generated id")
	}
	if idea.Degraded {
		t.Error("Expected normalized ideas not to be degraded")
	}
}

func TestNormalizeKeepsProvidedFields(t *testing.T) {
	idea := Normalize(ideaShape{
		Title:             "Q&A",
		Concept:           "answer questions",
		Reasoning:         "audience asked",
		TargetAudience:    "subscribers",
		Structure:         []string{"a", "b"},
		SuccessTips:       []string{"tip"},
		RecommendedLength: "8 minutes",
		Tags:              []string{"qa"},
	})
	if idea.RecommendedLength != "8 minutes" {
		t.Errorf("Expected provided length to be kept, got %q", idea.RecommendedLength)
	}
	if len(idea.Structure) != 2 || len(idea.Tags) != 1 || len(idea.SuccessTips) != 1 {
		t.Errorf("Expected provided slices to be kept, got %+v", idea)
	}
}

func TestGenerateIdeas(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			if !strings.Contains(prompt, "How the pipeline works") {
				t.Error("Expected the prompt to embed the top performer's title")
			}
			if !strings.Contains(prompt, "focus on shorts") {
				t.Error("Expected the prompt to embed the custom instruction")
			}
			return "```json\n" + `{"ideas": [
  {"title": "Pipeline deep dive", "concept": "explain internals", "reasoning": "top video demand", "targetAudience": "engineers", "structure": ["intro", "demo"], "successTips": ["show code"], "recommendedLength": "12 minutes", "tags": ["deep-dive"]},
  {"title": "", "concept": "", "reasoning": "", "targetAudience": "", "structure": [], "successTips": null, "recommendedLength": "", "tags": null}
]}` + "\n```", nil
		},
	}
	orch := llm.NewOrchestrator(backend, []string{"model-a"}, time.Minute)
	p := NewPipeline(orch)

	out, err := p.GenerateIdeas(context.Background(), Request{
		Metrics:      sampleMetrics(),
		CustomPrompt: "focus on shorts",
	})
	if err != nil {
		t.Fatalf("GenerateIdeas failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 ideas, got %d", len(out))
	}
	if out[0].Title != "Pipeline deep dive" || out[0].RecommendedLength != "12 minutes" {
		t.Errorf("Expected first idea to be kept verbatim, got %+v", out[0])
	}
	if out[0].ModelUsed != "model-a" {
		t.Errorf("Expected winning model to be recorded, got %q", out[0].ModelUsed)
	}
	if out[0].Degraded || out[1].Degraded {
		t.Error("Expected generated ideas not to be degraded")
	}
	// The second idea was all blanks; normalization must fill it in.
	if out[1].Title != "Untitled idea" || out[1].RecommendedLength != "10-15 minutes" {
		t.Errorf("Expected normalized defaults on the blank idea, got %+v", out[1])
	}
	if out[1].Tags == nil {
		t.Error("Expected null tags to normalize to an empty slice")
	}
}

func TestGenerateIdeasDegradesOnExhaustion(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			return "", errors.New("every model down")
		},
	}
	orch := llm.NewOrchestrator(backend, []string{"a", "b"}, time.Minute)
	p := NewPipeline(orch)

	out, err := p.GenerateIdeas(context.Background(), Request{Metrics: sampleMetrics()})
	if err != nil {
		t.Fatalf("Expected degraded ideas instead of an error, got %v", err)
	}
	if len(out) == 0 {
		t.Fatal("Expected templated fallback ideas")
	}
	for _, idea := range out {
		if !idea.Degraded {
			t.Errorf("Expected idea %q to be flagged degraded", idea.Title)
		}
		if idea.RecommendedLength != "10-15 minutes" {
			t.Errorf("Expected default length on fallback idea, got %q", idea.RecommendedLength)
		}
		if idea.ID == "" {
			t.Error("Expected fallback ideas to carry ids")
		}
	}
}

func TestGenerateIdeasPropagatesCancellation(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	orch := llm.NewOrchestrator(backend, []string{"a", "b"}, time.Minute)
	p := NewPipeline(orch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := p.GenerateIdeas(ctx, Request{Metrics: sampleMetrics()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected caller cancellation to surface, got %v", err)
	}
	if out != nil {
		t.Error("Expected no templated ideas on a cancelled run")
	}
}

func TestGenerateIdeasRequiresMetrics(t *testing.T) {
	p := NewPipeline(nil)
	_, err := p.GenerateIdeas(context.Background(), Request{})
	var emptyErr *core.EmptyInputError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("Expected EmptyInputError, got %v", err)
	}
}

func TestFallbackIdeasReferenceTopPerformer(t *testing.T) {
	out := FallbackIdeas(sampleMetrics())
	found := false
	for _, idea := range out {
		if strings.Contains(idea.Concept, "How the pipeline works") {
			found = true
		}
	}
	if !found {
		t.Error("Expected a fallback idea to reference the top performer")
	}
}
