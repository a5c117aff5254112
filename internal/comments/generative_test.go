package comments

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

func TestGenerativeClassify(t *testing.T) {
	batch := []core.Comment{
		{ID: "c1", Text: "This tutorial saved me hours of debugging, thank you so much", Likes: 40},
		{ID: "c2", Text: "Please cover deployment next time, the local setup part was clear", Likes: 25},
		{ID: "c3", Text: "First!", Likes: 3},
	}

	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			return "```json\n" + `{
  "topComments": [{"text": "This tutorial saved me hours of debugging, thank you so much", "likeCount": 40, "reason": "most liked"}],
  "constructiveComments": [{"text": "This tutorial saved me hours", "likeCount": 40, "reason": "reported learning"}],
  "improvementComments": [{"text": "Please cover deployment next time", "likeCount": 25, "reason": "content request"}],
  "summary": {"overallSentiment": "positive", "keyThemes": ["tutorial quality"], "audienceInsights": "viewers want deployment content"}
}` + "\n```", nil
		},
	}
	orch := llm.NewOrchestrator(backend, []string{"model-a"}, time.Minute)
	g := NewGenerativeClassifier(orch)

	result, err := g.Classify(context.Background(), batch)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result.Strategy != StrategyGenerative {
		t.Errorf("Expected strategy %q, got %q", StrategyGenerative, result.Strategy)
	}
	if result.TotalComments != 3 {
		t.Errorf("Expected 3 total comments, got %d", result.TotalComments)
	}
	if len(result.Popular) != 1 || result.Popular[0].ID != "c1" {
		t.Fatalf("Expected popular list to re-associate c1, got %+v", result.Popular)
	}
	// The model truncated the constructive text; prefix matching must still
	// find the original comment and restore its metadata.
	if len(result.Constructive) != 1 || result.Constructive[0].ID != "c1" {
		t.Fatalf("Expected truncated text to match c1, got %+v", result.Constructive)
	}
	if result.Constructive[0].Likes != 40 {
		t.Errorf("Expected original like count 40, got %d", result.Constructive[0].Likes)
	}
	if result.Constructive[0].Reason != "reported learning" {
		t.Errorf("Expected model reason to be kept, got %q", result.Constructive[0].Reason)
	}
	if len(result.Improvement) != 1 || result.Improvement[0].ID != "c2" {
		t.Fatalf("Expected improvement list to re-associate c2, got %+v", result.Improvement)
	}
	if result.Summary == nil || result.Summary.OverallSentiment != "positive" {
		t.Errorf("Expected positive summary, got %+v", result.Summary)
	}
}

func TestGenerativeClassifyWrapsOrchestratorFailure(t *testing.T) {
	backend := &mocks.MockBackend{
		CompleteFunc: func(ctx context.Context, model, prompt string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	orch := llm.NewOrchestrator(backend, []string{"model-a"}, time.Minute)
	g := NewGenerativeClassifier(orch)

	_, err := g.Classify(context.Background(), []core.Comment{{ID: "c1", Text: "hello"}})
	if err == nil {
		t.Fatal("Expected error when every model fails")
	}
	var clsErr *core.ClassificationError
	if !errors.As(err, &clsErr) {
		t.Fatalf("Expected ClassificationError, got %T", err)
	}
	if clsErr.Strategy != StrategyGenerative {
		t.Errorf("Expected failing strategy %q, got %q", StrategyGenerative, clsErr.Strategy)
	}
}

func TestReassociateKeepsUnmatchedModelEntries(t *testing.T) {
	g := NewGenerativeClassifier(nil)
	sample := []core.Comment{{ID: "c1", Text: "completely different text", Likes: 7}}
	selected := []shapeComment{
		{Text: "an invented comment the channel never received", LikeCount: 9, Reason: "hallucinated"},
		{Text: ""},
	}
	out := g.reassociate(selected, sample, core.CategoryPopular)
	if len(out) != 1 {
		t.Fatalf("Expected 1 entry (empty text dropped), got %d", len(out))
	}
	if out[0].ID != "" {
		t.Errorf("Expected synthetic comment without original id, got %q", out[0].ID)
	}
	if out[0].Likes != 9 {
		t.Errorf("Expected model-reported like count 9, got %d", out[0].Likes)
	}
}

func TestMatchByPrefixBothDirections(t *testing.T) {
	long := strings.Repeat("abcde ", 10)
	sample := []core.Comment{{ID: "c1", Text: long}}

	// Model echoes a truncated version.
	if _, ok := matchByPrefix(long[:25], sample); !ok {
		t.Error("Expected truncated model text to match the original")
	}
	// Model pads the original with extra words.
	if _, ok := matchByPrefix(long+" plus commentary", sample); !ok {
		t.Error("Expected extended model text to match the original")
	}
	if _, ok := matchByPrefix("unrelated", sample); ok {
		t.Error("Expected unrelated text not to match")
	}
}

func TestTopByLikesBoundsSample(t *testing.T) {
	batch := make([]core.Comment, 60)
	for i := range batch {
		batch[i] = core.Comment{ID: string(rune('a' + i%26)), Likes: int64(i)}
	}
	top := topByLikes(batch, 50)
	if len(top) != 50 {
		t.Fatalf("Expected sample of 50, got %d", len(top))
	}
	if top[0].Likes != 59 {
		t.Errorf("Expected most-liked comment first, got %d likes", top[0].Likes)
	}
}
