package comments

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"tubelens/internal/core"
	"tubelens/internal/llm"
)

// generativeSampleSize bounds how many comments are embedded in the prompt,
// keeping token cost predictable. The sample is the top comments by likes.
const generativeSampleSize = 50

// prefixMatchLength is how many runes of comment text are compared when
// re-associating model output with original comments. The model is not
// guaranteed to echo full comment payloads verbatim, so matching is a fuzzy
// prefix check in either direction. Known limitation: near-duplicate
// comment texts can mismatch.
const prefixMatchLength = 20

// classificationShape is the JSON template sent to the model and the shape
// its answer is parsed into.
type classificationShape struct {
	TopComments          []shapeComment `json:"topComments"`
	ConstructiveComments []shapeComment `json:"constructiveComments"`
	ImprovementComments  []shapeComment `json:"improvementComments"`
	Summary              shapeSummary   `json:"summary"`
}

type shapeComment struct {
	Text      string `json:"text"`
	LikeCount int64  `json:"likeCount"`
	Reason    string `json:"reason"`
}

type shapeSummary struct {
	OverallSentiment string   `json:"overallSentiment"`
	KeyThemes        []string `json:"keyThemes"`
	AudienceInsights string   `json:"audienceInsights"`
}

// GenerativeClassifier delegates categorization to the generation
// orchestrator and maps the model's answer back onto the original comments.
type GenerativeClassifier struct {
	orchestrator *llm.Orchestrator
	sampleSize   int
}

// NewGenerativeClassifier builds the generative strategy on top of an
// orchestrator.
func NewGenerativeClassifier(orchestrator *llm.Orchestrator) *GenerativeClassifier {
	return &GenerativeClassifier{orchestrator: orchestrator, sampleSize: generativeSampleSize}
}

// Classify sends the top comments by likes to the model and rebuilds the
// three category lists from its answer. Any orchestrator failure surfaces
// as a ClassificationError so callers holding a fallback can recover it.
func (g *GenerativeClassifier) Classify(ctx context.Context, batch []core.Comment) (*core.ClassificationResult, error) {
	sample := topByLikes(batch, g.sampleSize)

	var parsed classificationShape
	if _, err := g.orchestrator.GenerateInto(ctx, g.buildPrompt(sample), classificationShape{
		TopComments:          []shapeComment{{}},
		ConstructiveComments: []shapeComment{{}},
		ImprovementComments:  []shapeComment{{}},
	}, &parsed); err != nil {
		return nil, &core.ClassificationError{Strategy: StrategyGenerative, Err: err}
	}

	return &core.ClassificationResult{
		RunID:         uuid.NewString(),
		Strategy:      StrategyGenerative,
		TotalComments: len(batch),
		Popular:       g.reassociate(parsed.TopComments, sample, core.CategoryPopular),
		Constructive:  g.reassociate(parsed.ConstructiveComments, sample, core.CategoryConstructive),
		Improvement:   g.reassociate(parsed.ImprovementComments, sample, core.CategoryImprovement),
		Stats:         Stats(batch),
		Summary: &core.AudienceSummary{
			OverallSentiment: parsed.Summary.OverallSentiment,
			KeyThemes:        parsed.Summary.KeyThemes,
			AudienceInsights: parsed.Summary.AudienceInsights,
		},
	}, nil
}

func (g *GenerativeClassifier) buildPrompt(sample []core.Comment) string {
	var b strings.Builder
	b.WriteString("Analyze the following audience comments and sort them into three categories.\n\n")
	b.WriteString("Comments under analysis:\n")
	for _, c := range sample {
		fmt.Fprintf(&b, "%s (likes: %d)\n", c.Text, c.Likes)
	}
	b.WriteString(`
Classification criteria; pick up to 10 most representative comments per category:

1. topComments: comments with high like counts that resonate with many viewers
2. constructiveComments: comments carrying positive value such as specific praise, thanks, or reported learning
3. improvementComments: constructive criticism, improvement suggestions, and requests useful for future content

Also summarize the overall sentiment, the key themes, and any audience insight.`)
	return b.String()
}

// reassociate maps model-selected comments back to original records by a
// fuzzy prefix match on text, since the model may paraphrase or truncate.
func (g *GenerativeClassifier) reassociate(selected []shapeComment, sample []core.Comment, category core.CommentCategory) []core.ClassifiedComment {
	out := make([]core.ClassifiedComment, 0, len(selected))
	for _, s := range selected {
		if s.Text == "" {
			continue
		}
		if original, ok := matchByPrefix(s.Text, sample); ok {
			out = append(out, core.ClassifiedComment{
				Comment:  original,
				Category: category,
				Score:    Score(original),
				Reason:   s.Reason,
			})
			continue
		}
		// No original matched; keep the model's rendition rather than
		// dropping the entry.
		out = append(out, core.ClassifiedComment{
			Comment:  core.Comment{Text: s.Text, Likes: s.LikeCount},
			Category: category,
			Reason:   s.Reason,
		})
	}
	return out
}

func matchByPrefix(text string, sample []core.Comment) (core.Comment, bool) {
	for _, c := range sample {
		if strings.Contains(c.Text, prefix(text)) || strings.Contains(text, prefix(c.Text)) {
			return c, true
		}
	}
	return core.Comment{}, false
}

func prefix(text string) string {
	runes := []rune(text)
	if len(runes) > prefixMatchLength {
		runes = runes[:prefixMatchLength]
	}
	return string(runes)
}

func topByLikes(batch []core.Comment, limit int) []core.Comment {
	ranked := make([]core.Comment, len(batch))
	copy(ranked, batch)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Likes > ranked[j].Likes })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
