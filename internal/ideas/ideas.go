// Package ideas composes channel metrics and classified comments into a
// prompt for the generation orchestrator and normalizes the model's answer
// into a fixed idea schema. Total generation failure degrades to templated
// ideas built purely from metrics, never to an error.
package ideas

import (
	"context"
	"fmt"
	"strings"

	"tubelens/internal/core"
	"tubelens/internal/llm"
	"tubelens/internal/logger"
)

// ideaCount is how many ideas one generation request asks for.
const ideaCount = 5

// ideaShape mirrors the JSON the model is asked to produce for one idea.
type ideaShape struct {
	Title             string   `json:"title"`
	Concept           string   `json:"concept"`
	Reasoning         string   `json:"reasoning"`
	TargetAudience    string   `json:"targetAudience"`
	Structure         []string `json:"structure"`
	SuccessTips       []string `json:"successTips"`
	RecommendedLength string   `json:"recommendedLength"`
	Tags              []string `json:"tags"`
}

// responseShape wraps the idea list the model returns.
type responseShape struct {
	Ideas []ideaShape `json:"ideas"`
}

// Request carries everything one idea-generation run may draw on. Metrics
// are required; the rest is optional context.
type Request struct {
	Metrics        *core.ChannelMetrics
	Classification *core.ClassificationResult
	Channel        *core.ChannelInfo
	CustomPrompt   string
}

// Pipeline drives idea generation through the orchestrator.
type Pipeline struct {
	orchestrator *llm.Orchestrator
}

// NewPipeline wires the idea pipeline to its orchestrator.
func NewPipeline(orchestrator *llm.Orchestrator) *Pipeline {
	return &Pipeline{orchestrator: orchestrator}
}

// GenerateIdeas builds the composite prompt, invokes the fallback chain,
// and normalizes each returned idea. When the whole chain is exhausted it
// returns templated ideas tagged degraded rather than an error.
func (p *Pipeline) GenerateIdeas(ctx context.Context, req Request) ([]core.Idea, error) {
	if req.Metrics == nil || req.Metrics.TotalItems == 0 {
		return nil, &core.EmptyInputError{Op: "ideas.GenerateIdeas"}
	}

	prompt := buildPrompt(req)

	var parsed responseShape
	result, err := p.orchestrator.GenerateInto(ctx, prompt, responseShape{Ideas: []ideaShape{{}}}, &parsed)
	if err != nil {
		// A caller abort is not a generation failure and must not be
		// masked by the templated fallback.
		if ctx.Err() != nil {
			return nil, err
		}
		logger.Warn("idea generation exhausted all models, returning templated ideas", "error", err.Error())
		return FallbackIdeas(req.Metrics), nil
	}

	out := make([]core.Idea, 0, len(parsed.Ideas))
	for _, shape := range parsed.Ideas {
		idea := Normalize(shape)
		idea.ModelUsed = result.Model
		out = append(out, idea)
	}
	if len(out) == 0 {
		logger.Warn("model returned an empty idea list, returning templated ideas")
		return FallbackIdeas(req.Metrics), nil
	}
	return out, nil
}

// buildPrompt embeds top performers, channel averages, the upload pattern,
// and the classified comments into one instruction.
func buildPrompt(req Request) string {
	m := req.Metrics
	var b strings.Builder

	b.WriteString("You are a content strategy consultant. ")
	fmt.Fprintf(&b, "Propose %d new content ideas for this channel based on the analysis below.\n\n", ideaCount)

	if req.Channel != nil {
		b.WriteString("Channel:\n")
		fmt.Fprintf(&b, "- Name: %s\n", req.Channel.Title)
		if req.Channel.Description != "" {
			fmt.Fprintf(&b, "- Description: %s\n", req.Channel.Description)
		}
		fmt.Fprintf(&b, "- Subscribers: %d\n\n", req.Channel.Subscribers)
	}

	b.WriteString("Performance metrics:\n")
	fmt.Fprintf(&b, "- Items analyzed: %d\n", m.TotalItems)
	fmt.Fprintf(&b, "- Average views: %d\n", m.AverageViews)
	fmt.Fprintf(&b, "- Average likes: %d\n", m.AverageLikes)
	fmt.Fprintf(&b, "- Average comments: %d\n", m.AverageComments)
	fmt.Fprintf(&b, "- Average engagement rate: %.2f%%\n", m.AverageEngagementRate)
	fmt.Fprintf(&b, "- Most popular upload day: %s\n", m.UploadPattern.MostPopularDay)
	fmt.Fprintf(&b, "- Most popular upload hour: %d:00\n\n", m.UploadPattern.MostPopularHour)

	b.WriteString("Top performing items by views:\n")
	for i, r := range m.TopByViews {
		fmt.Fprintf(&b, "%d. %q (%d views, %.2f%% engagement)\n", i+1, r.Title, r.Views, r.EngagementRate)
	}
	b.WriteString("\n")

	if c := req.Classification; c != nil {
		b.WriteString("Audience comment analysis:\n")
		writeCommentSection(&b, "Popular comments", c.Popular)
		writeCommentSection(&b, "Constructive comments", c.Constructive)
		writeCommentSection(&b, "Improvement requests", c.Improvement)
		if c.Summary != nil {
			fmt.Fprintf(&b, "Overall sentiment: %s\n", c.Summary.OverallSentiment)
			if len(c.Summary.KeyThemes) > 0 {
				fmt.Fprintf(&b, "Key themes: %s\n", strings.Join(c.Summary.KeyThemes, ", "))
			}
		}
		b.WriteString("\n")
	}

	if req.CustomPrompt != "" {
		fmt.Fprintf(&b, "User request: %s\n\n", req.CustomPrompt)
	}

	b.WriteString("Each idea must be concrete, achievable, and grounded in the data above.")
	return b.String()
}

func writeCommentSection(b *strings.Builder, label string, batch []core.ClassifiedComment) {
	if len(batch) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for i, c := range batch {
		if i == 3 {
			break
		}
		fmt.Fprintf(b, "- %s (likes: %d)\n", c.Text, c.Likes)
	}
}
