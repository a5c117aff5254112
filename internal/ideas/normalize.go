package ideas

import (
	"strings"

	"github.com/google/uuid"

	"tubelens/internal/core"
)

// Field defaults applied when the model omits or blanks a field.
const (
	defaultTitle             = "Untitled idea"
	defaultConcept           = "A new piece of content in the channel's established style."
	defaultReasoning         = "Aligned with the channel's overall performance data."
	defaultTargetAudience    = "Existing viewers"
	defaultRecommendedLength = "10-15 minutes"
)

var defaultStructure = []string{"Introduction", "Main content", "Summary and call to action"}

// Normalize maps one raw idea into the fixed schema, substituting defaults
// for missing fields. It is applied exactly once per idea, immediately
// after extraction.
func Normalize(s ideaShape) core.Idea {
	idea := core.Idea{
		ID:                uuid.NewString(),
		Title:             strings.TrimSpace(s.Title),
		Concept:           strings.TrimSpace(s.Concept),
		Reasoning:         strings.TrimSpace(s.Reasoning),
		TargetAudience:    strings.TrimSpace(s.TargetAudience),
		Structure:         s.Structure,
		SuccessTips:       s.SuccessTips,
		RecommendedLength: strings.TrimSpace(s.RecommendedLength),
		Tags:              s.Tags,
	}
	if idea.Title == "" {
		idea.Title = defaultTitle
	}
	if idea.Concept == "" {
		idea.Concept = defaultConcept
	}
	if idea.Reasoning == "" {
		idea.Reasoning = defaultReasoning
	}
	if idea.TargetAudience == "" {
		idea.TargetAudience = defaultTargetAudience
	}
	if len(idea.Structure) == 0 {
		idea.Structure = append([]string(nil), defaultStructure...)
	}
	if idea.SuccessTips == nil {
		idea.SuccessTips = []string{}
	}
	if idea.RecommendedLength == "" {
		idea.RecommendedLength = defaultRecommendedLength
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
	return idea
}
