package ideas

import (
	"fmt"

	"github.com/google/uuid"

	"tubelens/internal/core"
)

// FallbackIdeas builds templated ideas from metrics alone. They are used
// when every model in the chain failed, and are tagged degraded so callers
// can tell them apart from generated ones.
func FallbackIdeas(m *core.ChannelMetrics) []core.Idea {
	ideas := []core.Idea{
		{
			Title:          "Audience Q&A special",
			Concept:        "Collect questions from recent comments and answer them in one dedicated episode.",
			Reasoning:      fmt.Sprintf("The channel averages %d comments per item, showing an audience that wants direct interaction.", m.AverageComments),
			TargetAudience: "Existing viewers",
			Structure:      []string{"Introduce the question roundup", "Answer the top questions", "Invite questions for the next round"},
			SuccessTips:    []string{"Pin a comment asking for questions in advance", "Credit commenters by name"},
			Tags:           []string{"q&a", "community"},
		},
		{
			Title:          "Behind the scenes of your most popular content",
			Concept:        "Show how the channel's best performing item was planned, made, and published.",
			Reasoning:      "Viewers who liked the original are a ready audience for its making-of.",
			TargetAudience: "Fans of the channel's top content",
			Structure:      []string{"Recap the original", "Walk through planning and production", "Share lessons learned"},
			SuccessTips:    []string{"Reference the original in the title", "Link the original in the description"},
			Tags:           []string{"behind the scenes"},
		},
		{
			Title:          "Beginner's guide to the channel's main topic",
			Concept:        "An entry-level walkthrough that new viewers can start from without prior context.",
			Reasoning:      "Evergreen introductory content widens the top of the funnel and keeps collecting views.",
			TargetAudience: "New viewers",
			Structure:      []string{"Explain who the guide is for", "Cover the fundamentals step by step", "Point to the channel's deeper content"},
			SuccessTips:    []string{"Keep jargon out of the first half", "End with a clear next video to watch"},
			Tags:           []string{"beginner", "guide"},
		},
	}
	if len(m.TopByViews) > 0 {
		ideas[1].Concept = fmt.Sprintf("Show how %q was planned, made, and published.", m.TopByViews[0].Title)
		ideas[1].Reasoning = fmt.Sprintf("%q drew %d views, so its audience is a ready market for the making-of.",
			m.TopByViews[0].Title, m.TopByViews[0].Views)
	}
	for i := range ideas {
		ideas[i].ID = uuid.NewString()
		ideas[i].RecommendedLength = defaultRecommendedLength
		ideas[i].Degraded = true
	}
	return ideas
}
