// Package comments classifies audience comments into popular, constructive,
// and improvement-request categories. Two interchangeable strategies sit
// behind one interface: a deterministic keyword classifier and a
// generative-model classifier with transparent keyword fallback.
package comments

import (
	"context"
	"math"

	"tubelens/internal/core"
)

// Strategy labels recorded on a ClassificationResult.
const (
	StrategyKeyword         = "keyword"
	StrategyGenerative      = "generative"
	StrategyKeywordFallback = "keyword-fallback"
)

// Classifier assigns a batch of comments to categories and computes
// aggregate statistics for the run.
type Classifier interface {
	Classify(ctx context.Context, comments []core.Comment) (*core.ClassificationResult, error)
}

// Stats computes summary statistics over the full comment set, independent
// of category membership. Average likes carry one decimal.
func Stats(comments []core.Comment) core.CommentStats {
	if len(comments) == 0 {
		return core.CommentStats{}
	}

	var total, max int64
	for _, c := range comments {
		total += c.Likes
		if c.Likes > max {
			max = c.Likes
		}
	}
	avg := math.Round(float64(total)/float64(len(comments))*10) / 10

	return core.CommentStats{
		TotalComments: len(comments),
		AverageLikes:  avg,
		MaxLikes:      max,
		TotalLikes:    total,
	}
}
