package comments

import (
	"context"

	"tubelens/internal/core"
	"tubelens/internal/logger"
)

// FallbackClassifier runs the primary strategy and transparently re-runs the
// fallback on any failure. Degraded results are flagged with the
// "keyword-fallback" strategy label so callers can tell them apart.
type FallbackClassifier struct {
	primary  Classifier
	fallback Classifier
}

// NewFallbackClassifier composes a primary strategy with its fallback.
func NewFallbackClassifier(primary, fallback Classifier) *FallbackClassifier {
	return &FallbackClassifier{primary: primary, fallback: fallback}
}

// Classify prefers the primary strategy and falls back on any error.
func (f *FallbackClassifier) Classify(ctx context.Context, batch []core.Comment) (*core.ClassificationResult, error) {
	result, err := f.primary.Classify(ctx, batch)
	if err == nil {
		return result, nil
	}

	logger.Warn("primary classification failed, falling back to keyword strategy", "error", err.Error())
	result, fallbackErr := f.fallback.Classify(ctx, batch)
	if fallbackErr != nil {
		return nil, fallbackErr
	}
	result.Strategy = StrategyKeywordFallback
	return result, nil
}
