// Package handlers contains the CLI command implementations.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"tubelens/internal/analyzer"
	"tubelens/internal/comments"
	"tubelens/internal/config"
	"tubelens/internal/ideas"
	"tubelens/internal/llm"
	"tubelens/internal/youtube"
)

// buildService wires one analyzer service from configuration. strategy is
// "keyword" or "generative"; generative runs wrap the keyword strategy as
// their fallback.
func buildService(ctx context.Context, strategy string) (*analyzer.Service, error) {
	cfg := config.Get()

	provider, err := youtube.NewClient(ctx, cfg.YouTube.APIKey, cfg.YouTube.MaxItems, cfg.YouTube.MaxComments)
	if err != nil {
		return nil, err
	}

	limits := comments.KeywordLimits{
		PopularLimit:          cfg.Analyzer.PopularLimit,
		CategoryLimit:         cfg.Analyzer.TopN,
		ConstructiveMinLength: cfg.Analyzer.ConstructiveMinLength,
		ImprovementMinLength:  cfg.Analyzer.ImprovementMinLength,
	}
	keyword := comments.NewKeywordClassifier(limits)

	var classifier comments.Classifier = keyword
	var pipeline analyzer.IdeaGenerator

	if cfg.Gemini.APIKey != "" {
		backend, err := llm.NewClient(ctx, cfg.Gemini.APIKey, llm.Options{
			MaxTokens:   cfg.Gemini.MaxTokens,
			Temperature: cfg.Gemini.Temperature,
		})
		if err != nil {
			return nil, err
		}
		orch := llm.NewOrchestrator(backend, cfg.Gemini.Models, cfg.Gemini.GenerationTimeout())
		pipeline = ideas.NewPipeline(orch)
		if strategy == comments.StrategyGenerative {
			classifier = comments.NewFallbackClassifier(comments.NewGenerativeClassifier(orch), keyword)
		}
	} else if strategy == comments.StrategyGenerative {
		return nil, fmt.Errorf("generative strategy requires a Gemini API key")
	}

	return analyzer.NewService(provider, classifier, pipeline, cfg.YouTube.FetchTimeout()), nil
}

// emit prints the payload, either rendered or as a JSON envelope.
func emit(asJSON bool, payload any, rendered string) error {
	if !asJSON {
		fmt.Println(rendered)
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(analyzer.OK(payload))
}
