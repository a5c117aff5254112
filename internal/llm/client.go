package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Backend is the single capability the orchestrator needs from a
// generative-language service: complete a prompt on a named model.
// Alternate backends can be substituted without touching orchestration.
type Backend interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Options tunes generation on the Gemini backend.
type Options struct {
	MaxTokens   int32   // Maximum number of tokens to generate
	Temperature float32 // Temperature for randomness (0.0 to 1.0)
}

// Client is the Gemini-backed Backend implementation.
type Client struct {
	gClient *genai.Client
	opts    Options
}

// NewClient creates a Gemini client. The API key is supplied explicitly;
// configuration is resolved once at the process boundary, not here.
func NewClient(ctx context.Context, apiKey string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{gClient: gClient, opts: opts}, nil
}

// Complete sends prompt to the named model and returns the raw response text.
func (c *Client) Complete(ctx context.Context, model, prompt string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	var config *genai.GenerateContentConfig
	if c.opts.MaxTokens > 0 || c.opts.Temperature > 0 {
		config = &genai.GenerateContentConfig{}
		if c.opts.MaxTokens > 0 {
			config.MaxOutputTokens = c.opts.MaxTokens
		}
		if c.opts.Temperature > 0 {
			temp := c.opts.Temperature
			config.Temperature = &temp
		}
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", model)
	}

	return text, nil
}
