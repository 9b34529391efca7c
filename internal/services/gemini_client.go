package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/agrisight/agrisight-backend/internal/logger"
)

type geminiGenerator struct {
	log    *logger.Logger
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds the Gemini-backed TextGenerator. Callers that
// have no API key configured should skip construction entirely and hand the
// narrative service a nil generator.
func NewGeminiGenerator(ctx context.Context, log *logger.Logger, apiKey, model string) (TextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiGenerator{
		log:    log.With("service", "GeminiGenerator"),
		client: client,
		model:  model,
	}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
