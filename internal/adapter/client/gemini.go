package client

import (
	"context"

	"google.golang.org/genai"
)

// GeminiCompleter is a single-shot completion provider with a fixed
// sampling temperature and output token budget.
type GeminiCompleter struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func NewGeminiCompleter(c *genai.Client, model string, temperature float32, maxTokens int32) *GeminiCompleter {
	return &GeminiCompleter{
		client:      c,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: g.maxTokens,
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
