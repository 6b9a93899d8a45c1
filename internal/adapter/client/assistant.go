package client

import (
	"context"

	"google.golang.org/genai"

	"mindemotion-core/internal/domain/entity"
)

// supportSystemPrompt constrains every assistant turn. Scope and output
// limits are part of the product contract, not suggestions.
const supportSystemPrompt = `You are a supportive mental health assistant.

Your role:
- Discuss mental health, emotions, stress, anxiety, sadness, motivation, and self-care.
- Provide general coping suggestions and emotional support.
- Be empathetic, calm, and non-judgmental.

STRICT RULES:
- DO NOT diagnose mental disorders.
- DO NOT prescribe medication.
- DO NOT provide medical or clinical treatment.
- Encourage healthy coping habits only.
- If user asks for medical advice, politely refuse and suggest professional help.

OUTPUT RULES:
- Keep responses short and supportive.
- Max 5 bullet points OR max 120 words.
- Avoid long explanations unless the user asks "explain more".
- Ask at most ONE gentle follow-up question if helpful.`

// GeminiAssistant produces the next supportive turn given the prior
// conversation. History is replayed as alternating user/model contents.
type GeminiAssistant struct {
	client *genai.Client
	model  string
}

func NewGeminiAssistant(c *genai.Client, model string) *GeminiAssistant {
	return &GeminiAssistant{client: c, model: model}
}

func (g *GeminiAssistant) Reply(ctx context.Context, history []entity.Turn, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)*2+1)
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.User, genai.RoleUser))
		contents = append(contents, genai.NewContentFromText(turn.Assistant, genai.RoleModel))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(supportSystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   200,
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
