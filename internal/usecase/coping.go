package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"mindemotion-core/internal/domain/entity"
	"mindemotion-core/internal/domain/repository"
)

const copingPromptTemplate = `You are a supportive mental health assistant.

User message:
%s

Generate exactly 4 safe coping strategies.
Rules:
- Do NOT diagnose
- Do NOT mention medication
- Keep strategies short
Return ONLY JSON in this format:
{ "strategies": ["...", "...", "...", "..."] }`

// CopingService asks the completion provider for four short coping
// strategies. The upstream is instructed to answer in JSON; when it does
// not comply, the raw reply is returned under the same "strategies" key
// instead of failing the request.
type CopingService struct {
	provider repository.CompletionProvider
}

func NewCopingService(provider repository.CompletionProvider) *CopingService {
	return &CopingService{provider: provider}
}

func (s *CopingService) Generate(ctx context.Context, text string) (*entity.CopingResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entity.ErrEmptyText
	}

	content, err := s.provider.Complete(ctx, fmt.Sprintf(copingPromptTemplate, text))
	if err != nil {
		return nil, fmt.Errorf("coping generation failed: %w", err)
	}
	content = strings.TrimSpace(content)

	var parsed struct {
		Strategies []string `json:"strategies"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || parsed.Strategies == nil {
		// Graceful degradation: the caller still gets a strategies key.
		return &entity.CopingResult{Strategies: content}, nil
	}

	strategies := lo.Map(parsed.Strategies, func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	return &entity.CopingResult{Strategies: strategies}, nil
}
