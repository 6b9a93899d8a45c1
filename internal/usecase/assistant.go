package usecase

import (
	"context"
	"fmt"
	"strings"

	"mindemotion-core/internal/domain/entity"
	"mindemotion-core/internal/domain/repository"
)

// GentleReply is returned for empty or whitespace-only messages without
// touching the upstream provider.
const GentleReply = "Please share what you are feeling or thinking."

// Assistant runs the supportive conversation loop: look up the session
// history, ask the chat provider for the next turn, record the exchange.
type Assistant struct {
	provider repository.ChatProvider
	sessions repository.SessionStore
}

func NewAssistant(provider repository.ChatProvider, sessions repository.SessionStore) *Assistant {
	return &Assistant{provider: provider, sessions: sessions}
}

// NewSession returns a fresh session id for callers that want an
// isolated conversation.
func (a *Assistant) NewSession() string {
	return a.sessions.Create()
}

// Respond produces the next assistant turn. An empty sessionID selects
// the shared default session.
func (a *Assistant) Respond(ctx context.Context, sessionID, message string) (*entity.ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return &entity.ChatResult{Reply: GentleReply}, nil
	}

	if sessionID == "" {
		sessionID = defaultSessionID
	}

	history := a.sessions.History(sessionID)
	reply, err := a.provider.Reply(ctx, history, message)
	if err != nil {
		return nil, fmt.Errorf("chat reply failed: %w", err)
	}

	a.sessions.Append(sessionID, entity.Turn{User: message, Assistant: reply})
	return &entity.ChatResult{Reply: reply}, nil
}

const defaultSessionID = "default"
