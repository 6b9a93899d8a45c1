package repository

import (
	"context"
	"io"

	"mindemotion-core/internal/domain/entity"
)

type EmotionClassifier interface {
	Classify(text string) (*entity.EmotionResult, error)
}

type ScanClassifier interface {
	Classify(img io.Reader) (*entity.MriResult, error)
}

type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type ChatProvider interface {
	Reply(ctx context.Context, history []entity.Turn, message string) (string, error)
}

type SessionStore interface {
	Create() string
	History(id string) []entity.Turn
	Append(id string, turn entity.Turn)
}
