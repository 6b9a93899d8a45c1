package usecase

import (
	"net/url"
	"strings"

	"mindemotion-core/internal/domain/entity"
)

const imageServiceTemplate = "https://image.pollinations.ai/prompt/"

// ImageLink builds image URLs by embedding the percent-encoded prompt in
// the image service template. Pure and deterministic: no network call is
// made here, the client fetches the URL itself.
type ImageLink struct {
	base string
}

func NewImageLink() *ImageLink {
	return &ImageLink{base: imageServiceTemplate}
}

func (g *ImageLink) Generate(prompt string) (*entity.ImageResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, entity.ErrEmptyPrompt
	}
	return &entity.ImageResult{ImageURL: g.base + url.PathEscape(prompt)}, nil
}
