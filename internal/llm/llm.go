package llm

import (
	"context"
	"errors"
)

// Client abstracts the generative model provider. AnalyzeImage backs the
// outfit analysis pipeline; GenerateText backs the recommendation and
// matching endpoints.
type Client interface {
	AnalyzeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider credentials are available.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient stands in when no API key is configured; every call fails
// with ErrNotConfigured so the pipeline degrades to failed analyses instead of
// refusing to boot.
type PlaceholderClient struct{}

// AnalyzeImage returns ErrNotConfigured.
func (PlaceholderClient) AnalyzeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	return "", ErrNotConfigured
}

// GenerateText returns ErrNotConfigured.
func (PlaceholderClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", ErrNotConfigured
}
