package recommendations

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyQuote indicates the model returned no text for the quote request.
var ErrEmptyQuote = errors.New("empty quote from model")

// RandomQuote asks the model for an inspirational quote. It doubles as a
// cheap connectivity check for the model integration.
func (s *Service) RandomQuote(ctx context.Context) (string, error) {
	text, err := s.LLM.GenerateText(ctx, "Tell me a random inspirational quote")
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyQuote
	}
	return text, nil
}
