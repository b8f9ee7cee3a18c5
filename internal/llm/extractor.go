package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/newstrust/internal/extract"
)

// ClaimExtractor asks a language model for the checkable claims of an article
type ClaimExtractor struct {
	provider      Provider
	maxInputChars int
}

// NewClaimExtractor creates an extractor. maxInputChars <= 0 disables truncation.
func NewClaimExtractor(provider Provider, maxInputChars int) *ClaimExtractor {
	return &ClaimExtractor{
		provider:      provider,
		maxInputChars: maxInputChars,
	}
}

// Extract returns claims in importance order. A provider failure is
// returned as an error; an unusable reply yields an empty list.
func (e *ClaimExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("claim extraction: no provider")
	}

	resp, err := e.provider.Complete(ctx, CompletionRequest{
		System: ClaimSystemPrompt,
		Prompt: extract.Truncate(text, e.maxInputChars),
	})
	if err != nil {
		return nil, fmt.Errorf("claim extraction (%s): %w", e.provider.Name(), err)
	}

	return extract.ParseClaims(resp.Text), nil
}
