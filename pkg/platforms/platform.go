package platforms

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// Platform is a single AI chat service that can answer a research question.
type Platform interface {
	// Name returns the stable origin identifier used in attribution.
	Name() string
	// Ask sends the question and returns the platform's full answer text.
	Ask(ctx context.Context, question string) (string, error)
}

// llmPlatform adapts any langchaingo model to the Platform interface.
type llmPlatform struct {
	name  string
	model llms.Model
}

func (p *llmPlatform) Name() string {
	return p.name
}

func (p *llmPlatform) Ask(ctx context.Context, question string) (string, error) {
	resp, err := p.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, question),
	})
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", p.name)
	}
	return resp.Choices[0].Content, nil
}
