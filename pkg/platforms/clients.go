package platforms

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Default models per platform. See each provider's model listing for
// alternatives; these can be overridden via environment variables.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-20241022"
	DefaultGoogleModel    = "gemini-2.0-flash"
)

// NewOpenAI builds the ChatGPT platform. Reads OPENAI_API_KEY when the
// key argument is empty.
func NewOpenAI(model, apiKey string) (Platform, error) {
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts := []openai.Option{openai.WithModel(model)}
	if apiKey != "" {
		opts = append(opts, openai.WithToken(apiKey))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init openai client: %w", err)
	}
	return &llmPlatform{name: "chatgpt", model: llm}, nil
}

// NewAnthropic builds the Claude platform. Reads ANTHROPIC_API_KEY when
// the key argument is empty.
func NewAnthropic(model, apiKey string) (Platform, error) {
	if model == "" {
		model = DefaultAnthropicModel
	}
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	llm, err := anthropic.New(anthropic.WithToken(apiKey), anthropic.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to init anthropic client: %w", err)
	}
	return &llmPlatform{name: "claude", model: llm}, nil
}

// NewGoogle builds the Gemini platform. Reads GOOGLE_API_KEY when the
// key argument is empty.
func NewGoogle(ctx context.Context, model, apiKey string) (Platform, error) {
	if model == "" {
		model = DefaultGoogleModel
	}
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	llm, err := googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to init googleai client: %w", err)
	}
	return &llmPlatform{name: "gemini", model: llm}, nil
}
