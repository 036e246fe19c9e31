// Package embeddings turns research sentences into vectors for the
// research memory.
package embeddings

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultOutputDim keeps vectors under the pgvector HNSW index limit.
const DefaultOutputDim = 1536

// GoogleEmbedder embeds text through the Gemini embeddings API.
type GoogleEmbedder struct {
	client    *genai.Client
	model     string
	outputDim int32
}

func NewGoogleEmbedder(ctx context.Context, model, apiKey string) (*GoogleEmbedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini API client: %w", err)
	}

	return &GoogleEmbedder{
		client:    client,
		model:     model,
		outputDim: DefaultOutputDim,
	}, nil
}

// EmbedText generates the embedding for a single sentence or query.
func (e *GoogleEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	res, err := e.client.Models.EmbedContent(ctx, e.model, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: text},
			},
		},
	}, &genai.EmbedContentConfig{
		OutputDimensionality: &e.outputDim,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}

	if len(res.Embeddings) == 0 || len(res.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding returned")
	}

	return res.Embeddings[0].Values, nil
}

// EmbedTexts embeds each text sequentially. Batching would cut request
// count but the batch limits vary per model, so one call per text stays
// the safe default.
func (e *GoogleEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, 0, len(texts))

	for _, text := range texts {
		vec, err := e.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		result = append(result, vec)
	}

	return result, nil
}
