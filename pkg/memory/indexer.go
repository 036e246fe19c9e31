// Package memory indexes merged research into pgvector so past answers
// stay searchable across sessions.
package memory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polyquery/research-aggregator/pkg/database"
	"github.com/polyquery/research-aggregator/pkg/embeddings"
	"github.com/polyquery/research-aggregator/pkg/merge"
	"github.com/polyquery/research-aggregator/pkg/vectorstore"
)

// EmbeddingDim matches the embedder's configured output dimensionality.
const EmbeddingDim = 1536

// Indexer embeds the unique sentences of a merge result and stores
// them in the research memory collection.
type Indexer struct {
	DB         *database.PostgresDB
	Embedder   *embeddings.GoogleEmbedder
	Collection string
	Logger     *slog.Logger
}

func NewIndexer(db *database.PostgresDB, embedder *embeddings.GoogleEmbedder, collection string) *Indexer {
	return &Indexer{
		DB:         db,
		Embedder:   embedder,
		Collection: collection,
		Logger:     slog.Default(),
	}
}

// EnsureSchema prepares the pgvector extension and collection table.
func (ix *Indexer) EnsureSchema(ctx context.Context) error {
	if err := ix.DB.EnsureVectorExtension(ctx); err != nil {
		return fmt.Errorf("failed to ensure vector extension: %w", err)
	}
	if err := ix.DB.CreateEmbeddingsTable(ctx, ix.Collection, EmbeddingDim); err != nil {
		return fmt.Errorf("failed to create collection table: %w", err)
	}
	return nil
}

// IndexResult embeds every classified sentence of the merge result and
// stores it with origin/section/query metadata. Indexing is best-effort
// enrichment: callers treat an error here as non-fatal to the merge.
func (ix *Indexer) IndexResult(ctx context.Context, result *merge.MergeResult) error {
	var texts []string
	var metas []map[string]interface{}

	for section, entries := range result.Structure {
		for _, entry := range entries {
			texts = append(texts, entry.Text)
			metas = append(metas, map[string]interface{}{
				"origin":   entry.Source,
				"section":  section,
				"query_id": result.QueryID.String(),
			})
		}
	}
	if len(texts) == 0 {
		ix.Logger.Info("No sentences to index", "query_id", result.QueryID)
		return nil
	}

	vectors, err := ix.Embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed sentences: %w", err)
	}

	documents := make([]vectorstore.Document, len(texts))
	for i := range texts {
		documents[i] = vectorstore.Document{
			Content:   texts[i],
			Metadata:  metas[i],
			Embedding: vectors[i],
		}
	}

	store, err := vectorstore.NewPGVectorStore(ix.DB.Pool, ix.Collection)
	if err != nil {
		return fmt.Errorf("invalid collection name: %w", err)
	}
	if err := store.AddDocuments(ctx, documents); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}

	ix.Logger.Info("Indexed merge result", "query_id", result.QueryID, "sentences", len(texts))
	return nil
}

// Search runs a semantic query over the stored research memory.
func (ix *Indexer) Search(ctx context.Context, query string, topK int, origin string) ([]vectorstore.SimilaritySearchResult, error) {
	if topK <= 0 {
		topK = 5
	}

	queryEmbedding, err := ix.Embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	store, err := vectorstore.NewPGVectorStore(ix.DB.Pool, ix.Collection)
	if err != nil {
		return nil, fmt.Errorf("invalid collection name: %w", err)
	}

	return store.SimilaritySearch(ctx, queryEmbedding, topK, origin)
}
