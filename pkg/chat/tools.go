package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/polyquery/research-aggregator/pkg/config"
	"github.com/polyquery/research-aggregator/pkg/database"
	"github.com/polyquery/research-aggregator/pkg/embeddings"
	"github.com/polyquery/research-aggregator/pkg/vectorstore"
)

// MemoryToolset exposes the research memory to the follow-up chat agent.
type MemoryToolset struct {
	DB       *database.PostgresDB
	Embedder *embeddings.GoogleEmbedder
	config   *config.Config
}

func NewMemoryToolset(db *database.PostgresDB, embedder *embeddings.GoogleEmbedder, config *config.Config) *MemoryToolset {
	return &MemoryToolset{
		DB:       db,
		Embedder: embedder,
		config:   config,
	}
}

func (t *MemoryToolset) Name() string {
	return "memory_tools"
}

func (t *MemoryToolset) Tools(ctx agent.ReadonlyContext) ([]tool.Tool, error) {
	searchTool, err := functiontool.New[SearchResearchArgs, SearchResearchResp](
		functiontool.Config{
			Name:        "search_research",
			Description: "Search past merged research semantically and return matching sentences with their origin platform and section.",
		},
		t.searchResearchTool,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search tool: %w", err)
	}

	findByOriginTool, err := functiontool.New[FindOriginArgs, FindOriginResp](
		functiontool.Config{
			Name:        "find_research_by_origin",
			Description: "Return all stored research sentences first contributed by a specific platform (chatgpt, claude, gemini).",
		},
		t.findResearchByOriginTool,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create find_by_origin tool: %w", err)
	}

	findByMetadataTool, err := functiontool.New[FindMetadataArgs, FindMetadataResp](
		functiontool.Config{
			Name:        "find_research_by_metadata",
			Description: "Find stored research using complex logical filters on metadata (origin, section, query_id).",
		},
		t.findResearchByMetadataTool,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create find_by_metadata tool: %w", err)
	}

	return []tool.Tool{searchTool, findByOriginTool, findByMetadataTool}, nil
}

// --- Tool Implementations ---

type SearchResearchArgs struct {
	Query  string `json:"query" description:"The search query"`
	TopK   int    `json:"topK,omitempty" description:"Number of results to return (default 5)"`
	Origin string `json:"origin,omitempty" description:"Optional origin platform filter"`
}

type SearchResearchResp struct {
	Results string `json:"results"`
}

// Wrapper for ADK tool interface
func (t *MemoryToolset) searchResearchTool(ctx tool.Context, args SearchResearchArgs) (SearchResearchResp, error) {
	return t.SearchResearch(ctx, args)
}

// Public method using standard context
func (t *MemoryToolset) SearchResearch(ctx context.Context, args SearchResearchArgs) (SearchResearchResp, error) {
	if args.TopK == 0 {
		args.TopK = 5
	}
	collection := t.config.CollectionName

	slog.Info("Search research memory", "query", args.Query, "topK", args.TopK, "origin", args.Origin)

	queryEmbedding, err := t.Embedder.EmbedText(ctx, args.Query)
	if err != nil {
		return SearchResearchResp{}, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	store, err := vectorstore.NewPGVectorStore(t.DB.Pool, collection)
	if err != nil {
		return SearchResearchResp{}, fmt.Errorf("invalid collection name: %w", err)
	}

	results, err := store.SimilaritySearch(ctx, queryEmbedding, args.TopK, args.Origin)
	if err != nil {
		return SearchResearchResp{}, fmt.Errorf("failed to search: %w", err)
	}

	var formattedResults []string
	for _, result := range results {
		origin := "unknown"
		if s, ok := result.Document.Metadata["origin"].(string); ok {
			origin = s
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("[Origin]: %s\n[Content]: %s", origin, result.Document.Content))

		for k, v := range result.Document.Metadata {
			if k == "origin" {
				continue
			}
			sb.WriteString(fmt.Sprintf("\n[%s]: %v", k, v))
		}

		formattedResults = append(formattedResults, sb.String())
	}

	serialized := strings.Join(formattedResults, "\n\n")
	return SearchResearchResp{Results: serialized}, nil
}

type FindOriginArgs struct {
	Origin string `json:"origin" description:"The platform to find research sentences for"`
}

type FindOriginResp struct {
	Content string `json:"content"`
}

// Wrapper for ADK tool interface
func (t *MemoryToolset) findResearchByOriginTool(ctx tool.Context, args FindOriginArgs) (FindOriginResp, error) {
	return t.FindResearchByOrigin(ctx, args)
}

// Public method using standard context
func (t *MemoryToolset) FindResearchByOrigin(ctx context.Context, args FindOriginArgs) (FindOriginResp, error) {
	collection := t.config.CollectionName

	store, err := vectorstore.NewPGVectorStore(t.DB.Pool, collection)
	if err != nil {
		return FindOriginResp{}, fmt.Errorf("invalid collection name: %w", err)
	}

	results, err := store.GetContentByOrigin(ctx, args.Origin)
	if err != nil {
		return FindOriginResp{}, fmt.Errorf("failed to find content: %w", err)
	}

	var formattedResults []string
	for _, result := range results {
		formattedResults = append(formattedResults, result.Content)
	}

	serialized := strings.Join(formattedResults, "\n\n")
	return FindOriginResp{Content: serialized}, nil
}

type FindMetadataArgs struct {
	Filter map[string]interface{} `json:"filter" description:"JSON filter object with logical operators ($and, $or, $not)"`
}

type FindMetadataResp struct {
	Content string `json:"content"`
}

// Wrapper for ADK tool interface
func (t *MemoryToolset) findResearchByMetadataTool(ctx tool.Context, args FindMetadataArgs) (FindMetadataResp, error) {
	return t.FindResearchByMetadata(ctx, args)
}

// Public method using standard context
func (t *MemoryToolset) FindResearchByMetadata(ctx context.Context, args FindMetadataArgs) (FindMetadataResp, error) {
	collection := t.config.CollectionName

	store, err := vectorstore.NewPGVectorStore(t.DB.Pool, collection)
	if err != nil {
		return FindMetadataResp{}, fmt.Errorf("invalid collection name: %w", err)
	}

	results, err := store.GetContentByMetadata(ctx, args.Filter)
	if err != nil {
		return FindMetadataResp{}, fmt.Errorf("failed to find content: %w", err)
	}

	var formattedResults []string
	for _, result := range results {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("[Content]: %s", result.Content))
		for k, v := range result.Metadata {
			sb.WriteString(fmt.Sprintf("\n[%s]: %v", k, v))
		}
		formattedResults = append(formattedResults, sb.String())
	}

	serialized := strings.Join(formattedResults, "\n\n")
	return FindMetadataResp{Content: serialized}, nil
}
