// Package mcptools exposes the research pipeline over the Model Context
// Protocol so agent hosts can run and search research directly.
package mcptools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/polyquery/research-aggregator/pkg/server"
)

// pollInterval is how often run_research checks the query status while
// the pipeline worker is running.
const pollInterval = 500 * time.Millisecond

// ResearchService holds the pipeline service used by MCP tool handlers.
type ResearchService struct {
	svc *server.Service
}

func NewResearchService(svc *server.Service) *ResearchService {
	return &ResearchService{svc: svc}
}

// RunResearchInput is the input for the run_research MCP tool.
type RunResearchInput struct {
	Question  string `json:"question" jsonschema:"the research question to send to every configured platform"`
	SessionID string `json:"sessionId,omitempty" jsonschema:"existing research session UUID to attach the query to (default: new session)"`
}

// RunResearchOutput is the result of the run_research MCP tool.
type RunResearchOutput struct {
	QueryID   string `json:"queryId"`
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Report    string `json:"report,omitempty"`
}

// RunResearch dispatches the question to all platforms, waits for the
// pipeline to merge the answers, and returns the merged report.
func (s *ResearchService) RunResearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunResearchInput,
) (*mcp.CallToolResult, RunResearchOutput, error) {
	if input.Question == "" {
		return nil, RunResearchOutput{}, fmt.Errorf("question is required")
	}

	req := server.CreateQueryRequest{Question: input.Question}
	if input.SessionID != "" {
		sessionID, err := uuid.Parse(input.SessionID)
		if err != nil {
			return nil, RunResearchOutput{}, fmt.Errorf("invalid sessionId: %w", err)
		}
		req.SessionID = sessionID
	}

	query, err := s.svc.CreateQuery(ctx, req)
	if err != nil {
		return nil, RunResearchOutput{}, fmt.Errorf("create query: %w", err)
	}

	// The pipeline runs in a background worker; poll until it settles.
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, RunResearchOutput{
				QueryID:   query.ID.String(),
				SessionID: query.SessionID.String(),
				Status:    "running",
			}, ctx.Err()
		case <-ticker.C:
		}

		current, err := s.svc.GetQuery(ctx, query.ID)
		if err != nil {
			return nil, RunResearchOutput{}, fmt.Errorf("poll query: %w", err)
		}

		switch current.Status {
		case "completed":
			result, err := s.svc.GetResult(ctx, query.ID)
			if err != nil {
				return nil, RunResearchOutput{}, fmt.Errorf("load result: %w", err)
			}
			return nil, RunResearchOutput{
				QueryID:   query.ID.String(),
				SessionID: query.SessionID.String(),
				Status:    current.Status,
				Report:    result.MergedText,
			}, nil
		case "failed":
			return nil, RunResearchOutput{
				QueryID:   query.ID.String(),
				SessionID: query.SessionID.String(),
				Status:    current.Status,
			}, nil
		}
	}
}

// SearchResearchInput is the input for the search_research MCP tool.
type SearchResearchInput struct {
	Query  string `json:"query" jsonschema:"semantic search query over stored research sentences"`
	TopK   int    `json:"topK,omitempty" jsonschema:"maximum number of results (default: 5)"`
	Origin string `json:"origin,omitempty" jsonschema:"filter by origin platform: chatgpt, claude, gemini"`
}

// SearchHit is a single match from the research memory.
type SearchHit struct {
	Content string  `json:"content"`
	Origin  string  `json:"origin"`
	Section string  `json:"section"`
	Score   float64 `json:"score"`
}

// SearchResearchOutput is the result of the search_research MCP tool.
type SearchResearchOutput struct {
	Hits []SearchHit `json:"hits"`
}

// SearchResearch runs a semantic query over previously merged research.
func (s *ResearchService) SearchResearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchResearchInput,
) (*mcp.CallToolResult, SearchResearchOutput, error) {
	if input.Query == "" {
		return nil, SearchResearchOutput{}, fmt.Errorf("query is required")
	}
	if s.svc.Indexer == nil {
		return nil, SearchResearchOutput{}, fmt.Errorf("research memory is not configured")
	}

	results, err := s.svc.Indexer.Search(ctx, input.Query, input.TopK, input.Origin)
	if err != nil {
		return nil, SearchResearchOutput{}, fmt.Errorf("search: %w", err)
	}

	hits := make([]SearchHit, 0, len(results))
	for _, r := range results {
		hit := SearchHit{Content: r.Document.Content, Score: r.Score}
		if v, ok := r.Document.Metadata["origin"].(string); ok {
			hit.Origin = v
		}
		if v, ok := r.Document.Metadata["section"].(string); ok {
			hit.Section = v
		}
		hits = append(hits, hit)
	}

	return nil, SearchResearchOutput{Hits: hits}, nil
}

// GetResultInput is the input for the get_research_result MCP tool.
type GetResultInput struct {
	QueryID string `json:"queryId" jsonschema:"UUID of a completed research query"`
}

// GetResultOutput is the result of the get_research_result MCP tool.
type GetResultOutput struct {
	Report    string `json:"report"`
	Fallback  bool   `json:"fallback"`
	CreatedAt string `json:"createdAt"`
}

// GetResult loads the stored merged report for a query.
func (s *ResearchService) GetResult(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetResultInput,
) (*mcp.CallToolResult, GetResultOutput, error) {
	queryID, err := uuid.Parse(input.QueryID)
	if err != nil {
		return nil, GetResultOutput{}, fmt.Errorf("invalid queryId: %w", err)
	}

	result, err := s.svc.GetResult(ctx, queryID)
	if err != nil {
		return nil, GetResultOutput{}, fmt.Errorf("load result: %w", err)
	}

	return nil, GetResultOutput{
		Report:    result.MergedText,
		Fallback:  result.Fallback,
		CreatedAt: result.CreatedAt.Format(time.RFC3339),
	}, nil
}
