package mcptools

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewResearchMCPServer creates an MCP server with the research tools registered.
func NewResearchMCPServer(svc *ResearchService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "research-aggregator",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_research",
		Description: "Send a research question to every configured AI platform, deduplicate and merge the answers, and return one attributed report.",
	}, svc.RunResearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_research",
		Description: "Semantically search sentences from previously merged research. Each hit carries its origin platform and report section.",
	}, svc.SearchResearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_research_result",
		Description: "Load the stored merged report for a completed research query by its UUID.",
	}, svc.GetResult)

	return server
}

// HTTPHandler returns a streamable HTTP handler for the research MCP
// server, suitable for mounting into the API router.
func HTTPHandler(svc *ResearchService) http.Handler {
	server := NewResearchMCPServer(svc)
	return mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)
}
