package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/repoguide/repoguide/internal/schema"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Indexer triggers an indexing run for a repository path.
type Indexer interface {
	Index(ctx context.Context, root string) (int, error)
}

// Explainer answers a question from the vector index.
type Explainer interface {
	Explain(ctx context.Context, question, scope string) (*schema.Answer, error)
}

// Server wraps an MCP server that exposes repository explanation tools.
type Server struct {
	indexer   Indexer
	explainer Explainer
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(indexer Indexer, explainer Explainer) *Server {
	s := &Server{
		indexer:   indexer,
		explainer: explainer,
	}

	s.mcp = server.NewMCPServer(
		"repoguide",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(explainRepoTool, s.handleExplainRepo)
	s.mcp.AddTool(indexRepoTool, s.handleIndexRepo)
	s.mcp.AddTool(changeDigestTool, s.handleChangeDigest)
	s.mcp.AddTool(preflightTool, s.handlePreflight)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
