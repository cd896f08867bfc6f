package mcp

import "github.com/mark3labs/mcp-go/mcp"

// explainRepoTool defines the explain_repo MCP tool.
var explainRepoTool = mcp.NewTool("explain_repo",
	mcp.WithDescription("Answer a natural-language question about the indexed repository, grounded in retrieved chunks with citations."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Natural language question about the repository"),
	),
	mcp.WithString("scope",
		mcp.Description("Optional scope hint (currently unused by retrieval)"),
	),
)

// indexRepoTool defines the index_repo MCP tool.
var indexRepoTool = mcp.NewTool("index_repo",
	mcp.WithDescription("Chunk and embed a repository directory into the vector index. Returns the number of chunks indexed."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Absolute path to the repository root"),
	),
)

// changeDigestTool defines the change_digest MCP tool.
var changeDigestTool = mcp.NewTool("change_digest",
	mcp.WithDescription("Summarize recent change activity in a repository from its git log, or file modification times for non-git directories."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Absolute path to the repository root"),
	),
	mcp.WithNumber("days",
		mcp.Description("How many days back to look (default 30)"),
	),
)

// preflightTool defines the preflight MCP tool.
var preflightTool = mcp.NewTool("preflight",
	mcp.WithDescription("Run repository-health heuristics (README, version pins, docker-compose, .env.example, test instructions)."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Absolute path to the repository root"),
	),
)
