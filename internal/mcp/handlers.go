package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/repoguide/repoguide/internal/digest"
	"github.com/repoguide/repoguide/internal/preflight"
	"github.com/repoguide/repoguide/internal/retriever"
)

func (s *Server) handleExplainRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	scope := request.GetString("scope", "")

	answer, err := s.explainer.Explain(ctx, question, scope)
	if err != nil {
		if errors.Is(err, retriever.ErrNoGrounding) {
			return mcp.NewToolResultText("Not enough indexed context to answer this question. Index the repository first with index_repo."), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("explain failed: %v", err)), nil
	}

	return jsonResult(answer)
}

func (s *Server) handleIndexRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	chunks, err := s.indexer.Index(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("indexing failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Indexed %d chunks from %s", chunks, path)), nil
}

func (s *Server) handleChangeDigest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	days := request.GetInt("days", digest.DefaultDays)

	report := digest.Run(path, days)
	return jsonResult(report)
}

func (s *Server) handlePreflight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report := preflight.Run(path)
	return jsonResult(report)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
