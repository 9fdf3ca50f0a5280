package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/threadmapco/threadmap/pkg/cache"
	"github.com/threadmapco/threadmap/pkg/session"
)

var (
	statusToolName    = "forum_status"
	statusDescription = "Report the readiness of an analysis session, its initial-analysis summary, and the shared cache's counters. Call this before forum_query to learn what the session can answer."
)

// StatusInput represents the input arguments for the MCP forum_status tool.
type StatusInput struct {
	SessionID string `json:"session_id" jsonschema:"the id of the analysis session to inspect"`
}

// StatusOutput represents the structured output of a status check.
type StatusOutput struct {
	Status     string           `json:"status"`
	Ready      bool             `json:"ready"`
	Summary    *session.Summary `json:"summary,omitempty"`
	CacheStats cache.Stats      `json:"cache_stats"`
}

// handleStatus processes a status request via MCP.
func (s *Server) handleStatus(_ context.Context, _ *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
	sess, ok := s.config.Registry.Get(input.SessionID)
	if !ok {
		return toolError(fmt.Sprintf("no session with id %q", input.SessionID)), StatusOutput{}, nil
	}

	output := StatusOutput{
		Status:     sess.Status(),
		Ready:      sess.State() == session.StateReady,
		CacheStats: sess.CacheStats(),
	}
	if summary, err := sess.Summarize(); err == nil {
		output.Summary = &summary
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return toolError(fmt.Sprintf("failed to serialize results: %v", err)), StatusOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
