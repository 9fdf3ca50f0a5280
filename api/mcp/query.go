package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/threadmapco/threadmap/pkg/query"
	"github.com/threadmapco/threadmap/pkg/session"
)

var (
	queryToolName    = "forum_query"
	queryDescription = "Ask a natural-language question about an analyzed forum discussion. Questions mentioning time, sentiment, users, or topics are answered from the session's mental map. A question matching no analysis returns an empty result."
)

// QueryInput represents the input arguments for the MCP forum_query tool.
type QueryInput struct {
	SessionID string `json:"session_id" jsonschema:"the id of an initialized analysis session"`
	Question  string `json:"question" jsonschema:"the natural-language question to answer"`
}

// QueryOutput represents the structured output of a forum query.
type QueryOutput struct {
	Result query.Result `json:"result"`
}

// handleQuery processes a forum query via MCP.
func (s *Server) handleQuery(_ context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, QueryOutput, error) {
	if input.Question == "" {
		return toolError("question is required"), QueryOutput{}, nil
	}

	sess, ok := s.config.Registry.Get(input.SessionID)
	if !ok {
		return toolError(fmt.Sprintf("no session with id %q", input.SessionID)), QueryOutput{}, nil
	}

	result, err := sess.Query(input.Question)
	if err != nil {
		if errors.Is(err, session.ErrNotReady) {
			return toolError(session.ErrNotReady.Error()), QueryOutput{}, nil
		}
		return toolError(fmt.Sprintf("query failed: %v", err)), QueryOutput{}, nil
	}

	output := QueryOutput{Result: result}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return toolError(fmt.Sprintf("failed to serialize results: %v", err)), QueryOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}
