// Package readinessmcp exposes the readiness scoring as MCP tools.
// The same server runs over stdio (cmd/readiness_mcp) and over HTTP at /mcp on the main backend.
package readinessmcp

import (
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName    = "align-readiness"
	ServerVersion = "1.0.0"
)

// NewServer builds an MCP server with the readiness tools: questions, compute, recommendation.
func NewServer(service readinessService) *server.MCPServer {
	h := NewHandler(service)
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("list_readiness_questions",
		mcp.WithDescription("Returns the daily readiness check-in questions in presentation order: id, text, category, answer type, allowed values. "+
			"Use before compute_readiness to know which answers to collect."),
		mcp.WithString("variant",
			mcp.Description("Question set: base (single page checklist) or extended (wizard, adds workout focus and recency). Defaults to the server variant."),
			mcp.Enum("base", "extended"),
		),
	), h.ListQuestionsTool())

	s.AddTool(mcp.NewTool("compute_readiness",
		mcp.WithDescription("Scores readiness answers: physical, mental, recovery and overall scores (0-100), their levels, the training recommendation "+
			"and whether the response is complete. Unanswered questions fall back to their defaults."),
		mcp.WithString("variant",
			mcp.Description("Question set: base or extended. Defaults to the server variant."),
			mcp.Enum("base", "extended"),
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(`JSON object of question id to value, e.g. {"sleep_hours": 7, "energy_level": 4, "sore_muscle_groups": ["core"]}`),
		),
	), h.ComputeReadinessTool())

	s.AddTool(mcp.NewTool("readiness_recommendation",
		mcp.WithDescription("Returns the readiness level (excellent, good, moderate, low) and the training recommendation for an overall score."),
		mcp.WithNumber("score",
			mcp.Required(),
			mcp.Description("Overall readiness score, 0-100"),
		),
	), h.RecommendationTool())

	return s
}

// NewHTTPHandler serves the MCP server over streamable HTTP.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s, server.WithStateLess(true))
}
