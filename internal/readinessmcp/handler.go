package readinessmcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service readinessService
}

func NewHandler(service readinessService) *Handler {
	return &Handler{
		service: service,
	}
}

// QuestionsResponse is the output of list_readiness_questions.
type QuestionsResponse struct {
	Variant   readiness.Variant    `json:"variant"`
	Questions []readiness.Question `json:"questions"`
}

// ListQuestionsTool returns the MCP tool handler for list_readiness_questions.
func (h *Handler) ListQuestionsTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, span := tracing.GlobalTracer.Start(ctx, "mcp.readiness.listQuestions")
		defer span.End()

		variant, questions, err := h.service.Questions(req.GetString("variant", ""))
		if err != nil {
			return mcp.NewToolResultError("Error listing questions: " + err.Error()), nil
		}
		return jsonResult(QuestionsResponse{
			Variant:   variant,
			Questions: questions,
		}), nil
	}
}

// ComputeReadinessTool returns the MCP tool handler for compute_readiness.
func (h *Handler) ComputeReadinessTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, span := tracing.GlobalTracer.Start(ctx, "mcp.readiness.compute")
		defer span.End()

		computation, err := h.service.Compute(req.GetString("variant", ""), req.GetString("answers", ""))
		if err != nil {
			return mcp.NewToolResultError("Error computing readiness: " + err.Error()), nil
		}
		return jsonResult(computation), nil
	}
}

// RecommendationTool returns the MCP tool handler for readiness_recommendation.
func (h *Handler) RecommendationTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, span := tracing.GlobalTracer.Start(ctx, "mcp.readiness.recommendation")
		defer span.End()

		score, ok := req.GetArguments()["score"].(float64)
		if !ok {
			return mcp.NewToolResultError("'score' is required"), nil
		}
		if score != float64(int(score)) {
			return mcp.NewToolResultError(fmt.Sprintf("'score' must be a whole number, got %v", score)), nil
		}

		result, err := h.service.Recommendation(int(score))
		if err != nil {
			return mcp.NewToolResultError("Error resolving recommendation: " + err.Error()), nil
		}
		return jsonResult(result), nil
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Error encoding response: " + err.Error())
	}
	return mcp.NewToolResultText(string(raw))
}
