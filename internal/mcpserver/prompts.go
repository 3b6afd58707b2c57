package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/melbtransit/ptvmcp/internal/transit"
)

// registerPrompts adds the two static prompt templates.
func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "transport_query",
		Description: "Generate a prompt for Melbourne transport queries around a location.",
		Arguments: []*mcp.PromptArgument{
			{Name: "location", Description: "Place or station to research.", Required: true},
			{Name: "transport_type", Description: "Mode to focus on: train, tram, bus, or any (default)."},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		location := req.Params.Arguments["location"]
		if location == "" {
			return nil, fmt.Errorf("mcpserver: prompt %q requires a location argument", req.Params.Name)
		}
		transportType := req.Params.Arguments["transport_type"]
		return promptResult(transit.TransportQueryPrompt(location, transportType)), nil
	})

	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "journey_planner",
		Description: "Generate a prompt for journey planning in Melbourne.",
		Arguments: []*mcp.PromptArgument{
			{Name: "origin", Description: "Starting point of the journey.", Required: true},
			{Name: "destination", Description: "End point of the journey.", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		origin := req.Params.Arguments["origin"]
		destination := req.Params.Arguments["destination"]
		if origin == "" || destination == "" {
			return nil, fmt.Errorf("mcpserver: prompt %q requires origin and destination arguments", req.Params.Name)
		}
		return promptResult(transit.JourneyPlannerPrompt(origin, destination)), nil
	})
}

// promptResult wraps text into a single-message user prompt.
func promptResult(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}
}
