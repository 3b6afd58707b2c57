package mcpserver

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/melbtransit/ptvmcp/internal/ptv"
	"github.com/melbtransit/ptvmcp/internal/transit"
)

// routeTypeDescription documents the transit mode codes wherever a tool
// accepts one.
const routeTypeDescription = "Transport mode: 0=Train, 1=Tram, 2=Bus, 3=V/Line, 4=Night Bus"

// DeparturesArgs is the input for the get_departures tool.
type DeparturesArgs struct {
	RouteType  int    `json:"route_type"`
	StopID     int    `json:"stop_id"`
	MaxResults int    `json:"max_results,omitempty"`
	DateUTC    string `json:"date_utc,omitempty"`
}

// SearchStopsArgs is the input for the search_stops tool.
type SearchStopsArgs struct {
	SearchTerm string `json:"search_term"`
	RouteTypes []int  `json:"route_types,omitempty"`
}

// RoutesArgs is the input for the get_routes tool.
type RoutesArgs struct {
	RouteName  string `json:"route_name,omitempty"`
	RouteTypes []int  `json:"route_types,omitempty"`
}

// DisruptionsArgs is the input for the get_disruptions tool.
type DisruptionsArgs struct {
	RouteTypes []int `json:"route_types,omitempty"`
}

// RouteTypesArgs is the (empty) input for the get_route_types tool.
type RouteTypesArgs struct{}

// registerTools adds the five data tools with explicit input schemas.
func (s *Server) registerTools() {
	routeTypesFilter := &jsonschema.Schema{
		Type:        "array",
		Description: "Optional transit mode filter, applied to the returned items.",
		Items:       &jsonschema.Schema{Type: "integer", Description: routeTypeDescription},
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_departures",
		Description: "Get departure times for all routes from a specific stop.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"route_type": {Type: "integer", Description: routeTypeDescription},
				"stop_id":    {Type: "integer", Description: "Identifier of the stop, as returned by search_stops."},
				"max_results": {
					Type:        "integer",
					Description: "Maximum number of departures to return (default 5).",
				},
				"date_utc": {
					Type:        "string",
					Description: "Filter by date and time, ISO 8601 UTC (e.g. \"2025-08-31T14:00:00Z\").",
				},
			},
			Required: []string{"route_type", "stop_id"},
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in DeparturesArgs) (*mcp.CallToolResult, any, error) {
		res := s.runTool(ctx, "get_departures", func(ctx context.Context, f *transit.Facade) string {
			return f.Departures(ctx, ptv.RouteType(in.RouteType), in.StopID, in.MaxResults, in.DateUTC)
		})
		return res, nil, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_stops",
		Description: "Search for stops by name.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"search_term": {Type: "string", Description: "Search term for the stop name."},
				"route_types": routeTypesFilter,
			},
			Required: []string{"search_term"},
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in SearchStopsArgs) (*mcp.CallToolResult, any, error) {
		res := s.runTool(ctx, "search_stops", func(ctx context.Context, f *transit.Facade) string {
			return f.SearchStops(ctx, in.SearchTerm, toRouteTypes(in.RouteTypes))
		})
		return res, nil, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_routes",
		Description: "Get routes, optionally filtered by name or transport mode.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"route_name":  {Type: "string", Description: "Optional route name to filter by."},
				"route_types": routeTypesFilter,
			},
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in RoutesArgs) (*mcp.CallToolResult, any, error) {
		res := s.runTool(ctx, "get_routes", func(ctx context.Context, f *transit.Facade) string {
			return f.Routes(ctx, in.RouteName, toRouteTypes(in.RouteTypes))
		})
		return res, nil, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_disruptions",
		Description: "Get current service disruptions.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"route_types": routeTypesFilter,
			},
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in DisruptionsArgs) (*mcp.CallToolResult, any, error) {
		res := s.runTool(ctx, "get_disruptions", func(ctx context.Context, f *transit.Facade) string {
			return f.Disruptions(ctx, toRouteTypes(in.RouteTypes))
		})
		return res, nil, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_route_types",
		Description: "Get all available transport modes in Melbourne.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in RouteTypesArgs) (*mcp.CallToolResult, any, error) {
		res := s.runTool(ctx, "get_route_types", func(ctx context.Context, f *transit.Facade) string {
			return f.RouteTypes(ctx)
		})
		return res, nil, nil
	})
}
