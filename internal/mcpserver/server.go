// Package mcpserver assembles the MCP surface of the PTV server: five data
// tools, two prompt templates, and two read-only resources, registered on an
// [mcp.Server] from the official MCP Go SDK.
//
// The server is buildable without credentials so that hosts can list tools,
// prompts, and resources before any secret is configured. Operations that
// need signed upstream calls go through the [transit.Facade] passed in
// [Options]; when it is nil (activation failed or was never attempted), those
// operations report the missing-credentials condition in-band instead of
// failing the protocol call.
package mcpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/melbtransit/ptvmcp/internal/observe"
	"github.com/melbtransit/ptvmcp/internal/ptv"
	"github.com/melbtransit/ptvmcp/internal/transit"
)

// serverName identifies this implementation to MCP hosts.
const serverName = "ptv-melbourne-transport"

// instructions is the usage guidance sent to hosts during initialization.
const instructions = `This server provides real-time Melbourne public transport data from PTV
(Public Transport Victoria): departures, stop search, routes, service
disruptions, and the transit mode enumeration. Stop and route identifiers
come from the search_stops and get_routes tools; route types are 0=Train,
1=Tram, 2=Bus, 3=V/Line, 4=Night Bus.`

// Options configures a [Server].
type Options struct {
	// Version is the server version reported to hosts.
	Version string

	// Descriptor supplies the non-secret configuration exposed by the
	// ptv://config resource.
	Descriptor ptv.Descriptor

	// Facade performs the signed data operations. May be nil when no
	// credentials are configured; data tools then report the configuration
	// error in their text output.
	Facade *transit.Facade

	// Metrics records tool invocation counts and latencies. Defaults to
	// [observe.DefaultMetrics].
	Metrics *observe.Metrics
}

// Server is the assembled MCP server. Create instances with [New].
type Server struct {
	mcp     *mcp.Server
	desc    ptv.Descriptor
	facade  *transit.Facade
	metrics *observe.Metrics
}

// New builds the server and registers all tools, prompts, and resources.
func New(opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Metrics == nil {
		opts.Metrics = observe.DefaultMetrics()
	}

	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{Name: serverName, Version: opts.Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		desc:    opts.Descriptor,
		facade:  opts.Facade,
		metrics: opts.Metrics,
	}

	s.registerTools()
	s.registerPrompts()
	s.registerResources()
	return s
}

// Run serves MCP over stdin/stdout until ctx is cancelled or the host
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns an [http.Handler] serving MCP over the streamable-HTTP
// transport.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// Connect attaches the server to a transport and returns the session.
// Used by tests to drive the server through in-memory transports.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

// runTool executes one data operation with metrics and tracing around it.
// The returned result is always in-band: a missing facade or an upstream
// failure becomes tool output, never a protocol error.
func (s *Server) runTool(ctx context.Context, tool string, op func(context.Context, *transit.Facade) string) *mcp.CallToolResult {
	ctx, span := observe.StartSpan(ctx, "tool "+tool)
	defer span.End()

	if s.facade == nil {
		s.metrics.RecordToolCall(ctx, tool, "unconfigured")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: ptv.ErrMissingCredentials.Error()}},
			IsError: true,
		}
	}

	start := time.Now()
	text := op(ctx, s.facade)
	s.metrics.ToolDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("tool", tool)))

	status := "ok"
	if strings.HasPrefix(text, "Error ") {
		status = "error"
	}
	s.metrics.RecordToolCall(ctx, tool, status)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// toRouteTypes converts raw route type codes from tool arguments into the
// typed enumeration. Unknown codes are kept as-is; they simply match nothing
// when used as a filter.
func toRouteTypes(codes []int) []ptv.RouteType {
	if len(codes) == 0 {
		return nil
	}
	out := make([]ptv.RouteType, len(codes))
	for i, c := range codes {
		out[i] = ptv.RouteType(c)
	}
	return out
}
