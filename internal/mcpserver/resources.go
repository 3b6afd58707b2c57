package mcpserver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/melbtransit/ptvmcp/internal/ptv"
)

// configSnapshot is the JSON shape of the ptv://config resource. It carries
// only non-secret fields; the shared key is represented by a boolean.
type configSnapshot struct {
	BaseURL          string                   `json:"base_url"`
	APIVersion       string                   `json:"api_version"`
	DevID            string                   `json:"dev_id"`
	DevKeyConfigured bool                     `json:"dev_key_configured"`
	RouteTypes       map[ptv.RouteType]string `json:"route_types"`
	Timestamp        string                   `json:"timestamp"`
}

// ConfigSnapshot renders the server configuration as indented JSON for the
// ptv://config resource. Safe to call without credentials.
func ConfigSnapshot(desc ptv.Descriptor, now time.Time) string {
	snap := configSnapshot{
		BaseURL:          desc.BaseURL,
		APIVersion:       desc.Version,
		DevID:            desc.DevID,
		DevKeyConfigured: desc.KeyConfigured(),
		RouteTypes:       ptv.RouteTypeNames(),
		Timestamp:        now.Format(time.RFC3339),
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return `{"error": "failed to encode configuration"}`
	}
	return string(b)
}

// registerResources adds the two read-only resources.
func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         "ptv://route-types",
		Name:        "route-types",
		Description: "Route types data as returned by the PTV Timetable API.",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		var text string
		if s.facade == nil {
			b, _ := json.MarshalIndent(map[string]string{"error": ptv.ErrMissingCredentials.Error()}, "", "  ")
			text = string(b)
		} else {
			text = s.facade.RouteTypesJSON(ctx)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     text,
			}},
		}, nil
	})

	s.mcp.AddResource(&mcp.Resource{
		URI:         "ptv://config",
		Name:        "config",
		Description: "Server configuration snapshot with non-secret fields only.",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     ConfigSnapshot(s.desc, time.Now()),
			}},
		}, nil
	})
}
