// Package transit exposes the read-only PTV data operations consumed by the
// MCP tool surface: departures, stop search, routes, disruptions, and the
// transit mode enumeration.
//
// Every operation follows the same shape: build query parameters, issue one
// signed GET through [ptv.Client], and reduce the decoded JSON to a display
// string. The reduction step lives in format.go as pure functions so it can
// be tested without any network access.
//
// Operations never return errors to the caller. The MCP host consumes
// free-text tool output, so transport and shape failures are reported as
// "Error <doing X>: <detail>" strings instead of faults.
package transit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/melbtransit/ptvmcp/internal/ptv"
)

// Caps holds the per-operation display caps. These are presentation policy;
// zero values mean "no cap" and are not normally used.
type Caps struct {
	// MaxDepartures is the departure count used when a call requests none.
	MaxDepartures int

	// MaxStops caps stop search results.
	MaxStops int

	// MaxRoutes caps route listings.
	MaxRoutes int

	// MaxDisruptionsPerMode caps disruptions listed per transit mode.
	MaxDisruptionsPerMode int
}

// DefaultCaps returns the display caps used when none are configured.
func DefaultCaps() Caps {
	return Caps{
		MaxDepartures:         5,
		MaxStops:              10,
		MaxRoutes:             20,
		MaxDisruptionsPerMode: 5,
	}
}

// Facade bundles an activated PTV client with display policy. It holds no
// per-call state; all methods are safe for concurrent use.
type Facade struct {
	client *ptv.Client
	caps   Caps
}

// New creates a Facade around an activated client. Zero-valued caps fields
// are replaced with the defaults.
func New(client *ptv.Client, caps Caps) *Facade {
	def := DefaultCaps()
	if caps.MaxDepartures == 0 {
		caps.MaxDepartures = def.MaxDepartures
	}
	if caps.MaxStops == 0 {
		caps.MaxStops = def.MaxStops
	}
	if caps.MaxRoutes == 0 {
		caps.MaxRoutes = def.MaxRoutes
	}
	if caps.MaxDisruptionsPerMode == 0 {
		caps.MaxDisruptionsPerMode = def.MaxDisruptionsPerMode
	}
	return &Facade{client: client, caps: caps}
}

// Departures returns upcoming departures for a stop, formatted as bullet
// text. maxResults <= 0 falls back to the configured default. dateUTC, when
// non-empty, filters departures from that ISO 8601 UTC instant.
func (f *Facade) Departures(ctx context.Context, routeType ptv.RouteType, stopID, maxResults int, dateUTC string) string {
	if maxResults <= 0 {
		maxResults = f.caps.MaxDepartures
	}

	path := fmt.Sprintf("/%s/departures/route_type/%d/stop/%d", f.client.Version(), routeType, stopID)
	params := url.Values{}
	params.Set("max_results", strconv.Itoa(maxResults))
	if dateUTC != "" {
		params.Set("date_utc", dateUTC)
	}

	var resp ptv.DeparturesResponse
	if err := f.client.Get(ctx, path, params, &resp); err != nil {
		return "Error getting departures: " + err.Error()
	}
	return FormatDepartures(stopID, routeType, resp.Departures, maxResults)
}

// SearchStops searches stops by name, optionally filtered to the given
// transit modes, and returns the matches formatted as bullet text.
func (f *Facade) SearchStops(ctx context.Context, term string, routeTypes []ptv.RouteType) string {
	path := fmt.Sprintf("/%s/search/%s", f.client.Version(), url.PathEscape(term))

	var resp ptv.SearchResponse
	if err := f.client.Get(ctx, path, nil, &resp); err != nil {
		return "Error searching stops: " + err.Error()
	}

	stops := resp.Stops
	if len(routeTypes) > 0 {
		stops = slices.DeleteFunc(slices.Clone(stops), func(s ptv.Stop) bool {
			return !slices.Contains(routeTypes, s.RouteType)
		})
	}
	return FormatStops(term, stops, f.caps.MaxStops)
}

// Routes lists routes, optionally filtered by name (upstream) and by transit
// mode (client-side), formatted as bullet text.
func (f *Facade) Routes(ctx context.Context, routeName string, routeTypes []ptv.RouteType) string {
	path := fmt.Sprintf("/%s/routes", f.client.Version())
	params := url.Values{}
	if routeName != "" {
		params.Set("route_name", routeName)
	}

	var resp ptv.RoutesResponse
	if err := f.client.Get(ctx, path, params, &resp); err != nil {
		return "Error getting routes: " + err.Error()
	}

	routes := resp.Routes
	if len(routeTypes) > 0 {
		routes = slices.DeleteFunc(slices.Clone(routes), func(r ptv.Route) bool {
			return !slices.Contains(routeTypes, r.RouteType)
		})
	}
	return FormatRoutes(routes, f.caps.MaxRoutes)
}

// Disruptions lists current service disruptions grouped by transit mode,
// optionally filtered to disruptions touching at least one route of the
// given modes.
func (f *Facade) Disruptions(ctx context.Context, routeTypes []ptv.RouteType) string {
	path := fmt.Sprintf("/%s/disruptions", f.client.Version())

	var resp ptv.DisruptionsResponse
	if err := f.client.Get(ctx, path, nil, &resp); err != nil {
		return "Error getting disruptions: " + err.Error()
	}

	disruptions := resp.Disruptions
	if len(routeTypes) > 0 {
		filtered := make(map[string][]ptv.Disruption, len(disruptions))
		for mode, list := range disruptions {
			kept := slices.DeleteFunc(slices.Clone(list), func(d ptv.Disruption) bool {
				return !touchesAny(d, routeTypes)
			})
			filtered[mode] = kept
		}
		disruptions = filtered
	}
	return FormatDisruptions(disruptions, f.caps.MaxDisruptionsPerMode)
}

// touchesAny reports whether the disruption affects at least one route of
// the given transit modes.
func touchesAny(d ptv.Disruption, routeTypes []ptv.RouteType) bool {
	for _, r := range d.Routes {
		if slices.Contains(routeTypes, r.RouteType) {
			return true
		}
	}
	return false
}

// RouteTypes returns the upstream transit mode enumeration formatted as
// bullet text.
func (f *Facade) RouteTypes(ctx context.Context) string {
	path := fmt.Sprintf("/%s/route_types", f.client.Version())

	var resp ptv.RouteTypesResponse
	if err := f.client.Get(ctx, path, nil, &resp); err != nil {
		return "Error getting route types: " + err.Error()
	}
	return FormatRouteTypes(resp.RouteTypes)
}

// RouteTypesJSON returns the raw upstream route_types document as indented
// JSON for resource-style consumers. Failures are reported as an indented
// {"error": ...} JSON object rather than an error.
func (f *Facade) RouteTypesJSON(ctx context.Context) string {
	path := fmt.Sprintf("/%s/route_types", f.client.Version())

	var raw json.RawMessage
	if err := f.client.Get(ctx, path, nil, &raw); err != nil {
		b, _ := json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
		return string(b)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
