package transit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/melbtransit/ptvmcp/internal/ptv"
)

// newTestFacade builds a facade whose client talks to the given handler.
func newTestFacade(t *testing.T, handler http.HandlerFunc) *Facade {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	d := ptv.NewDescriptor(ts.URL, "v3", "1", "secret")
	client, err := d.Activate(ptv.WithHTTPClient(ts.Client()))
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	return New(client, Caps{})
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestDepartures_TruncatesUpstreamExcess(t *testing.T) {
	t.Parallel()
	// Upstream ignores max_results and returns six entries.
	f := newTestFacade(t, jsonHandler(`{"departures": [
		{"route_id": 1, "scheduled_departure_utc": "2025-08-31T14:00:00Z"},
		{"route_id": 2, "scheduled_departure_utc": "2025-08-31T14:05:00Z"},
		{"route_id": 3, "scheduled_departure_utc": "2025-08-31T14:10:00Z"},
		{"route_id": 4, "scheduled_departure_utc": "2025-08-31T14:15:00Z"},
		{"route_id": 5, "scheduled_departure_utc": "2025-08-31T14:20:00Z"},
		{"route_id": 6, "scheduled_departure_utc": "2025-08-31T14:25:00Z"}
	]}`))

	got := f.Departures(context.Background(), ptv.RouteTypeTrain, 1071, 2, "")
	if n := strings.Count(got, "• "); n != 2 {
		t.Errorf("rendered %d departures, want 2:\n%s", n, got)
	}
}

func TestDepartures_TransportFailure(t *testing.T) {
	t.Parallel()
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	got := f.Departures(context.Background(), ptv.RouteTypeTrain, 1071, 5, "")
	if !strings.HasPrefix(got, "Error getting departures:") {
		t.Errorf("got %q, want Error getting departures: prefix", got)
	}
}

func TestDepartures_RequestShape(t *testing.T) {
	t.Parallel()
	var gotPath, gotMax, gotDate string
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMax = r.URL.Query().Get("max_results")
		gotDate = r.URL.Query().Get("date_utc")
		w.Write([]byte(`{"departures": []}`))
	})

	f.Departures(context.Background(), ptv.RouteTypeTram, 2500, 7, "2025-08-31T14:00:00Z")
	if gotPath != "/v3/departures/route_type/1/stop/2500" {
		t.Errorf("path = %q", gotPath)
	}
	if gotMax != "7" {
		t.Errorf("max_results = %q, want 7", gotMax)
	}
	if gotDate != "2025-08-31T14:00:00Z" {
		t.Errorf("date_utc = %q", gotDate)
	}
}

func TestSearchStops_EscapesTerm(t *testing.T) {
	t.Parallel()
	var gotPath string
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"stops": []}`))
	})

	got := f.SearchStops(context.Background(), "flinders street", nil)
	if gotPath != "/v3/search/flinders%20street" {
		t.Errorf("path = %q", gotPath)
	}
	if got != "No stops found matching 'flinders street'." {
		t.Errorf("got %q", got)
	}
}

func TestSearchStops_RouteTypeFilter(t *testing.T) {
	t.Parallel()
	f := newTestFacade(t, jsonHandler(`{"stops": [
		{"stop_id": 1, "stop_name": "Train Stop", "route_type": 0},
		{"stop_id": 2, "stop_name": "Tram Stop", "route_type": 1},
		{"stop_id": 3, "stop_name": "Bus Stop", "route_type": 2}
	]}`))

	got := f.SearchStops(context.Background(), "stop", []ptv.RouteType{ptv.RouteTypeTram})
	if strings.Contains(got, "Train Stop") || strings.Contains(got, "Bus Stop") {
		t.Errorf("filter leaked other modes:\n%s", got)
	}
	if !strings.Contains(got, "Tram Stop") {
		t.Errorf("filter dropped the matching stop:\n%s", got)
	}
}

func TestRoutes_EmptyUpstream(t *testing.T) {
	t.Parallel()
	f := newTestFacade(t, jsonHandler(`{"routes": []}`))

	got := f.Routes(context.Background(), "", nil)
	if got != "No routes found." {
		t.Errorf("got %q", got)
	}
}

func TestRoutes_NameParamAndFilter(t *testing.T) {
	t.Parallel()
	var gotName string
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		gotName = r.URL.Query().Get("route_name")
		w.Write([]byte(`{"routes": [
			{"route_id": 1, "route_name": "Alamein", "route_type": 0},
			{"route_id": 58, "route_name": "West Coburg", "route_type": 1}
		]}`))
	})

	got := f.Routes(context.Background(), "Alamein", []ptv.RouteType{ptv.RouteTypeTrain})
	if gotName != "Alamein" {
		t.Errorf("route_name param = %q", gotName)
	}
	if strings.Contains(got, "West Coburg") {
		t.Errorf("route type filter leaked:\n%s", got)
	}
}

func TestDisruptions_Filter(t *testing.T) {
	t.Parallel()
	f := newTestFacade(t, jsonHandler(`{"disruptions": {
		"metro_train": [
			{"title": "Train works", "routes": [{"route_id": 1, "route_type": 0}]}
		],
		"metro_tram": [
			{"title": "Tram works", "routes": [{"route_id": 58, "route_type": 1}]}
		]
	}}`))

	got := f.Disruptions(context.Background(), []ptv.RouteType{ptv.RouteTypeTrain})
	if !strings.Contains(got, "Train works") {
		t.Errorf("matching disruption dropped:\n%s", got)
	}
	if strings.Contains(got, "Tram works") {
		t.Errorf("filter leaked other modes:\n%s", got)
	}
}

func TestDisruptions_TransportFailure(t *testing.T) {
	t.Parallel()
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	got := f.Disruptions(context.Background(), nil)
	if !strings.HasPrefix(got, "Error getting disruptions:") {
		t.Errorf("got %q", got)
	}
}

func TestRouteTypes_Text(t *testing.T) {
	t.Parallel()
	f := newTestFacade(t, jsonHandler(`{"route_types": [
		{"route_type": 0, "route_type_name": "Train"},
		{"route_type": 4, "route_type_name": "Night Bus"}
	]}`))

	got := f.RouteTypes(context.Background())
	if !strings.Contains(got, "• Train (ID: 0)") || !strings.Contains(got, "• Night Bus (ID: 4)") {
		t.Errorf("got:\n%s", got)
	}
}

func TestRouteTypesJSON(t *testing.T) {
	t.Parallel()
	f := newTestFacade(t, jsonHandler(`{"route_types": [{"route_type": 0, "route_type_name": "Train"}]}`))

	got := f.RouteTypesJSON(context.Background())
	if !strings.Contains(got, `"route_type_name": "Train"`) {
		t.Errorf("got:\n%s", got)
	}
	if !strings.Contains(got, "\n  ") {
		t.Errorf("output not indented:\n%s", got)
	}
}

func TestRouteTypesJSON_Failure(t *testing.T) {
	t.Parallel()
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	got := f.RouteTypesJSON(context.Background())
	if !strings.Contains(got, `"error"`) {
		t.Errorf("failure not reported as error JSON:\n%s", got)
	}
}
