package ptv

// Response envelopes for the Timetable API resources this server consumes.
// Field coverage is deliberately partial: the upstream returns many more
// fields than the display layer needs, and missing fields simply decode to
// zero values.

// DeparturesResponse is the body of /{v}/departures/route_type/{t}/stop/{id}.
type DeparturesResponse struct {
	Departures []Departure `json:"departures"`
}

// Departure is a single scheduled or estimated departure from a stop.
type Departure struct {
	RouteID               int    `json:"route_id"`
	StopID                int    `json:"stop_id"`
	DirectionID           int    `json:"direction_id"`
	ScheduledDepartureUTC string `json:"scheduled_departure_utc"`
	EstimatedDepartureUTC string `json:"estimated_departure_utc"`
	PlatformNumber        string `json:"platform_number"`
	AtPlatform            bool   `json:"at_platform"`
}

// SearchResponse is the body of /{v}/search/{term}. Only the stop results
// are consumed; the endpoint also returns routes and outlets.
type SearchResponse struct {
	Stops []Stop `json:"stops"`
}

// Stop is a stop returned by the search endpoint.
type Stop struct {
	StopID    int       `json:"stop_id"`
	StopName  string    `json:"stop_name"`
	RouteType RouteType `json:"route_type"`
	Suburb    string    `json:"stop_suburb"`
}

// RoutesResponse is the body of /{v}/routes.
type RoutesResponse struct {
	Routes []Route `json:"routes"`
}

// Route is a single transit route.
type Route struct {
	RouteID     int       `json:"route_id"`
	RouteName   string    `json:"route_name"`
	RouteNumber string    `json:"route_number"`
	RouteType   RouteType `json:"route_type"`
}

// DisruptionsResponse is the body of /{v}/disruptions. Disruptions are
// grouped by mode name (e.g. "metro_train", "metro_tram").
type DisruptionsResponse struct {
	Disruptions map[string][]Disruption `json:"disruptions"`
}

// Disruption is a single service disruption notice.
type Disruption struct {
	DisruptionID int     `json:"disruption_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Status       string  `json:"disruption_status"`
	Routes       []Route `json:"routes"`
}

// RouteTypesResponse is the body of /{v}/route_types.
type RouteTypesResponse struct {
	RouteTypes []RouteTypeInfo `json:"route_types"`
}

// RouteTypeInfo is one entry of the upstream transit mode enumeration.
type RouteTypeInfo struct {
	RouteType     int    `json:"route_type"`
	RouteTypeName string `json:"route_type_name"`
}
