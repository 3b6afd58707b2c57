package ptv

import "fmt"

// RouteType is the transit mode enumeration used by the PTV Timetable API to
// classify stops, routes, and disruptions.
type RouteType int

const (
	RouteTypeTrain RouteType = iota
	RouteTypeTram
	RouteTypeBus
	RouteTypeVLine
	RouteTypeNightBus
)

// String returns the display label for the route type. Codes outside the
// known enumeration render as "Type N" rather than failing.
func (rt RouteType) String() string {
	switch rt {
	case RouteTypeTrain:
		return "Train"
	case RouteTypeTram:
		return "Tram"
	case RouteTypeBus:
		return "Bus"
	case RouteTypeVLine:
		return "V/Line"
	case RouteTypeNightBus:
		return "Night Bus"
	}
	return fmt.Sprintf("Type %d", int(rt))
}

// RouteTypeNames returns the full label map for the known transit modes.
// The map is freshly allocated on each call; callers may modify it.
func RouteTypeNames() map[RouteType]string {
	return map[RouteType]string{
		RouteTypeTrain:    "Train",
		RouteTypeTram:     "Tram",
		RouteTypeBus:      "Bus",
		RouteTypeVLine:    "V/Line",
		RouteTypeNightBus: "Night Bus",
	}
}
