package transit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/melbtransit/ptvmcp/internal/ptv"
)

// descriptionLimit is the character budget for a disruption description
// before it is cut off with an ellipsis.
const descriptionLimit = 200

// FormatDepartures renders a departure list as bullet text, truncated to max
// entries. Estimated times are preferred over scheduled ones.
func FormatDepartures(stopID int, routeType ptv.RouteType, departures []ptv.Departure, max int) string {
	if len(departures) == 0 {
		return "No departures found for this stop."
	}
	if max > 0 && len(departures) > max {
		departures = departures[:max]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Departures from stop %d (%s):\n\n", stopID, routeType)

	for _, d := range departures {
		timeStr := "Sch: " + d.ScheduledDepartureUTC
		if d.EstimatedDepartureUTC != "" {
			timeStr = "Est: " + d.EstimatedDepartureUTC
		}

		route := "Unknown"
		if d.RouteID != 0 {
			route = strconv.Itoa(d.RouteID)
		}

		platform := ""
		if d.PlatformNumber != "" {
			platform = " Platform " + d.PlatformNumber
		}

		fmt.Fprintf(&b, "• Route %s - %s%s\n", route, timeStr, platform)
	}
	return b.String()
}

// FormatStops renders stop search results as bullet text, truncated to max
// entries.
func FormatStops(term string, stops []ptv.Stop, max int) string {
	if len(stops) == 0 {
		return fmt.Sprintf("No stops found matching '%s'.", term)
	}
	if max > 0 && len(stops) > max {
		stops = stops[:max]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stops matching '%s':\n\n", term)

	for _, s := range stops {
		name := s.StopName
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(&b, "• %s (ID: %d) - %s\n", name, s.StopID, s.RouteType)
	}
	return b.String()
}

// FormatRoutes renders a route list as bullet text, truncated to max entries.
func FormatRoutes(routes []ptv.Route, max int) string {
	if len(routes) == 0 {
		return "No routes found."
	}
	if max > 0 && len(routes) > max {
		routes = routes[:max]
	}

	var b strings.Builder
	b.WriteString("Available routes:\n\n")

	for _, r := range routes {
		name := r.RouteName
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(&b, "• %s (ID: %d) - %s\n", name, r.RouteID, r.RouteType)
	}
	return b.String()
}

// FormatDisruptions renders disruptions grouped by transit mode, with at
// most perMode entries per mode. Modes are emitted in sorted name order so
// the output is deterministic.
func FormatDisruptions(disruptions map[string][]ptv.Disruption, perMode int) string {
	modes := make([]string, 0, len(disruptions))
	for mode, list := range disruptions {
		if len(list) > 0 {
			modes = append(modes, mode)
		}
	}
	if len(modes) == 0 {
		return "No current disruptions found."
	}
	sort.Strings(modes)

	var b strings.Builder
	b.WriteString("Current Disruptions:\n\n")

	for _, mode := range modes {
		list := disruptions[mode]
		if perMode > 0 && len(list) > perMode {
			list = list[:perMode]
		}

		fmt.Fprintf(&b, "%s Disruptions:\n", modeLabel(mode))
		for _, d := range list {
			title := d.Title
			if title == "" {
				title = "Unknown"
			}
			b.WriteString("• " + title)
			if d.Status != "" {
				b.WriteString(" (" + d.Status + ")")
			}
			b.WriteString("\n")
			if d.Description != "" {
				b.WriteString("  " + truncate(d.Description, descriptionLimit) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatRouteTypes renders the transit mode enumeration as bullet text.
func FormatRouteTypes(infos []ptv.RouteTypeInfo) string {
	var b strings.Builder
	b.WriteString("Available Transport Modes:\n\n")

	for _, rt := range infos {
		name := rt.RouteTypeName
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(&b, "• %s (ID: %d)\n", name, rt.RouteType)
	}
	return b.String()
}

// modeLabel turns an upstream mode key like "metro_train" into a display
// label like "Metro Train".
func modeLabel(mode string) string {
	words := strings.Split(mode, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// truncate cuts s to at most limit runes, appending "..." when it was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
