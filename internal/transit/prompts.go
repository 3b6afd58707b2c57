package transit

import (
	"fmt"
	"strings"
)

// TransportQueryPrompt returns a prompt asking the assistant to research
// public transport around a location. transportType selects a mode-specific
// variant ("train", "tram", "bus"); anything else falls back to the
// all-modes variant.
func TransportQueryPrompt(location, transportType string) string {
	switch strings.ToLower(transportType) {
	case "train":
		return fmt.Sprintf("Help me find train information for %s. Include departures, any disruptions, and nearby stops.", location)
	case "tram":
		return fmt.Sprintf("Help me find tram information for %s. Include stops, routes, and current service status.", location)
	case "bus":
		return fmt.Sprintf("Help me find bus information for %s. Include nearby stops, routes, and any delays.", location)
	}
	return fmt.Sprintf("Help me find public transport information for %s. Include all available transport options, departures, and any service disruptions.", location)
}

// JourneyPlannerPrompt returns a prompt asking the assistant to plan a
// Melbourne public transport journey between two places.
func JourneyPlannerPrompt(origin, destination string) string {
	return fmt.Sprintf(`Help me plan a journey from %s to %s using Melbourne public transport. Please:

1. Find the best transport options (train, tram, bus)
2. Check for any current service disruptions
3. Provide departure times and estimated journey duration
4. Suggest alternative routes if available
5. Include any accessibility information if relevant

Use the PTV tools to get real-time information for this journey.`, origin, destination)
}
