package transit

import (
	"strings"
	"testing"
)

func TestTransportQueryPrompt_Variants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		transportType string
		wantFragment  string
	}{
		{"train", "train information for Richmond"},
		{"Train", "train information for Richmond"}, // case-insensitive
		{"tram", "tram information for Richmond"},
		{"bus", "bus information for Richmond"},
		{"any", "public transport information for Richmond"},
		{"", "public transport information for Richmond"},
		{"ferry", "public transport information for Richmond"}, // unknown falls back
	}

	for _, tt := range tests {
		t.Run(tt.transportType, func(t *testing.T) {
			got := TransportQueryPrompt("Richmond", tt.transportType)
			if !strings.Contains(got, tt.wantFragment) {
				t.Errorf("TransportQueryPrompt(%q) = %q, want fragment %q", tt.transportType, got, tt.wantFragment)
			}
		})
	}
}

func TestJourneyPlannerPrompt(t *testing.T) {
	t.Parallel()
	got := JourneyPlannerPrompt("Flinders Street", "Melbourne Central")
	if !strings.Contains(got, "from Flinders Street to Melbourne Central") {
		t.Errorf("origin/destination missing: %q", got)
	}
	if !strings.Contains(got, "service disruptions") {
		t.Errorf("checklist missing: %q", got)
	}
}
