package config

import (
	"strings"
	"testing"

	"github.com/melbtransit/ptvmcp/internal/ptv"
)

// clearEnv removes the PTV environment variables for the duration of a test
// so that developer machines with real credentials don't skew results.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{ptv.EnvDevID, ptv.EnvDevKey, ptv.EnvVersion, ptv.EnvBaseURL} {
		t.Setenv(k, "")
	}
}

func TestLoadFromReader_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Errorf("transport = %q, want stdio", cfg.Server.Transport)
	}
	if cfg.Server.LogLevel != LogInfo {
		t.Errorf("log level = %q, want info", cfg.Server.LogLevel)
	}
	if cfg.PTV.BaseURL != ptv.DefaultBaseURL {
		t.Errorf("base url = %q", cfg.PTV.BaseURL)
	}
	if cfg.PTV.Version != ptv.DefaultVersion {
		t.Errorf("version = %q", cfg.PTV.Version)
	}
	if cfg.Display.MaxDepartures != 5 || cfg.Display.MaxStops != 10 ||
		cfg.Display.MaxRoutes != 20 || cfg.Display.MaxDisruptionsPerMode != 5 {
		t.Errorf("display caps = %+v", cfg.Display)
	}
}

func TestLoadFromReader_Overrides(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromReader(strings.NewReader(`
server:
  transport: http
  listen_addr: ":9090"
  log_level: debug
display:
  max_routes: 50
`))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.Transport != TransportHTTP || cfg.Server.ListenAddr != ":9090" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Display.MaxRoutes != 50 {
		t.Errorf("max_routes = %d, want 50", cfg.Display.MaxRoutes)
	}
	// Unset fields keep their defaults.
	if cfg.Display.MaxStops != 10 {
		t.Errorf("max_stops = %d, want 10", cfg.Display.MaxStops)
	}
}

func TestLoadFromReader_UnknownFieldRejected(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromReader(strings.NewReader("server:\n  listne_addr: \":9090\"\n"))
	if err == nil {
		t.Fatal("expected error for misspelled field")
	}
}

func TestLoadFromReader_InvalidValues(t *testing.T) {
	clearEnv(t)

	cases := []struct {
		name string
		yaml string
	}{
		{"bad log level", "server:\n  log_level: loud\n"},
		{"bad transport", "server:\n  transport: websocket\n"},
		{"bad base url", "ptv:\n  base_url: not-a-url\n"},
		{"negative cap", "display:\n  max_stops: -1\n"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromReader(strings.NewReader(tt.yaml)); err == nil {
				t.Errorf("expected validation error for:\n%s", tt.yaml)
			}
		})
	}
}

func TestLoadFromReader_EnvironmentMerge(t *testing.T) {
	clearEnv(t)
	t.Setenv(ptv.EnvDevID, "3001122")
	t.Setenv(ptv.EnvDevKey, "shh")
	t.Setenv(ptv.EnvVersion, "v4")

	cfg, err := LoadFromReader(strings.NewReader("ptv:\n  api_version: v3\n"))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.PTV.DevID != "3001122" || cfg.PTV.DevKey != "shh" {
		t.Errorf("credentials not merged: %+v", cfg.PTV)
	}
	// Environment wins over the file.
	if cfg.PTV.Version != "v4" {
		t.Errorf("version = %q, want v4", cfg.PTV.Version)
	}

	d := cfg.Descriptor()
	if d.DevID != "3001122" || !d.KeyConfigured() {
		t.Errorf("descriptor = %+v", d)
	}
}

func TestValidate_KeyWithoutID(t *testing.T) {
	clearEnv(t)
	t.Setenv(ptv.EnvDevKey, "shh")

	if _, err := LoadFromReader(strings.NewReader("")); err == nil {
		t.Fatal("expected error when only the key is set")
	}
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Errorf("transport = %q", cfg.Server.Transport)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
