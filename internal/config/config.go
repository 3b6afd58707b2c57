// Package config provides the configuration schema and loader for the PTV
// MCP server.
//
// Non-secret settings come from an optional YAML file; the credential pair is
// read from the process environment only and never from the file, so that
// config files can be committed and shared without leaking the shared secret.
package config

import (
	"log/slog"

	"github.com/melbtransit/ptvmcp/internal/ptv"
)

// LogLevel controls log verbosity for the server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l to the corresponding [slog.Level]. Unrecognised or empty
// values map to [slog.LevelInfo].
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Transport selects how the MCP server is exposed to its host.
type Transport string

const (
	// TransportStdio serves MCP over stdin/stdout. This is the default and
	// the mode MCP hosts use when spawning the server as a subprocess.
	TransportStdio Transport = "stdio"

	// TransportHTTP serves MCP over the streamable-HTTP transport, together
	// with /healthz, /readyz, and /metrics endpoints.
	TransportHTTP Transport = "http"
)

// IsValid reports whether t is a recognised transport.
func (t Transport) IsValid() bool {
	return t == TransportStdio || t == TransportHTTP
}

// Config is the root configuration structure. Load it with [Load] or
// [LoadFromReader], or start from [Default].
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	PTV     PTVConfig     `yaml:"ptv"`
	Display DisplayConfig `yaml:"display"`
}

// ServerConfig holds transport and logging settings.
type ServerConfig struct {
	// Transport selects stdio (default) or http mode.
	Transport Transport `yaml:"transport" validate:"omitempty,oneof=stdio http"`

	// ListenAddr is the TCP address used in http mode (e.g. ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// PTVConfig holds upstream API settings. The developer id and key are
// environment-only (PTV_DEV_ID / PTV_DEV_KEY) and are merged into the loaded
// config by [Load]; they have no YAML representation.
type PTVConfig struct {
	// BaseURL overrides the production Timetable API endpoint.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// Version is the API version path segment. Default: "v3".
	Version string `yaml:"api_version"`

	// DevID and DevKey form the credential pair issued by PTV.
	DevID  string `yaml:"-"`
	DevKey string `yaml:"-"`
}

// DisplayConfig holds the per-operation display caps. These are presentation
// policy, not a data contract; zero values fall back to the defaults.
type DisplayConfig struct {
	// MaxDepartures is the default departure count when a tool call does not
	// specify one. Default: 5.
	MaxDepartures int `yaml:"max_departures" validate:"gte=0"`

	// MaxStops caps stop search results. Default: 10.
	MaxStops int `yaml:"max_stops" validate:"gte=0"`

	// MaxRoutes caps route listings. Default: 20.
	MaxRoutes int `yaml:"max_routes" validate:"gte=0"`

	// MaxDisruptionsPerMode caps disruptions listed per transit mode.
	// Default: 5.
	MaxDisruptionsPerMode int `yaml:"max_disruptions_per_mode" validate:"gte=0"`
}

// Default returns a Config with all defaults applied and credentials read
// from the environment.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	applyEnvironment(cfg)
	return cfg
}

// applyDefaults fills zero-valued fields with their documented defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = TransportStdio
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.PTV.BaseURL == "" {
		cfg.PTV.BaseURL = ptv.DefaultBaseURL
	}
	if cfg.PTV.Version == "" {
		cfg.PTV.Version = ptv.DefaultVersion
	}
	if cfg.Display.MaxDepartures == 0 {
		cfg.Display.MaxDepartures = 5
	}
	if cfg.Display.MaxStops == 0 {
		cfg.Display.MaxStops = 10
	}
	if cfg.Display.MaxRoutes == 0 {
		cfg.Display.MaxRoutes = 20
	}
	if cfg.Display.MaxDisruptionsPerMode == 0 {
		cfg.Display.MaxDisruptionsPerMode = 5
	}
}

// Descriptor builds the PTV connection descriptor from the loaded config.
func (c *Config) Descriptor() ptv.Descriptor {
	return ptv.NewDescriptor(c.PTV.BaseURL, c.PTV.Version, c.PTV.DevID, c.PTV.DevKey)
}
