package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/melbtransit/ptvmcp/internal/ptv"
)

// Load reads the YAML configuration file at path, merges environment
// overrides, applies defaults, and validates the result. An empty path
// returns [Default].
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, merges environment overrides,
// applies defaults, and validates the result. Useful in tests where configs
// are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	applyEnvironment(cfg)
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironment merges environment variables into cfg. The credential
// pair only ever comes from the environment; base URL and version env vars
// take precedence over the file so that deployments can repoint a committed
// config without editing it.
func applyEnvironment(cfg *Config) {
	if v := os.Getenv(ptv.EnvBaseURL); v != "" {
		cfg.PTV.BaseURL = v
	}
	if v := os.Getenv(ptv.EnvVersion); v != "" {
		cfg.PTV.Version = v
	}
	cfg.PTV.DevID = os.Getenv(ptv.EnvDevID)
	cfg.PTV.DevKey = os.Getenv(ptv.EnvDevKey)
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("config: validate: %w", err)
		}
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, fmt.Errorf("config: %s fails %q constraint", fe.Namespace(), fe.Tag()))
		}
	}

	// Cross-field checks the struct tags cannot express.
	if cfg.Server.Transport == TransportHTTP && cfg.Server.ListenAddr == "" {
		errs = append(errs, errors.New("config: server.listen_addr is required in http mode"))
	}
	if cfg.PTV.DevID == "" && cfg.PTV.DevKey != "" {
		errs = append(errs, errors.New("config: "+ptv.EnvDevKey+" is set but "+ptv.EnvDevID+" is not"))
	}

	return errors.Join(errs...)
}
