// Package config loads the server configuration file. Flags override file
// values, the file overrides defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes Go duration strings ("90s", "1h") from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Server is the configuration of the serve command.
type Server struct {
	// Port to listen on.
	Port string `yaml:"port"`

	// Redis address for session storage. Empty means in-memory.
	Redis string `yaml:"redis"`

	// SessionTTL expires stored sessions. Zero means no expiry.
	SessionTTL Duration `yaml:"session_ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Server {
	return Server{Port: "8080"}
}

// Load reads a YAML configuration file.
func Load(path string) (Server, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Port == "" {
		cfg.Port = Default().Port
	}
	return cfg, nil
}
