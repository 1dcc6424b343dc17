package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath  string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Allocation AllocationConfig `yaml:"allocation"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// AllocationConfig holds the server-side defaults for a run. Per-request form
// options override SelectionMode and FacultyCount; AnchorColumn is fixed for
// the deployment.
type AllocationConfig struct {
	// AnchorColumn separates identity columns from faculty columns in the
	// uploaded table.
	AnchorColumn string `yaml:"anchor_column" env:"ALLOCATION_ANCHOR_COLUMN"`
	// SelectionMode is "auto" (every column after the anchor) or "manual"
	// (the first FacultyCount columns after the anchor).
	SelectionMode string `yaml:"selection_mode" env:"ALLOCATION_SELECTION_MODE"`
	FacultyCount  int    `yaml:"faculty_count" env:"ALLOCATION_FACULTY_COUNT"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The config file is optional; defaults plus env cover a bare deployment.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"

	// Allocation defaults mirror the reference behavior: everything after
	// the CGPA column is a faculty column.
	config.Allocation.AnchorColumn = "CGPA"
	config.Allocation.SelectionMode = "auto"
	config.Allocation.FacultyCount = 18

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Allocation.AnchorColumn == "" {
		return fmt.Errorf("allocation anchor column is required")
	}

	switch config.Allocation.SelectionMode {
	case "auto":
	case "manual":
		if config.Allocation.FacultyCount < 1 {
			return fmt.Errorf("manual selection requires a faculty count of at least 1")
		}
	default:
		return fmt.Errorf("invalid selection mode %q (want auto or manual)", config.Allocation.SelectionMode)
	}

	if _, err := time.ParseDuration(config.Server.ReadTimeout); err != nil {
		return fmt.Errorf("invalid server read timeout: %w", err)
	}
	if _, err := time.ParseDuration(config.Server.WriteTimeout); err != nil {
		return fmt.Errorf("invalid server write timeout: %w", err)
	}

	return nil
}
