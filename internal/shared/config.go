package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Data     DataConfig     `toml:"data"`
	Import   ImportConfig   `toml:"import"`
	Tracking TrackingConfig `toml:"tracking"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// DataConfig contains paths for per-user data files.
type DataConfig struct {
	Dir         string `toml:"dir"`          // directory for per-user workbooks and the session file
	SessionFile string `toml:"session_file"` // filename of the login session record
}

// ImportConfig bounds a single ADIF import operation.
type ImportConfig struct {
	MaxRecords     int `toml:"max_records"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// TrackingConfig controls which bands count toward the need list.
type TrackingConfig struct {
	AllBands       bool     `toml:"all_bands"`
	Bands          []string `toml:"bands"`
	IncludeDeleted bool     `toml:"include_deleted"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
