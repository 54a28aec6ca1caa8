package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default values for launch, start and resolve
type DefaultsConfig struct {
	DeviceTypeID string `mapstructure:"devicetypeid"`
	Log          string `mapstructure:"log"`
	Exit         bool   `mapstructure:"exit"`

	// Resolution tuning
	OSName       string `mapstructure:"os_name"`
	RuntimeOrder string `mapstructure:"runtime_order"`

	// start --wait
	BootTimeout string `mapstructure:"boot_timeout"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			OSName:       "iOS",
			RuntimeOrder: "lexical",
			BootTimeout:  "2m",
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.iossim.yaml or ./.iossim.yml
// 2. ~/.iossim.yaml or ~/.iossim.yml
// 3. $XDG_CONFIG_HOME/iossim/config.yaml (or ~/.config/iossim/config.yaml)
// 4. /etc/iossim/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".iossim.yaml", ".iossim.yml", "iossim.yaml", "iossim.yml"}

	var searchPaths []string

	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "iossim"))
	}
	searchPaths = append(searchPaths, "/etc/iossim")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// config.yaml only counts inside the iossim-specific dirs
		if filepath.Base(dir) == "iossim" {
			path := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IOSSIM_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("IOSSIM_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("IOSSIM_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("IOSSIM_DEVICETYPEID"); v != "" {
		cfg.Defaults.DeviceTypeID = v
	}
	if v := os.Getenv("IOSSIM_RUNTIME_ORDER"); v != "" {
		cfg.Defaults.RuntimeOrder = v
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
