package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the recognized book extensions, comparison thresholds,
// image-size thresholds, and device database settings.
type Config struct {
	Library struct {
		Extensions []string `yaml:"extensions"` // Recognized book extensions, with leading dot
		Default    string   `yaml:"default"`    // Default library directory
	} `yaml:"library"`
	Compare struct {
		SimilarityThreshold float64 `yaml:"similarity_threshold"` // Pairs at or above this ratio count as similar
	} `yaml:"compare"`
	Images struct {
		CoverThreshold  int64 `yaml:"cover_threshold"`  // Default cover.jpg size threshold in bytes
		ImagesThreshold int64 `yaml:"images_threshold"` // Default images/ directory size threshold in bytes
	} `yaml:"images"`
	Device struct {
		DatabasePath string `yaml:"database_path"` // Database location relative to the device root
		Backup       bool   `yaml:"backup"`        // Copy the database before cleaning by default
	} `yaml:"device"`
	Settings struct {
		Collision string `yaml:"collision"` // Collision strategy: ask or skip
		Debug     bool   `yaml:"debug"`     // Enable debug logging
	} `yaml:"settings"`
}

// LoadConfig loads configuration from the default location
// (~/.config/booktidy/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "booktidy", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	if len(tempCfg.Library.Extensions) > 0 {
		cfg.Library.Extensions = tempCfg.Library.Extensions
	}
	if tempCfg.Library.Default != "" {
		cfg.Library.Default = tempCfg.Library.Default
	}
	if tempCfg.Compare.SimilarityThreshold > 0 {
		cfg.Compare.SimilarityThreshold = tempCfg.Compare.SimilarityThreshold
	}
	if tempCfg.Images.CoverThreshold > 0 {
		cfg.Images.CoverThreshold = tempCfg.Images.CoverThreshold
	}
	if tempCfg.Images.ImagesThreshold > 0 {
		cfg.Images.ImagesThreshold = tempCfg.Images.ImagesThreshold
	}
	if tempCfg.Device.DatabasePath != "" {
		cfg.Device.DatabasePath = tempCfg.Device.DatabasePath
	}
	cfg.Device.Backup = tempCfg.Device.Backup
	if tempCfg.Settings.Collision != "" {
		cfg.Settings.Collision = tempCfg.Settings.Collision
	}
	cfg.Settings.Debug = tempCfg.Settings.Debug

	// Validate the final configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Library.Extensions = []string{".pdf", ".azw", ".epub", ".mobi"}
	cfg.Library.Default = ""

	cfg.Compare.SimilarityThreshold = 0.9

	cfg.Images.CoverThreshold = 100_000
	cfg.Images.ImagesThreshold = 1_000_000

	cfg.Device.DatabasePath = filepath.Join(".kobo", "KoboReader.sqlite")
	cfg.Device.Backup = true

	cfg.Settings.Collision = "ask"
	cfg.Settings.Debug = false

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if len(c.Library.Extensions) == 0 {
		return fmt.Errorf("at least one book extension is required")
	}
	for i, ext := range c.Library.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %d: must start with a dot: %s", i, ext)
		}
	}

	if c.Compare.SimilarityThreshold < 0 || c.Compare.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be within [0, 1]: %v", c.Compare.SimilarityThreshold)
	}

	if c.Images.CoverThreshold < 0 {
		return fmt.Errorf("cover threshold must be >= 0")
	}
	if c.Images.ImagesThreshold < 0 {
		return fmt.Errorf("images threshold must be >= 0")
	}

	if c.Device.DatabasePath == "" {
		return fmt.Errorf("device database path is required")
	}

	validCollisions := map[string]bool{"ask": true, "skip": true}
	if !validCollisions[c.Settings.Collision] {
		return fmt.Errorf("invalid collision setting: %s", c.Settings.Collision)
	}

	return nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
