package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Display DisplayConfig `json:"display"`
	Sensor  SensorConfig  `json:"sensor"`
	Weather WeatherConfig `json:"weather"`
}

// DisplayConfig holds watchface appearance settings
type DisplayConfig struct {
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	TemperatureUnit string `json:"temperature_unit"` // "celsius" or "fahrenheit"
	TimeFormat      string `json:"time_format"`      // "24h" or "12h"
	HideDate        bool   `json:"hide_date"`
}

// SensorConfig selects and configures the heart-rate source
type SensorConfig struct {
	Source   string `json:"source"` // "sim", "mqtt", or "none"
	Broker   string `json:"broker,omitempty"`
	Topic    string `json:"topic,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// WeatherConfig holds OpenWeatherMap credentials and coordinates.
// An empty API key disables weather fetching.
type WeatherConfig struct {
	APIKey    string  `json:"api_key"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			BackgroundColor: "#000000",
			TextColor:       "#FFFFFF",
			TemperatureUnit: "celsius",
			TimeFormat:      "24h",
		},
		Sensor: SensorConfig{
			Source: "sim",
		},
	}
}

// Load reads the configuration from ~/.potsface/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Display.BackgroundColor == "" {
		cfg.Display.BackgroundColor = defaults.Display.BackgroundColor
	}
	if cfg.Display.TextColor == "" {
		cfg.Display.TextColor = defaults.Display.TextColor
	}
	if cfg.Display.TemperatureUnit == "" {
		cfg.Display.TemperatureUnit = defaults.Display.TemperatureUnit
	}
	if cfg.Display.TimeFormat == "" {
		cfg.Display.TimeFormat = defaults.Display.TimeFormat
	}
	if cfg.Sensor.Source == "" {
		cfg.Sensor.Source = defaults.Sensor.Source
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.potsface/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Weather = WeatherConfig{
		APIKey:    "YOUR_OPENWEATHERMAP_KEY",
		Latitude:  51.5072,
		Longitude: -0.1276,
	}

	return Save(&example)
}

// Validate checks if the config has usable values
func (c *Config) Validate() error {
	if err := validateColor(c.Display.BackgroundColor); err != nil {
		return fmt.Errorf("display.background_color: %w", err)
	}
	if err := validateColor(c.Display.TextColor); err != nil {
		return fmt.Errorf("display.text_color: %w", err)
	}

	if u := c.Display.TemperatureUnit; u != "celsius" && u != "fahrenheit" {
		return fmt.Errorf("display.temperature_unit must be \"celsius\" or \"fahrenheit\", got %q", u)
	}
	if f := c.Display.TimeFormat; f != "24h" && f != "12h" {
		return fmt.Errorf("display.time_format must be \"24h\" or \"12h\", got %q", f)
	}

	switch c.Sensor.Source {
	case "sim", "none":
	case "mqtt":
		if c.Sensor.Broker == "" {
			return errors.New("sensor.broker is required when sensor.source is \"mqtt\"")
		}
	default:
		return fmt.Errorf("sensor.source must be \"sim\", \"mqtt\", or \"none\", got %q", c.Sensor.Source)
	}

	return nil
}

// validateColor checks for a #RRGGBB hex color
func validateColor(s string) error {
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("want a #RRGGBB color, got %q", s)
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return fmt.Errorf("want a #RRGGBB color, got %q", s)
		}
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".potsface", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".potsface"), nil
}
