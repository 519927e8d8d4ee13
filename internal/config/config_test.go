package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Display defaults mirror the watch defaults: white on black,
	// Celsius, 24-hour clock, date shown.
	if cfg.Display.BackgroundColor != "#000000" {
		t.Errorf("Display.BackgroundColor = %q, want %q", cfg.Display.BackgroundColor, "#000000")
	}
	if cfg.Display.TextColor != "#FFFFFF" {
		t.Errorf("Display.TextColor = %q, want %q", cfg.Display.TextColor, "#FFFFFF")
	}
	if cfg.Display.TemperatureUnit != "celsius" {
		t.Errorf("Display.TemperatureUnit = %q, want %q", cfg.Display.TemperatureUnit, "celsius")
	}
	if cfg.Display.TimeFormat != "24h" {
		t.Errorf("Display.TimeFormat = %q, want %q", cfg.Display.TimeFormat, "24h")
	}
	if cfg.Display.HideDate {
		t.Error("Display.HideDate = true, want false")
	}

	if cfg.Sensor.Source != "sim" {
		t.Errorf("Sensor.Source = %q, want %q", cfg.Sensor.Source, "sim")
	}

	// Weather is disabled until credentials are configured.
	if cfg.Weather.APIKey != "" {
		t.Errorf("Weather.APIKey should be empty, got %q", cfg.Weather.APIKey)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errContains string
	}{
		{
			name:   "default config is valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "fahrenheit accepted",
			mutate: func(c *Config) { c.Display.TemperatureUnit = "fahrenheit" },
		},
		{
			name:   "12h clock accepted",
			mutate: func(c *Config) { c.Display.TimeFormat = "12h" },
		},
		{
			name:   "none sensor accepted",
			mutate: func(c *Config) { c.Sensor.Source = "none" },
		},
		{
			name: "mqtt sensor with broker accepted",
			mutate: func(c *Config) {
				c.Sensor.Source = "mqtt"
				c.Sensor.Broker = "tcp://localhost:1883"
			},
		},
		{
			name:        "bad background color",
			mutate:      func(c *Config) { c.Display.BackgroundColor = "black" },
			expectError: true,
			errContains: "background_color",
		},
		{
			name:        "bad text color hex digits",
			mutate:      func(c *Config) { c.Display.TextColor = "#GGGGGG" },
			expectError: true,
			errContains: "text_color",
		},
		{
			name:        "bad temperature unit",
			mutate:      func(c *Config) { c.Display.TemperatureUnit = "kelvin" },
			expectError: true,
			errContains: "temperature_unit",
		},
		{
			name:        "bad time format",
			mutate:      func(c *Config) { c.Display.TimeFormat = "metric" },
			expectError: true,
			errContains: "time_format",
		},
		{
			name:        "unknown sensor source",
			mutate:      func(c *Config) { c.Sensor.Source = "fitbit" },
			expectError: true,
			errContains: "sensor.source",
		},
		{
			name:        "mqtt sensor without broker",
			mutate:      func(c *Config) { c.Sensor.Source = "mqtt" },
			expectError: true,
			errContains: "broker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}
