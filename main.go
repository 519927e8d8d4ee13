package main

import (
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"potsface/internal/config"
	"potsface/internal/sensor"
	"potsface/internal/store"
	"potsface/internal/tui"
	"potsface/internal/weather"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("The simulated sensor works out of the box. For live weather,")
		fmt.Println("add an API key from: https://openweathermap.org/api")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Connect the heart rate source
	src, err := sensor.New(cfg.Sensor.Source, sensor.MQTTConfig{
		Broker:   cfg.Sensor.Broker,
		Topic:    cfg.Sensor.Topic,
		Username: cfg.Sensor.Username,
		Password: cfg.Sensor.Password,
	})
	if err != nil {
		return fmt.Errorf("connecting sensor: %w", err)
	}
	defer src.Close()

	// Weather is optional; without a key the face shows a placeholder.
	var wx *weather.Client
	if cfg.Weather.APIKey != "" {
		wx = weather.NewClient(cfg.Weather.APIKey)
	}

	// Launch TUI
	app := tui.NewApp(cfg, src, wx, db)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
