package main

import (
	"fmt"
	"os"

	"itemd/internal/config"
	"itemd/internal/logging"
)

// getRoot returns the directory that holds the .itemd configuration.
func getRoot() (string, error) {
	if rootFlag != "" {
		return rootFlag, nil
	}
	return os.Getwd()
}

// mustGetRoot returns the configuration root or exits on error.
func mustGetRoot() string {
	root, err := getRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

// loadConfigOrDefaults loads configuration from the root directory,
// falling back to defaults when the file cannot be read.
func loadConfigOrDefaults(root string, logger *logging.Logger) *config.Config {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}

// newLogger creates a logger with the specified format.
func newLogger(format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.InfoLevel,
	})
}
