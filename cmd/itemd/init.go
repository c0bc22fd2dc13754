package main

import (
	"fmt"
	"os"
	"path/filepath"

	"itemd/internal/config"
	"itemd/internal/errors"
	"itemd/internal/logging"

	"github.com/spf13/cobra"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize itemd configuration",
	Long:  "Creates a .itemd/ directory with default configuration in the target root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .itemd directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.Config{
		Format: "human",
		Level:  "info",
	})

	root := mustGetRoot()

	// Check if .itemd already exists
	itemdDir := filepath.Join(root, ".itemd")
	if _, statErr := os.Stat(itemdDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success (CI-friendly)
			fmt.Println("itemd already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(itemdDir, "config.json"))
			fmt.Println("\nRun 'itemd init --force' to reinitialize.")
			return nil
		}
		// Remove existing directory
		if removeErr := os.RemoveAll(itemdDir); removeErr != nil {
			return errors.New(errors.InternalError, "failed to remove existing .itemd directory", removeErr)
		}
		logger.Info("Removed existing .itemd directory", nil)
	}

	// Create .itemd directory
	if mkdirErr := os.MkdirAll(itemdDir, 0755); mkdirErr != nil {
		return errors.New(errors.InternalError, "failed to create .itemd directory", mkdirErr)
	}

	// Write default config
	cfg := config.DefaultConfig()
	if saveErr := cfg.Save(root); saveErr != nil {
		return errors.New(errors.InternalError, "failed to write config file", saveErr)
	}

	configPath := filepath.Join(itemdDir, "config.json")
	logger.Info("itemd initialized successfully", map[string]interface{}{
		"config_path": configPath,
	})

	fmt.Println("itemd initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Adjust .itemd/config.json or set ITEMD_* environment variables")
	fmt.Println("  2. Run 'itemd serve' to start the API server")

	return nil
}
