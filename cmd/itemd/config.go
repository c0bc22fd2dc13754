package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"itemd/internal/config"
)

var (
	configFormat string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage itemd configuration",
	Long:  "View and manage itemd configuration stored in .itemd/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Long: `Display the configuration the server would run with, after merging
defaults, .itemd/config.json, and ITEMD_* environment overrides.

Examples:
  itemd config show                # Pretty-print effective config
  itemd config show --format json  # Raw JSON output`,
	Run: runConfigShow,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Long:  "Display all supported itemd environment variable overrides",
	Run:   runConfigEnv,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (json, human)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	root := mustGetRoot()

	cfg, err := config.LoadConfig(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if configFormat == "json" {
		output, err := FormatResponse(cfg, FormatJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
		return
	}

	outputConfigHuman(cfg)
}

func outputConfigHuman(cfg *config.Config) {
	defaults := config.DefaultConfig()

	fmt.Println("itemd Configuration")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Println()

	fmt.Println("server:")
	printConfigSection("  host", cfg.Server.Host, defaults.Server.Host)
	printConfigSection("  port", cfg.Server.Port, defaults.Server.Port)

	fmt.Println("\nstore:")
	printConfigSection("  capacity", cfg.Store.Capacity, defaults.Store.Capacity)
	printConfigSection("  seedFile", valueOrDefault(cfg.Store.SeedFile, "(none)"), "(none)")

	fmt.Println("\nlogging:")
	printConfigSection("  format", cfg.Logging.Format, defaults.Logging.Format)
	printConfigSection("  level", cfg.Logging.Level, defaults.Logging.Level)

	fmt.Println()
	fmt.Println("Use 'itemd config show --format json' for machine-readable output")
	fmt.Println("Use 'itemd config env' to see supported environment variables")
}

func printConfigSection(name string, value, defaultValue interface{}) {
	modified := ""
	if !isEqual(value, defaultValue) {
		modified = fmt.Sprintf(" (default: %v)", defaultValue)
	}
	fmt.Printf("%s: %v%s\n", name, value, modified)
}

func runConfigEnv(cmd *cobra.Command, args []string) {
	fmt.Println("Supported itemd Environment Variables")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Println()

	vars := []envVarInfo{
		{"ITEMD_SERVER_HOST", "Host to bind to", "string"},
		{"ITEMD_SERVER_PORT", "Port to listen on", "int"},
		{"ITEMD_STORE_CAPACITY", "Maximum number of live items", "int"},
		{"ITEMD_STORE_SEEDFILE", "Path to a TOML seed file", "string"},
		{"ITEMD_LOGGING_FORMAT", "Log format (human, json)", "string"},
		{"ITEMD_LOGGING_LEVEL", "Log level (debug, info, warn, error)", "string"},
	}
	for _, v := range vars {
		fmt.Printf("  %-24s %s (%s)\n", v.name, v.desc, v.varType)
	}

	fmt.Println()
	fmt.Println("Example usage:")
	fmt.Println("  ITEMD_SERVER_PORT=9000 itemd serve")
	fmt.Println("  ITEMD_STORE_CAPACITY=500 itemd serve")
}

type envVarInfo struct {
	name    string
	desc    string
	varType string
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func isEqual(a, b interface{}) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
