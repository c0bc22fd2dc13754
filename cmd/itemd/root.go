package main

import (
	"itemd/internal/version"

	"github.com/spf13/cobra"
)

var (
	// rootFlag is the CLI --root flag value
	rootFlag string
)

var rootCmd = &cobra.Command{
	Use:   "itemd",
	Short: "itemd - in-memory item store with an HTTP API",
	Long: `itemd serves a small CRUD API over a fixed-capacity in-memory item
collection. Items live exactly as long as the process does; state is
process-local and never touches disk.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("itemd version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"Directory holding the .itemd configuration (default: current directory)")
}
