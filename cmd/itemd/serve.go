package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itemd/internal/api"
	"itemd/internal/logging"
	"itemd/internal/store"

	"github.com/spf13/cobra"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the itemd HTTP API server",
	Long: `Start the itemd HTTP API server. The server exposes CRUD endpoints for
the in-memory item collection plus health, readiness, and metrics
diagnostics. All state is process-local and is lost on shutdown.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Define flags
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	bootLogger := newLogger("human")

	root := mustGetRoot()
	cfg := loadConfigOrDefaults(root, bootLogger)

	// CLI flags take precedence over file and environment values
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Validate has already vetted both values
	logFormat, _ := logging.ParseFormat(cfg.Logging.Format)
	logLevel, _ := logging.ParseLevel(cfg.Logging.Level)
	logger := logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logLevel,
	})

	seed := store.DefaultSeed()
	if cfg.Store.SeedFile != "" {
		loaded, err := store.LoadSeedFile(cfg.Store.SeedFile)
		if err != nil {
			return err
		}
		seed = loaded
	}

	st := store.New(cfg.Store.Capacity, seed)
	addr := cfg.Addr()

	server := api.NewServer(addr, st, logger)

	// Setup graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting itemd HTTP API server", map[string]interface{}{
			"addr":     addr,
			"capacity": cfg.Store.Capacity,
		})
		fmt.Printf("itemd HTTP API server listening on http://%s\n", addr)
		fmt.Println("Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})

		// Create shutdown context with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}

		logger.Info("Server stopped gracefully", nil)
	}

	return nil
}
