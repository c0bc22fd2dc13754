package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"itemd/internal/api"
)

var (
	statusAddr   string
	statusFormat string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running itemd server",
	Long:  "Poll a running server's readiness endpoint and report store occupancy",
	Run:   runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusAddr, "addr", "", "Server address (default: from config)")
	statusCmd.Flags().StringVar(&statusFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(statusFormat)

	addr := statusAddr
	if addr == "" {
		root := mustGetRoot()
		cfg := loadConfigOrDefaults(root, logger)
		addr = cfg.Addr()
	}

	client := &http.Client{Timeout: 5 * time.Second}

	ready, err := fetchReady(client, addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting status: %v\n", err)
		os.Exit(1)
	}

	health, err := fetchHealth(client, addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting status: %v\n", err)
		os.Exit(1)
	}

	cliResponse := &StatusResponseCLI{
		Version:  health.Version,
		Addr:     addr,
		Status:   ready.Status,
		Items:    ready.Items,
		Capacity: ready.Capacity,
		Healthy:  ready.Status == "ready",
	}

	output, err := FormatResponse(cliResponse, OutputFormat(statusFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	duration := time.Since(start).Milliseconds()
	if statusFormat == "human" {
		fmt.Printf("\n(Query took %dms)\n", duration)
	}
}

// StatusResponseCLI contains the running server status for CLI output
type StatusResponseCLI struct {
	Version  string `json:"version"`
	Addr     string `json:"addr"`
	Status   string `json:"status"`
	Items    int    `json:"items"`
	Capacity int    `json:"capacity"`
	Healthy  bool   `json:"healthy"`
}

func fetchReady(client *http.Client, addr string) (*api.ReadyResponse, error) {
	resp, err := client.Get("http://" + addr + "/ready")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ready api.ReadyResponse
	if err := json.NewDecoder(resp.Body).Decode(&ready); err != nil {
		return nil, fmt.Errorf("failed to decode readiness response: %w", err)
	}
	return &ready, nil
}

func fetchHealth(client *http.Client, addr string) (*api.HealthResponse, error) {
	resp, err := client.Get("http://" + addr + "/health")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &health, nil
}
