package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportAddr   string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the item collection from a running server",
	Long: `Fetch every item from a running itemd server and write the collection
in a machine-readable format.

Examples:
  itemd export
  itemd export --format yaml
  itemd export --format toml --out items.toml`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportAddr, "addr", "", "Server address (default: from config)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json, yaml, toml)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

// ExportedItem mirrors the wire representation of one item
type ExportedItem struct {
	ID    int    `json:"id" yaml:"id" toml:"id"`
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value int    `json:"value" yaml:"value" toml:"value"`
}

// ExportDocument is the exported collection with a snapshot header
type ExportDocument struct {
	ExportedAt string         `json:"exportedAt" yaml:"exportedAt" toml:"exportedAt"`
	Count      int            `json:"count" yaml:"count" toml:"count"`
	Items      []ExportedItem `json:"items" yaml:"items" toml:"items"`
}

func runExport(cmd *cobra.Command, args []string) {
	logger := newLogger("json") // Use JSON logger for consistency

	addr := exportAddr
	if addr == "" {
		root := mustGetRoot()
		cfg := loadConfigOrDefaults(root, logger)
		addr = cfg.Addr()
	}

	client := &http.Client{Timeout: 10 * time.Second}
	items, err := fetchItems(client, addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	doc := &ExportDocument{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(items),
		Items:      items,
	}

	data, err := encodeExport(doc, exportFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding export: %v\n", err)
		os.Exit(1)
	}

	if exportOut != "" {
		if err := os.WriteFile(exportOut, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing export file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d items to %s\n", len(items), exportOut)
		return
	}

	fmt.Println(string(data))
}

// fetchItems retrieves the full collection from a running server.
func fetchItems(client *http.Client, addr string) ([]ExportedItem, error) {
	resp, err := client.Get("http://" + addr + "/api/v1/items")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server answered %s", resp.Status)
	}

	var collection struct {
		Items []ExportedItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("failed to decode item collection: %w", err)
	}
	return collection.Items, nil
}

// encodeExport serializes the document in the requested format.
func encodeExport(doc *ExportDocument, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(doc, "", "  ")
	case "yaml":
		return yaml.Marshal(doc)
	case "toml":
		return toml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported format: %s (expected json, yaml, or toml)", format)
	}
}
