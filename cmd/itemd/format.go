package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *StatusResponseCLI:
		return formatStatusHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

// formatStatusHuman formats a StatusResponseCLI in human-readable format
func formatStatusHuman(resp *StatusResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("itemd Status - v%s\n", resp.Version))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	stateIcon := "✓"
	if !resp.Healthy {
		stateIcon = "⚠"
	}
	b.WriteString(fmt.Sprintf("%s Server reachable at %s\n\n", stateIcon, resp.Addr))

	b.WriteString("Store:\n")
	b.WriteString(fmt.Sprintf("  State: %s\n", resp.Status))
	b.WriteString(fmt.Sprintf("  Items: %d / %d\n", resp.Items, resp.Capacity))
	fill := 0.0
	if resp.Capacity > 0 {
		fill = float64(resp.Items) / float64(resp.Capacity) * 100
	}
	b.WriteString(fmt.Sprintf("  Fill: %.1f%%\n", fill))

	return b.String(), nil
}
