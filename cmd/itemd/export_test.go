package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func sampleExportDocument() *ExportDocument {
	return &ExportDocument{
		ExportedAt: "2025-01-01T00:00:00Z",
		Count:      2,
		Items: []ExportedItem{
			{ID: 1, Name: "First Item", Value: 100},
			{ID: 2, Name: "Second Item", Value: 200},
		},
	}
}

func TestEncodeExport(t *testing.T) {
	doc := sampleExportDocument()

	tests := []struct {
		format string
		decode func(data []byte, v interface{}) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
		{"toml", toml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := encodeExport(doc, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var decoded ExportDocument
			if err := tt.decode(data, &decoded); err != nil {
				t.Fatalf("failed to decode %s output: %v", tt.format, err)
			}

			if decoded.Count != doc.Count {
				t.Errorf("count = %d, want %d", decoded.Count, doc.Count)
			}
			if len(decoded.Items) != len(doc.Items) {
				t.Fatalf("items = %d, want %d", len(decoded.Items), len(doc.Items))
			}
			if decoded.Items[0] != doc.Items[0] {
				t.Errorf("first item = %+v, want %+v", decoded.Items[0], doc.Items[0])
			}
			if decoded.Items[1].Name != "Second Item" {
				t.Errorf("second item name = %q", decoded.Items[1].Name)
			}
		})
	}
}

func TestEncodeExport_UnsupportedFormat(t *testing.T) {
	_, err := encodeExport(sampleExportDocument(), "xml")
	if err == nil {
		t.Error("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error should mention unsupported format, got: %v", err)
	}
}

func TestFetchItems(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/items", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":1,"name":"First Item","value":100},{"id":2,"name":"Second Item","value":200}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	addr := strings.TrimPrefix(srv.URL, "http://")
	client := &http.Client{Timeout: time.Second}

	items, err := fetchItems(client, addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].ID != 1 || items[0].Name != "First Item" || items[0].Value != 100 {
		t.Errorf("first item = %+v", items[0])
	}
}

func TestFetchItems_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	addr := strings.TrimPrefix(srv.URL, "http://")
	client := &http.Client{Timeout: time.Second}

	_, err := fetchItems(client, addr)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should carry the status, got: %v", err)
	}
}
