package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"itemd/internal/store"
)

func doRequest(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decodeItem(t *testing.T, w *httptest.ResponseRecorder) ItemResponse {
	t.Helper()

	var item ItemResponse
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("Failed to parse item response: %v", err)
	}
	return item
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse error envelope: %v", err)
	}
	return resp
}

func TestListItemsSeedsStore(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/items", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response ListItemsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if len(response.Items) != 2 {
		t.Fatalf("Expected 2 seeded items, got %d", len(response.Items))
	}
	if response.Items[0].Name != "First Item" || response.Items[0].Value != 100 {
		t.Errorf("items[0] = %+v", response.Items[0])
	}
	if response.Items[1].Name != "Second Item" || response.Items[1].Value != 200 {
		t.Errorf("items[1] = %+v", response.Items[1])
	}
}

// TestItemLifecycle walks create, get, delete and the final 404 through
// the full middleware stack.
func TestItemLifecycle(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodPost, "/api/v1/items", `{"name":"Widget","value":7}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST: expected status 201, got %d (body %s)", w.Code, w.Body.String())
	}

	created := decodeItem(t, w)
	if created.ID <= 0 {
		t.Errorf("created id = %d, want positive", created.ID)
	}
	if created.Name != "Widget" || created.Value != 7 {
		t.Errorf("created item = %+v", created)
	}

	itemPath := fmt.Sprintf("/api/v1/items/%d", created.ID)

	w = doRequest(t, server, http.MethodGet, itemPath, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET: expected status 200, got %d", w.Code)
	}
	if got := decodeItem(t, w); got != created {
		t.Errorf("GET returned %+v, want %+v", got, created)
	}

	w = doRequest(t, server, http.MethodDelete, itemPath, "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE: expected status 200, got %d", w.Code)
	}

	var confirmation DeleteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &confirmation); err != nil {
		t.Fatalf("Failed to parse delete confirmation: %v", err)
	}
	if confirmation.Message != "Item deleted successfully." {
		t.Errorf("message = %q, want %q", confirmation.Message, "Item deleted successfully.")
	}

	w = doRequest(t, server, http.MethodGet, itemPath, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE: expected status 404, got %d", w.Code)
	}
}

func TestCreateItemValidation(t *testing.T) {
	longName := strings.Repeat("x", 64)
	maxName := strings.Repeat("y", 63)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{not json`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
		{"json array", `[{"name":"a","value":1}]`, http.StatusBadRequest},
		{"wrong name type", `{"name":123,"value":1}`, http.StatusBadRequest},
		{"wrong value type", `{"name":"a","value":"1"}`, http.StatusBadRequest},
		{"missing value", `{"name":"a"}`, http.StatusBadRequest},
		{"missing name", `{"value":1}`, http.StatusBadRequest},
		{"empty name", `{"name":"","value":1}`, http.StatusBadRequest},
		{"name too long", `{"name":"` + longName + `","value":1}`, http.StatusBadRequest},
		{"name at limit", `{"name":"` + maxName + `","value":1}`, http.StatusCreated},
		{"valid", `{"name":"Widget","value":7}`, http.StatusCreated},
		{"extra fields ignored", `{"name":"Widget","value":7,"color":"red"}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)

			w := doRequest(t, server, http.MethodPost, "/api/v1/items", tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus == http.StatusBadRequest {
				resp := decodeError(t, w)
				if resp.StatusCode != http.StatusBadRequest {
					t.Errorf("status_code = %d, want 400", resp.StatusCode)
				}
				if resp.Error != "Bad Request" {
					t.Errorf("error = %q, want %q", resp.Error, "Bad Request")
				}
			}
		})
	}
}

func TestCreateItemTruncatesValue(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{`{"name":"a","value":7.9}`, 7},
		{`{"name":"a","value":-7.9}`, -7},
		{`{"name":"a","value":0.5}`, 0},
	}

	for _, tt := range tests {
		server := newTestServer(t)

		w := doRequest(t, server, http.MethodPost, "/api/v1/items", tt.body)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", w.Code)
		}

		if item := decodeItem(t, w); item.Value != tt.want {
			t.Errorf("body %s: value = %d, want %d", tt.body, item.Value, tt.want)
		}
	}
}

func TestCreateItemAtCapacity(t *testing.T) {
	// Capacity 2 means the seed alone fills the store.
	server := newTestServerWithStore(t, store.New(2, store.DefaultSeed()))

	w := doRequest(t, server, http.MethodPost, "/api/v1/items", `{"name":"Widget","value":7}`)

	if w.Code != http.StatusInsufficientStorage {
		t.Fatalf("Expected status 507, got %d", w.Code)
	}

	resp := decodeError(t, w)
	if resp.StatusCode != http.StatusInsufficientStorage {
		t.Errorf("status_code = %d, want 507", resp.StatusCode)
	}
	if resp.Error != "Insufficient Storage" {
		t.Errorf("error = %q, want %q", resp.Error, "Insufficient Storage")
	}
	if resp.Message != "Cannot create more items, in-memory storage limit reached." {
		t.Errorf("message = %q", resp.Message)
	}
}

// The capacity check runs before body parsing, so a full store answers
// 507 even for a body that would not survive validation.
func TestCreateItemCapacityCheckedBeforeBody(t *testing.T) {
	server := newTestServerWithStore(t, store.New(2, store.DefaultSeed()))

	w := doRequest(t, server, http.MethodPost, "/api/v1/items", `{garbage`)

	if w.Code != http.StatusInsufficientStorage {
		t.Errorf("Expected status 507, got %d", w.Code)
	}
}

func TestGetItemErrors(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantMessage string
	}{
		{"unknown id", "/api/v1/items/999", http.StatusNotFound, "Item with specified ID not found."},
		{"non-numeric id", "/api/v1/items/abc", http.StatusBadRequest, msgInvalidItemID},
		{"empty id", "/api/v1/items/", http.StatusBadRequest, msgInvalidItemID},
		{"signed id", "/api/v1/items/-42", http.StatusBadRequest, msgInvalidItemID},
		{"overflowing id", "/api/v1/items/99999999999999999999", http.StatusBadRequest, msgInvalidItemID},
		{"notanumber is 400 not 404", "/api/v1/items/notanumber", http.StatusBadRequest, msgInvalidItemID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, server, http.MethodGet, tt.path, "")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			resp := decodeError(t, w)
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}

func TestUpdateItemPartial(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantName  string
		wantValue int
	}{
		{"name only", `{"name":"Renamed"}`, "Renamed", 100},
		{"value only", `{"value":555}`, "First Item", 555},
		{"both", `{"name":"Renamed","value":555}`, "Renamed", 555},
		{"empty object", `{}`, "First Item", 100},
		{"wrong-typed name ignored", `{"name":123,"value":555}`, "First Item", 555},
		{"wrong-typed value ignored", `{"name":"Renamed","value":"555"}`, "Renamed", 100},
		{"null fields ignored", `{"name":null,"value":null}`, "First Item", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)

			// Seed and take the first sample item
			doRequest(t, server, http.MethodGet, "/api/v1/items", "")

			w := doRequest(t, server, http.MethodPut, "/api/v1/items/1", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d (body %s)", w.Code, w.Body.String())
			}

			item := decodeItem(t, w)
			if item.Name != tt.wantName {
				t.Errorf("name = %q, want %q", item.Name, tt.wantName)
			}
			if item.Value != tt.wantValue {
				t.Errorf("value = %d, want %d", item.Value, tt.wantValue)
			}
		})
	}
}

func TestUpdateItemErrors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{"invalid id", "/api/v1/items/abc", `{"name":"x"}`, http.StatusBadRequest, msgInvalidItemID},
		{"unknown id", "/api/v1/items/999", `{"name":"x"}`, http.StatusNotFound, "Item with specified ID not found for update."},
		{"malformed body", "/api/v1/items/1", `{oops`, http.StatusBadRequest, "Invalid JSON format in request body for update."},
		{"array body", "/api/v1/items/1", `[1,2]`, http.StatusBadRequest, "Invalid JSON format in request body for update."},
		{"empty name", "/api/v1/items/1", `{"name":""}`, http.StatusBadRequest, "Updated item name must not be empty."},
		{"name too long", "/api/v1/items/1", `{"name":"` + strings.Repeat("x", 64) + `"}`, http.StatusBadRequest, "Updated item name too long (max 63 characters)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)
			doRequest(t, server, http.MethodGet, "/api/v1/items", "")

			w := doRequest(t, server, http.MethodPut, tt.path, tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}

			resp := decodeError(t, w)
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}

// A missing item wins over a malformed body: the id is resolved first,
// so garbage sent to an unknown id is 404, not 400.
func TestUpdateMissingItemBeatsBadBody(t *testing.T) {
	server := newTestServer(t)
	doRequest(t, server, http.MethodGet, "/api/v1/items", "")

	w := doRequest(t, server, http.MethodPut, "/api/v1/items/999", `{garbage`)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	resp := decodeError(t, w)
	if resp.Message != "Item with specified ID not found for update." {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestDeleteItemErrors(t *testing.T) {
	server := newTestServer(t)
	doRequest(t, server, http.MethodGet, "/api/v1/items", "")

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantMessage string
	}{
		{"invalid id", "/api/v1/items/xyz", http.StatusBadRequest, msgInvalidItemID},
		{"unknown id", "/api/v1/items/999", http.StatusNotFound, "Item with specified ID not found for deletion."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, server, http.MethodDelete, tt.path, "")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			resp := decodeError(t, w)
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}

// Deleting every item leaves an empty store, and the next list brings
// the sample items back under fresh ids. Documented behavior, asserted
// here so nobody mistakes it for a bug on either side.
func TestSeedReappearsAfterDeletingEverything(t *testing.T) {
	server := newTestServer(t)

	doRequest(t, server, http.MethodGet, "/api/v1/items", "")
	doRequest(t, server, http.MethodDelete, "/api/v1/items/1", "")
	doRequest(t, server, http.MethodDelete, "/api/v1/items/2", "")

	w := doRequest(t, server, http.MethodGet, "/api/v1/items", "")

	var response ListItemsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if len(response.Items) != 2 {
		t.Fatalf("Expected store to re-seed 2 items, got %d", len(response.Items))
	}
	if response.Items[0].ID != 3 || response.Items[1].ID != 4 {
		t.Errorf("re-seeded ids = %d, %d, want 3, 4", response.Items[0].ID, response.Items[1].ID)
	}
}

// GET /api/v1/items must hit the exact collection route even though the
// id route's prefix is a prefix of it.
func TestCollectionRouteBeatsIDRoute(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/items", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if _, ok := response["items"]; !ok {
		t.Error("Expected the collection response, not an id lookup")
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	server := newTestServer(t)

	// A body beyond the read cap gets truncated mid-document and fails
	// to parse.
	huge := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `","value":1}`
	w := doRequest(t, server, http.MethodPost, "/api/v1/items", huge)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
