package api

import (
	"encoding/json"
	"io"
	"net/http"

	"itemd/internal/errors"
	"itemd/internal/store"
	"itemd/internal/version"
)

// maxBodyBytes caps how much of a request body a handler reads.
const maxBodyBytes = 1 * 1024 * 1024 // 1MB limit

// maxItemNameBytes is enforced here at the boundary so the store never
// sees an oversized name.
const maxItemNameBytes = store.MaxNameBytes

// msgInvalidItemID is shared by every handler that takes an id path.
const msgInvalidItemID = "Invalid or missing item ID in URI. Expected format: /api/v1/items/{id}"

// ListItemsResponse represents the item collection response
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

// ItemResponse represents a single item
type ItemResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DeleteResponse confirms a successful deletion
type DeleteResponse struct {
	Message string `json:"message"`
}

// handleRoot handles requests to the root path. The endpoint listing is
// derived from the live route table so it stays in step with
// registerRoutes.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	routes := s.router.Routes()
	endpoints := make([]string, 0, len(routes))
	for _, route := range routes {
		pattern := route.Pattern
		if route.Mode == MatchPrefix {
			pattern += "{id}"
		}
		endpoints = append(endpoints, route.Method+" "+pattern)
	}

	response := map[string]interface{}{
		"message":   "Welcome to the itemd API. Navigate to /api/v1/items to interact with the data.",
		"version":   version.Version,
		"endpoints": endpoints,
	}

	WriteJSON(w, response, http.StatusOK)
}

// handleListItems handles GET /api/v1/items
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items := s.store.List()

	response := ListItemsResponse{
		Items: make([]ItemResponse, 0, len(items)),
	}
	for _, it := range items {
		response.Items = append(response.Items, ItemResponse(it))
	}

	WriteJSON(w, response, http.StatusOK)
}

// handleCreateItem handles POST /api/v1/items.
// The capacity check runs before the body is even parsed, so a full
// store answers 507 regardless of what the request carries.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	if s.store.Full() {
		InsufficientStorage(w, "Cannot create more items, in-memory storage limit reached.")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		BadRequest(w, "Invalid JSON format in request body.")
		return
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		BadRequest(w, "Invalid JSON format in request body.")
		return
	}

	name, nameOK := fields["name"].(string)
	value, valueOK := fields["value"].(float64)
	if !nameOK || !valueOK || name == "" {
		BadRequest(w, "Missing or invalid 'name' (string) or 'value' (number) in JSON body.")
		return
	}
	if len(name) > maxItemNameBytes {
		BadRequest(w, "Item name provided is too long (max 63 characters).")
		return
	}

	item, err := s.store.Create(name, int(value))
	if err != nil {
		writeStoreError(w, err, "Cannot create more items, in-memory storage limit reached.")
		return
	}

	WriteJSON(w, ItemResponse(item), http.StatusCreated)
}

// handleGetItem handles GET /api/v1/items/:id
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := ParseItemID(r.URL.Path, itemsPrefix)
	if err != nil {
		BadRequest(w, msgInvalidItemID)
		return
	}

	item, err := s.store.Get(id)
	if err != nil {
		NotFound(w, "Item with specified ID not found.")
		return
	}

	WriteJSON(w, ItemResponse(item), http.StatusOK)
}

// handleUpdateItem handles PUT /api/v1/items/:id.
// The id is resolved before the body is parsed: updating a missing item
// is 404 even when the body is garbage. Fields that are present but
// carry the wrong JSON type are ignored rather than rejected.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := ParseItemID(r.URL.Path, itemsPrefix)
	if err != nil {
		BadRequest(w, msgInvalidItemID)
		return
	}

	if _, err := s.store.Get(id); err != nil {
		NotFound(w, "Item with specified ID not found for update.")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		BadRequest(w, "Invalid JSON format in request body for update.")
		return
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		BadRequest(w, "Invalid JSON format in request body for update.")
		return
	}

	var namePtr *string
	if name, ok := fields["name"].(string); ok {
		if name == "" {
			BadRequest(w, "Updated item name must not be empty.")
			return
		}
		if len(name) > maxItemNameBytes {
			BadRequest(w, "Updated item name too long (max 63 characters).")
			return
		}
		namePtr = &name
	}

	var valuePtr *int
	if value, ok := fields["value"].(float64); ok {
		v := int(value)
		valuePtr = &v
	}

	item, err := s.store.Update(id, namePtr, valuePtr)
	if err != nil {
		NotFound(w, "Item with specified ID not found for update.")
		return
	}

	WriteJSON(w, ItemResponse(item), http.StatusOK)
}

// handleDeleteItem handles DELETE /api/v1/items/:id
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := ParseItemID(r.URL.Path, itemsPrefix)
	if err != nil {
		BadRequest(w, msgInvalidItemID)
		return
	}

	if err := s.store.Delete(id); err != nil {
		NotFound(w, "Item with specified ID not found for deletion.")
		return
	}

	WriteJSON(w, DeleteResponse{Message: "Item deleted successfully."}, http.StatusOK)
}

// writeStoreError translates a store error into the envelope, using
// message as the detail for the expected code and falling back to a
// generic 500 otherwise.
func writeStoreError(w http.ResponseWriter, err error, message string) {
	switch errors.CodeOf(err) {
	case errors.CapacityExceeded:
		InsufficientStorage(w, message)
	case errors.ItemNotFound:
		NotFound(w, message)
	default:
		InternalError(w, "Unexpected store failure.")
	}
}
