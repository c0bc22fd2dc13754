package api

import (
	"encoding/json"
	"net/http"

	"itemd/internal/errors"
)

// ErrorResponse is the error envelope returned by every failing
// endpoint. The label mirrors the HTTP status text, the message carries
// the human-readable detail.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// plainFallback is the fixed body emitted when the error envelope
// itself cannot be serialized.
const plainFallback = "Internal Server Error: failed to encode structured error response"

// WriteJSON writes a JSON response. The payload is serialized before
// any headers go out so a marshalling failure can still be reported as
// a structured 500.
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	payload, err := json.Marshal(data)
	if err != nil {
		WriteError(w, "Failed to encode response body.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// WriteError writes the standard error envelope for the given status
// code. If even the envelope cannot be serialized it degrades to a
// fixed plain-text 500, which has no failure path of its own.
func WriteError(w http.ResponseWriter, message string, status int) {
	resp := ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(plainFallback))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// WriteItemdError writes an ItemdError with automatic status code mapping
func WriteItemdError(w http.ResponseWriter, err *errors.ItemdError) {
	WriteError(w, err.Message, MapErrorToStatus(err.Code))
}

// MapErrorToStatus maps itemd error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.InvalidInput:
		return http.StatusBadRequest // 400
	case errors.ItemNotFound:
		return http.StatusNotFound // 404
	case errors.RouteNotFound:
		return http.StatusNotFound // 404
	case errors.CapacityExceeded:
		return http.StatusInsufficientStorage // 507
	case errors.InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, message, http.StatusBadRequest)
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, message, http.StatusNotFound)
}

// InsufficientStorage writes a 507 Insufficient Storage error
func InsufficientStorage(w http.ResponseWriter, message string) {
	WriteError(w, message, http.StatusInsufficientStorage)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, message, http.StatusInternalServerError)
}
