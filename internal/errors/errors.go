package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InvalidInput indicates a malformed identifier or request body
	InvalidInput ErrorCode = "INVALID_INPUT"
	// ItemNotFound indicates no live item has the given id
	ItemNotFound ErrorCode = "ITEM_NOT_FOUND"
	// RouteNotFound indicates no route matched the request
	RouteNotFound ErrorCode = "ROUTE_NOT_FOUND"
	// CapacityExceeded indicates the item store is full
	CapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// ItemdError represents an itemd error with a stable code and message
type ItemdError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new ItemdError
func New(code ErrorCode, message string, cause error) *ItemdError {
	return &ItemdError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *ItemdError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ItemdError) Unwrap() error {
	return e.cause
}

// CodeOf extracts the error code from an error chain.
// Returns InternalError for nil-code chains and plain errors.
func CodeOf(err error) ErrorCode {
	var ie *ItemdError
	if stderrors.As(err, &ie) {
		return ie.Code
	}
	return InternalError
}
