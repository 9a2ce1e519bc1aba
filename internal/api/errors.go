package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound maps 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrAuthRequired maps 401 responses. The stored token has already been
	// cleared by the time callers see it.
	ErrAuthRequired = errors.New("authentication required")
)

// Error is a non-2xx response from the storefront API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// errorBody is the API's error payload shape.
type errorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}
