// Package api defines the response bodies shared by all HTTP handlers.
package api

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// InternalError is the generic body returned for unexpected failures.
var InternalError = ErrorResponse{Error: "internal server error"}
