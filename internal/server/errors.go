// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import "fmt"

// ValidationError reports client input rejected before any network or
// storage access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrorPayload is the structured error result every tool returns instead of
// letting an error escape to the transport.
type ErrorPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorPayload(format string, args ...any) ErrorPayload {
	return ErrorPayload{Status: "error", Message: fmt.Sprintf(format, args...)}
}
