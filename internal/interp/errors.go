package interp

import "fmt"

// APIError is the broad category failure a remote client surfaces: auth,
// transport, server-side faults. Narrower failures unwrap to it, so a
// matcher for APIError also matches them.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// UnprocessableError is the narrow, operation-specific failure: the remote
// understood the call but rejected the record itself, typically with
// per-field violations.
type UnprocessableError struct {
	APIError
	Violations []string
}

func (e *UnprocessableError) Error() string {
	return fmt.Sprintf("unprocessable record: %s", e.Message)
}

// Unwrap exposes the broad category so narrow failures also satisfy
// matchers targeting *APIError. This mirrors a subclass relationship and
// is the reason handler precedence is order-sensitive.
func (e *UnprocessableError) Unwrap() error {
	return &e.APIError
}
