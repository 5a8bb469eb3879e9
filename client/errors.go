package client

import "fmt"

// NetworkError reports that a request never reached the server or that no
// response arrived. It is not retried by this layer; callers may retry.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach the server at %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthFailedError reports an unrecoverable authentication failure: a 401 that
// survived the transparent refresh-and-retry, or a failed refresh call. The
// session has been cleared; the user must log in again.
type AuthFailedError struct {
	Err error
}

func (e *AuthFailedError) Error() string {
	return "your session has expired, please sign in again"
}

func (e *AuthFailedError) Unwrap() error { return e.Err }

// NotFoundError reports a 404, surfaced distinctly so callers can render
// "not found" rather than a generic failure.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError reports a 4xx other than 401/404, with the human-readable
// message extracted verbatim from the response body when present.
type ValidationError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ValidationError) Error() string { return e.Message }

// ServerError reports a 5xx. The raw body is logged for diagnostics; the
// message stays generic.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string { return e.Message }
