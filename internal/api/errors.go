package api

import "errors"

var (
	// ErrInvalidCredentials marks a login/signup rejected by the backend.
	// The verbatim backend message is available via APIError.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNetworkUnavailable marks a transport-level failure: no response
	// was received at all.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrMalformedResponse marks a response that did not match any of the
	// known backend schemas.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRequestRejected marks a non-2xx response on a non-auth endpoint
	// (including an expired token discovered on a later request).
	ErrRequestRejected = errors.New("request rejected")
)

// APIError carries the HTTP status and the backend's error message verbatim,
// so screens can display it unchanged. It unwraps to one of the sentinels
// above for errors.Is classification.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.kind.Error()
}

func (e *APIError) Unwrap() error { return e.kind }
