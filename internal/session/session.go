// Package session owns the authentication lifecycle of the app: how the
// user's identity is acquired, persisted across restarts, attached to
// outgoing requests, and torn down. Screens consume it; it is the sole
// writer of both the in-memory session and the durable record.
package session

import (
	"github.com/avezina/givehub/internal/api"
)

// State of the manager. Unknown lasts from construction until Initialize has
// consulted the durable store; there is no partial or expired state, token
// expiry only surfaces as a failure on a later request.
type State int

const (
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the authenticated identity and bearer credential of the current
// user. It is replaced wholesale on every transition, never mutated.
type Session struct {
	UserID string   `json:"userId"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Token  string   `json:"token"`
	Role   api.Role `json:"role"`
}
