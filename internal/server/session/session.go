// Package session holds the per-user mutable state of the web flow: the
// current view, the authenticated identity, and the artifacts of the
// last workflow invocation. Sessions are process-scoped and expire;
// nothing here is persisted.
package session

import (
	"time"

	"github.com/kri-sh27/s3transcribe/internal/server/workflow"
)

// View names the screen a session is on.
type View string

const (
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewHome     View = "home"
)

// Session is the state of one browser session. A new session starts on
// the registration view, unauthenticated. Only the controller mutates
// the auth/view fields.
type Session struct {
	ID            string
	Authenticated bool
	Email         string
	View          View

	// Recording is the local path of a fresh capture awaiting the
	// user's persist action; empty when none is pending.
	Recording string

	// Result keeps the last transcription outcome so its downloads can
	// be served after the page renders.
	Result *workflow.Result

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has outlived its validity.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
