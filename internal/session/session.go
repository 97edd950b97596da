package session

import (
	"errors"
	"time"
)

// Session is the locally held assertion of who is signed in. It is owned by
// the Manager; everyone else sees copies.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's lifetime has passed at now. A zero
// expiry never expires.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type State string

const (
	Uninitialized   State = "uninitialized"
	Authenticated   State = "authenticated"
	Unauthenticated State = "unauthenticated"
)

// ErrDisposed is returned by every operation invoked after Close.
var ErrDisposed = errors.New("session manager disposed")

// AuthError carries the backend's message for a failed sign-in/up/out.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }
