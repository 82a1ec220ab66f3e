// Package session owns the single authenticated-identity record and the
// access decisions derived from it.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Session is the record of the currently authenticated identity.
type Session struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

// State of the store's authentication machine.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
	StateAuthError
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthError:
		return "auth_error"
	default:
		return "unauthenticated"
	}
}

// CredentialValidator resolves a username/password pair into a session record
// or a rejection. Implemented by the auth service; a future backend slots in
// behind the same interface.
type CredentialValidator interface {
	Validate(ctx context.Context, username, password string) (*Session, error)
}

// Persistence stores the active session record across restarts. Load returns
// (nil, nil) when no record exists.
type Persistence interface {
	SaveSession(ctx context.Context, s *Session) error
	LoadSession(ctx context.Context) (*Session, error)
	DeleteSession(ctx context.Context) error
}
