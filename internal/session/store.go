package session

import (
	"context"
	"log/slog"
	"sync"

	"infocomm/internal/apperr"
)

// Store holds the single mutable session record. Only Login, Logout, Restore
// and DismissError write it, and persisted writes are whole-replace: no
// partial session is ever observable.
type Store struct {
	mu        sync.RWMutex
	state     State
	current   *Session
	lastError string
	restored  bool

	validator   CredentialValidator
	persistence Persistence
}

func NewStore(validator CredentialValidator, persistence Persistence) *Store {
	return &Store{
		state:       StateUnauthenticated,
		validator:   validator,
		persistence: persistence,
	}
}

// Restore asks the persistence collaborator for an existing record before the
// store settles into Unauthenticated or Authenticated. Guards report Pending
// until this has run once.
func (s *Store) Restore(ctx context.Context) error {
	record, err := s.persistence.LoadSession(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.restored = true
	if err != nil {
		s.state = StateUnauthenticated
		s.current = nil
		return apperr.Wrap(apperr.KindRetrieval, "restore session", err)
	}
	if record == nil {
		s.state = StateUnauthenticated
		s.current = nil
		return nil
	}
	s.state = StateAuthenticated
	s.current = record
	return nil
}

// Login drives Unauthenticated -> Authenticating -> Authenticated/AuthError.
// A rejected attempt leaves the persisted record exactly as it was.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.state = StateAuthenticating
	s.lastError = ""
	s.mu.Unlock()

	record, err := s.validator.Validate(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.state = StateAuthError
		s.lastError = err.Error()
		s.mu.Unlock()
		return err
	}

	if persistErr := s.persistence.SaveSession(ctx, record); persistErr != nil {
		// The in-memory session is still valid; the record just won't survive
		// a restart.
		slog.Warn("failed to persist session", "username", record.Username, "error", persistErr)
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.current = record
	s.mu.Unlock()
	return nil
}

// Logout clears the session and the persisted record unconditionally.
// Logging out while already unauthenticated is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.current = nil
	s.lastError = ""
	s.mu.Unlock()

	if err := s.persistence.DeleteSession(ctx); err != nil {
		return apperr.Wrap(apperr.KindRetrieval, "clear persisted session", err)
	}
	return nil
}

// DismissError acknowledges a failed login attempt.
func (s *Store) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAuthError {
		s.state = StateUnauthenticated
		s.lastError = ""
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current returns a copy of the active session, or nil.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

func (s *Store) Restored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restored
}

// LastError is the rejection message of the most recent failed login, shown
// as a dismissable inline message.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}
