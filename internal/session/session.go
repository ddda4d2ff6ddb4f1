// Package session owns the user's credentials. The access token lives in
// one explicitly constructed object with clear init (login) and teardown
// (logout, reissue failure) transitions, injected into the API client
// rather than read from ambient global state.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dookkeobi/leakpot/internal/common"
)

// TokenStore persists the access token across runs. The sqlite storage
// layer implements it; tests use an in-memory fake.
type TokenStore interface {
	SaveToken(ctx context.Context, token string) error
	LoadToken(ctx context.Context) (string, error)
	DeleteToken(ctx context.Context) error
}

// Session holds the current access token and mirrors every change into the
// token store.
type Session struct {
	store  TokenStore
	logger *slog.Logger
	token  string
	mu     sync.RWMutex
}

// New creates a session, restoring a persisted token when one exists.
func New(ctx context.Context, store TokenStore) *Session {
	s := &Session{
		store:  store,
		logger: slog.Default().With("component", "session"),
	}

	if store != nil {
		token, err := store.LoadToken(ctx)
		if err == nil && token != "" {
			s.token = token
			s.logger.Debug("Restored persisted session")
		}
	}

	return s
}

// AccessToken returns the current bearer token, empty when logged out.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetAccessToken installs a new token (login or reissue) and persists it.
func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	if err := s.store.SaveToken(context.Background(), token); err != nil {
		s.logger.Warn("Failed to persist session token", "error", err)
	}
}

// Active reports whether a token is held.
func (s *Session) Active() bool {
	return s.AccessToken() != ""
}

// Clear tears the session down: the token is dropped and removed from the
// store. Called on logout and after a failed reissue.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.DeleteToken(ctx); err != nil {
		return common.NewUserError("failed to clear saved session", err)
	}
	return nil
}
