// Package session holds the authentication state of a running process.
//
// A Session starts unauthenticated and moves to authenticated only after a
// successful password check. It carries the account identity, never key material;
// the optional Keyring caches the DEK separately.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// Authenticator is the subset of the account use case a session drives.
type Authenticator interface {
	Authenticate(ctx context.Context, password []byte) (*accountDomain.Identity, bool, error)
	Unlock(ctx context.Context, password []byte) (*accountDomain.Identity, *cryptoDomain.Dek, error)
}

// Session is the process-wide authentication state machine. Safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	state    accountDomain.AuthState
	accounts Authenticator
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewAttemptLimiter returns a token bucket allowing perMinute password attempts
// with the given burst. A non-positive perMinute disables throttling.
func NewAttemptLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// NewSession creates an unauthenticated session.
func NewSession(accounts Authenticator, limiter *rate.Limiter, logger *slog.Logger) *Session {
	if limiter == nil {
		limiter = NewAttemptLimiter(0, 0)
	}
	return &Session{
		state:    accountDomain.NewAuthState(),
		accounts: accounts,
		limiter:  limiter,
		logger:   logger,
	}
}

// State returns a snapshot of the current state.
func (s *Session) State() accountDomain.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns the authenticated identity or ErrNotAuthenticated.
func (s *Session) Identity() (*accountDomain.Identity, error) {
	state := s.State()
	if !state.IsAuthenticated() {
		return nil, accountDomain.ErrNotAuthenticated
	}
	return state.Identity, nil
}

// Authenticate checks the password and, on success, moves the session to the
// authenticated state. A wrong password leaves the state untouched.
func (s *Session) Authenticate(ctx context.Context, password []byte) (bool, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return false, err
	}

	identity, ok, err := s.accounts.Authenticate(ctx, password)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Info("session authentication rejected")
		return false, nil
	}

	s.transition(identity)
	return true, nil
}

// Unlock checks the password, moves the session to the authenticated state and
// returns the DEK. The caller owns the Dek.
func (s *Session) Unlock(ctx context.Context, password []byte) (*cryptoDomain.Dek, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	identity, dek, err := s.accounts.Unlock(ctx, password)
	if err != nil {
		return nil, err
	}

	s.transition(identity)
	return dek, nil
}

// Lock returns the session to the unauthenticated state.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsAuthenticated() {
		s.logger.Info("session locked", slog.String("username", s.state.Identity.Username))
	}
	s.state = s.state.Lock()
}

func (s *Session) transition(identity *accountDomain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.Authenticate(identity)
	s.logger.Info("session authenticated", slog.String("username", identity.Username))
}
