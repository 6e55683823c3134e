package portal

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
)

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// SessionAPI is the part of the server the session store needs.
type SessionAPI interface {
	CheckAuth(ctx context.Context) (Session, error)
	Logout(ctx context.Context) error
}

// SessionStore holds the signed-in identity. It is the only shared client state and is
// written only by Login, Logout and CheckAuthStatus.
type SessionStore struct {
	api    SessionAPI
	logger zerolog.Logger

	mu      sync.RWMutex
	session *Session
	loading bool
}

// NewSessionStore creates an empty store. It reports Loading until the first
// CheckAuthStatus finishes.
func NewSessionStore(api SessionAPI, logger zerolog.Logger) *SessionStore {
	return &SessionStore{api: api, logger: logger, loading: true}
}

// Login records the session returned by a successful login or signup.
func (s *SessionStore) Login(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	s.loading = false
}

// Logout ends the session on the server and clears it locally whatever the server says.
// The returned error is informational only.
func (s *SessionStore) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Logout call failed, clearing session anyway")
	}

	s.mu.Lock()
	s.session = nil
	s.loading = false
	s.mu.Unlock()
	return err
}

// CheckAuthStatus asks the server who the current cookie belongs to. Any failure leaves
// the store signed out. There is exactly one attempt.
func (s *SessionStore) CheckAuthStatus(ctx context.Context) {
	session, err := s.api.CheckAuth(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Debug().Err(err).Msg("Auth check failed")
		s.session = nil
		return
	}
	s.session = &session
}

// Current returns the signed-in session, if any.
func (s *SessionStore) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// Loading reports whether the initial auth check is still pending.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LoginRedirect is where a user lands after logging in: the role's home once the profile
// is complete, else the role's signup page.
func LoginRedirect(session Session) string {
	if !session.ProfileCompleted {
		return "/signup/" + string(session.Role)
	}
	return session.Role.HomePath()
}

// hasRole reports whether role is one of allowed.
func hasRole(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
