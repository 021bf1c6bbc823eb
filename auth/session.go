package auth

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gatehouse-dev/gatehouse/store"
)

// SessionStrategy authenticates requests by a session cookie. The cookie
// carries an opaque session id mapped to a user through the SessionStore;
// which lifecycle the sessions have (volatile, expiring, durable) is decided
// entirely by the store composition handed in at construction.
type SessionStrategy struct {
	users      store.UserStore
	sessions   SessionStore
	cookieName string
	excluded   []string
}

var _ Strategy = (*SessionStrategy)(nil)

// NewSessionStrategy creates a session-cookie strategy. cookieName is the
// configured name of the session cookie; excluded is the ordered
// path-exclusion list bound for the process lifetime.
func NewSessionStrategy(users store.UserStore, sessions SessionStore, cookieName string, excluded []string) *SessionStrategy {
	return &SessionStrategy{
		users:      users,
		sessions:   sessions,
		cookieName: cookieName,
		excluded:   excluded,
	}
}

// CookieName returns the configured session cookie name.
func (s *SessionStrategy) CookieName() string { return s.cookieName }

func (s *SessionStrategy) RequiresAuth(path string) bool {
	return RequiresAuth(path, s.excluded)
}

func (s *SessionStrategy) ExtractCredential(r *http.Request) (string, bool) {
	return SessionCookie(r, s.cookieName)
}

// CreateSession issues a fresh session id for userID and stores the
// association. Empty user ids are rejected. A failed store write reports
// false so the caller never hands out a cookie for a session that does not
// exist.
func (s *SessionStrategy) CreateSession(userID string) (string, bool) {
	if userID == "" {
		return "", false
	}
	sessionID := uuid.NewString()
	err := s.sessions.Put(store.SessionRecord{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", false
	}
	return sessionID, true
}

// UserIDForSession returns the user id owning sessionID, or false when the
// session is absent or expired.
func (s *SessionStrategy) UserIDForSession(sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}
	rec, ok := s.sessions.Get(sessionID)
	if !ok {
		return "", false
	}
	return rec.UserID, true
}

func (s *SessionStrategy) ResolvePrincipal(r *http.Request) *store.User {
	sessionID, ok := SessionCookie(r, s.cookieName)
	if !ok {
		return nil
	}
	userID, ok := s.UserIDForSession(sessionID)
	if !ok {
		return nil
	}
	user, err := s.users.UserByID(userID)
	if err != nil {
		return nil
	}
	return user
}

// DestroySession removes the session carried by the request's cookie.
// Reports false when the request has no session cookie or the session is
// absent or expired; destroying the same session twice reports true then
// false.
func (s *SessionStrategy) DestroySession(r *http.Request) bool {
	sessionID, ok := SessionCookie(r, s.cookieName)
	if !ok {
		return false
	}
	if _, ok := s.sessions.Get(sessionID); !ok {
		return false
	}
	return s.sessions.Delete(sessionID)
}
