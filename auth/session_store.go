package auth

import "github.com/gatehouse-dev/gatehouse/store"

// SessionStore owns the session-id to user association and its lifecycle. A
// session is absent, then active after Put, then absent again after Delete.
// Raw stores never expire records themselves; expiration is layered on with
// ExpiringSessionStore so the same policy applies to every backing.
type SessionStore interface {
	// Put creates or replaces the session record under its session id. A
	// non-nil error means the record was not stored; callers must not treat
	// the session as active.
	Put(rec store.SessionRecord) error
	// Get retrieves a session record. Returns false if the session does not
	// exist or, for expiring stores, has expired.
	Get(sessionID string) (store.SessionRecord, bool)
	// Delete removes a session, reporting false when no such session
	// existed. A second delete of the same id reports false, not an error.
	Delete(sessionID string) bool
}
