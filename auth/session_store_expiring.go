package auth

import (
	"time"

	"github.com/gatehouse-dev/gatehouse/store"
)

// ExpiringSessionStore layers a time-to-live over another SessionStore. A TTL
// of zero or below disables expiration entirely. Expired records read as
// absent on Get; they are not eagerly deleted, but behave identically to
// deleted records for all read purposes.
type ExpiringSessionStore struct {
	inner SessionStore
	ttl   time.Duration
}

var _ SessionStore = (*ExpiringSessionStore)(nil)

// NewExpiringSessionStore wraps inner with the given TTL.
func NewExpiringSessionStore(inner SessionStore, ttl time.Duration) *ExpiringSessionStore {
	return &ExpiringSessionStore{inner: inner, ttl: ttl}
}

func (s *ExpiringSessionStore) Put(rec store.SessionRecord) error {
	return s.inner.Put(rec)
}

func (s *ExpiringSessionStore) Get(sessionID string) (store.SessionRecord, bool) {
	rec, ok := s.inner.Get(sessionID)
	if !ok {
		return store.SessionRecord{}, false
	}
	if s.ttl > 0 && time.Now().After(rec.CreatedAt.Add(s.ttl)) {
		return store.SessionRecord{}, false
	}
	return rec, true
}

func (s *ExpiringSessionStore) Delete(sessionID string) bool {
	return s.inner.Delete(sessionID)
}
