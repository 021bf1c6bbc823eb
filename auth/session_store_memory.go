package auth

import (
	"sync"

	"github.com/gatehouse-dev/gatehouse/store"
)

// MemorySessionStore is a thread-safe in-process SessionStore. Sessions are
// lost on server restart.
type MemorySessionStore struct {
	mu   sync.RWMutex
	data map[string]store.SessionRecord
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an empty in-process session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{data: make(map[string]store.SessionRecord)}
}

func (s *MemorySessionStore) Put(rec store.SessionRecord) error {
	s.mu.Lock()
	s.data[rec.SessionID] = rec
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Get(sessionID string) (store.SessionRecord, bool) {
	s.mu.RLock()
	rec, ok := s.data[sessionID]
	s.mu.RUnlock()
	if !ok {
		return store.SessionRecord{}, false
	}
	return rec, true
}

func (s *MemorySessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[sessionID]; !ok {
		return false
	}
	delete(s.data, sessionID)
	return true
}
