package auth

import "github.com/gatehouse-dev/gatehouse/store"

// PersistentSessionStore keeps session records in a durable
// store.SessionRecordStore instead of process memory, so sessions survive
// server restarts and are visible across multiple instances sharing the
// backing store. Concurrency control is delegated to the backing store's own
// transactional guarantees.
type PersistentSessionStore struct {
	records store.SessionRecordStore
}

var _ SessionStore = (*PersistentSessionStore)(nil)

// NewPersistentSessionStore creates a session store backed by the given
// durable record store.
func NewPersistentSessionStore(records store.SessionRecordStore) *PersistentSessionStore {
	return &PersistentSessionStore{records: records}
}

func (s *PersistentSessionStore) Put(rec store.SessionRecord) error {
	return s.records.Insert(rec)
}

func (s *PersistentSessionStore) Get(sessionID string) (store.SessionRecord, bool) {
	rec, err := s.records.Find(sessionID)
	if err != nil {
		return store.SessionRecord{}, false
	}
	return rec, true
}

func (s *PersistentSessionStore) Delete(sessionID string) bool {
	return s.records.Delete(sessionID) == nil
}
