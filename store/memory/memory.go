// Package memory provides thread-safe in-memory implementations of the store
// interfaces. Suitable for testing, demos, and single-process use cases.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gatehouse-dev/gatehouse/store"
)

// Store implements store.UserStore and store.SessionRecordStore backed by
// process memory. All data is lost on restart.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*store.User // keyed by user id
	sessions map[string]store.SessionRecord
}

var (
	_ store.UserStore          = (*Store)(nil)
	_ store.SessionRecordStore = (*Store)(nil)
)

// NewStore creates a new empty in-memory Store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*store.User),
		sessions: make(map[string]store.SessionRecord),
	}
}

func cloneUser(u *store.User) *store.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &cp
}

func (s *Store) CreateUser(email string, passwordHash []byte) (*store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, store.ErrDuplicate
		}
	}
	u := &store.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	return cloneUser(u), nil
}

func (s *Store) UserByID(id string) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(u), nil
}

// findBy scans for the first user matching the predicate. The store is small
// enough that an index per attribute is not worth carrying.
func (s *Store) findBy(match func(*store.User) bool) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UserByEmail(email string) (*store.User, error) {
	return s.findBy(func(u *store.User) bool { return u.Email == email })
}

func (s *Store) UserBySessionID(sessionID string) (*store.User, error) {
	if sessionID == "" {
		return nil, store.ErrNotFound
	}
	return s.findBy(func(u *store.User) bool { return u.SessionID == sessionID })
}

func (s *Store) UserByResetToken(token string) (*store.User, error) {
	if token == "" {
		return nil, store.ErrNotFound
	}
	return s.findBy(func(u *store.User) bool { return u.ResetToken == token })
}

func (s *Store) update(id string, apply func(*store.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	apply(u)
	return nil
}

func (s *Store) SetPasswordHash(id string, hash []byte) error {
	return s.update(id, func(u *store.User) {
		u.PasswordHash = append([]byte(nil), hash...)
	})
}

func (s *Store) SetSessionID(id, sessionID string) error {
	return s.update(id, func(u *store.User) { u.SessionID = sessionID })
}

func (s *Store) SetResetToken(id, token string) error {
	return s.update(id, func(u *store.User) { u.ResetToken = token })
}

func (s *Store) Insert(rec store.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[rec.SessionID] = rec
	return nil
}

func (s *Store) Find(sessionID string) (store.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return store.SessionRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *Store) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return store.ErrNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}
