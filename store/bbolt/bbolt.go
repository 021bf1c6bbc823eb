// Package bbolt provides a BBolt-backed implementation of the store
// interfaces.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/gatehouse-dev/gatehouse/store"
)

var (
	usersBucket    = []byte("users")
	sessionsBucket = []byte("sessions")
)

// Store implements store.UserStore and store.SessionRecordStore backed by a
// BBolt database. Records are stored as JSON, users keyed by id and session
// records keyed by session id.
type Store struct {
	db *bbolt.DB
}

var (
	_ store.UserStore          = (*Store)(nil)
	_ store.SessionRecordStore = (*Store)(nil)
)

// NewStore returns a Store backed by the given BBolt database.
func NewStore(db *bbolt.DB) (*Store, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{usersBucket, sessionsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreFromFile opens a BBolt database at the given path and returns a new
// Store.
func NewStoreFromFile(path string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return NewStore(db)
}

// Close closes the underlying BBolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateUser(email string, passwordHash []byte) (*store.User, error) {
	u := &store.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		CreatedAt:    time.Now().UTC(),
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(usersBucket)
		var dup bool
		if err := b.ForEach(func(_, v []byte) error {
			var existing store.User
			if err := json.Unmarshal(v, &existing); err != nil {
				return err
			}
			if existing.Email == email {
				dup = true
			}
			return nil
		}); err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%s: %w", email, store.ErrDuplicate)
		}
		data, err := json.Marshal(u)
		if err != nil {
			return err
		}
		return b.Put([]byte(u.ID), data)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) UserByID(id string) (*store.User, error) {
	var u store.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(usersBucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("user %s: %w", id, store.ErrNotFound)
		}
		return json.Unmarshal(data, &u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// findBy scans the users bucket for the first record matching the predicate.
func (s *Store) findBy(match func(*store.User) bool) (*store.User, error) {
	var found *store.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(usersBucket).ForEach(func(_, v []byte) error {
			if found != nil {
				return nil
			}
			var u store.User
			if err := json.Unmarshal(v, &u); err != nil {
				return err
			}
			if match(&u) {
				found = &u
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, store.ErrNotFound
	}
	return found, nil
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
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(usersBucket)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("user %s: %w", id, store.ErrNotFound)
		}
		var u store.User
		if err := json.Unmarshal(data, &u); err != nil {
			return err
		}
		apply(&u)
		updated, err := json.Marshal(&u)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), updated)
	})
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
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket(sessionsBucket).Put([]byte(rec.SessionID), data)
	})
}

func (s *Store) Find(sessionID string) (store.SessionRecord, error) {
	var rec store.SessionRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(sessionsBucket).Get([]byte(sessionID))
		if data == nil {
			return fmt.Errorf("session %s: %w", sessionID, store.ErrNotFound)
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return store.SessionRecord{}, err
	}
	return rec, nil
}

func (s *Store) Delete(sessionID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		if b.Get([]byte(sessionID)) == nil {
			return fmt.Errorf("session %s: %w", sessionID, store.ErrNotFound)
		}
		return b.Delete([]byte(sessionID))
	})
}
