// Package store defines the persistence collaborators for user and session
// records: narrow interfaces the authentication engine queries and updates,
// with distinguishable not-found outcomes.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a create would violate a uniqueness
// constraint (currently only the user email).
var ErrDuplicate = errors.New("duplicate record")

// User is the durable account record. PasswordHash is opaque to everything
// but the password hasher and never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
	SessionID    string    `json:"session_id,omitempty"`
	ResetToken   string    `json:"reset_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionRecord associates an issued session id with its owning user.
type SessionRecord struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStore owns User records. Lookups report misses as ErrNotFound; the
// update surface is a closed set of named setters so every mutable attribute
// is enumerable and type-checked.
type UserStore interface {
	// CreateUser adds a new user. Returns ErrDuplicate when the email is
	// already registered.
	CreateUser(email string, passwordHash []byte) (*User, error)

	UserByID(id string) (*User, error)
	UserByEmail(email string) (*User, error)
	UserBySessionID(sessionID string) (*User, error)
	UserByResetToken(token string) (*User, error)

	SetPasswordHash(id string, hash []byte) error
	// SetSessionID writes the user's single live session id. An empty value
	// clears it.
	SetSessionID(id, sessionID string) error
	// SetResetToken overwrites the user's reset token. An empty value
	// clears it.
	SetResetToken(id, token string) error
}

// SessionRecordStore owns durable SessionRecords for the persisted session
// store variant. Find and Delete report misses as ErrNotFound.
type SessionRecordStore interface {
	Insert(rec SessionRecord) error
	Find(sessionID string) (SessionRecord, error)
	Delete(sessionID string) error
}
