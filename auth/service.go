package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gatehouse-dev/gatehouse/store"
)

// Failures surfaced by Service operations. Only Register, ResetPasswordToken
// and UpdatePassword surface errors to their callers; every other operation
// reports failure purely through its return value.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnknownUser    = errors.New("unknown user")
	ErrInvalidToken   = errors.New("invalid reset token")
)

// Service implements the registration, login, and password-reset flows over a
// user store and a password hasher. It owns no state of its own; the single
// live session id per user lives on the user record itself.
type Service struct {
	users  store.UserStore
	hasher Hasher
}

// NewService creates a credential service over the given user store.
func NewService(users store.UserStore, hasher Hasher) *Service {
	return &Service{users: users, hasher: hasher}
}

// Register hashes the password and creates the user record. Returns
// ErrDuplicateEmail when the email is already registered.
func (s *Service) Register(email, password string) (*store.User, error) {
	if _, err := s.users.UserByEmail(email); err == nil {
		return nil, fmt.Errorf("%s: %w", email, ErrDuplicateEmail)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user, err := s.users.CreateUser(email, []byte(hash))
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%s: %w", email, ErrDuplicateEmail)
		}
		return nil, err
	}
	return user, nil
}

// ValidLogin reports whether email identifies a user whose stored hash
// verifies against password.
func (s *Service) ValidLogin(email, password string) bool {
	user, err := s.users.UserByEmail(email)
	if err != nil {
		return false
	}
	return s.hasher.Verify(password, string(user.PasswordHash))
}

// CreateSession issues a fresh session id and writes it onto the user record.
// A new login overwrites any prior session id (single session per user).
// Reports false when no user holds the email.
func (s *Service) CreateSession(email string) (string, bool) {
	user, err := s.users.UserByEmail(email)
	if err != nil {
		return "", false
	}
	sessionID := uuid.NewString()
	if err := s.users.SetSessionID(user.ID, sessionID); err != nil {
		return "", false
	}
	return sessionID, true
}

// UserBySession returns the user currently holding sessionID, or nil.
func (s *Service) UserBySession(sessionID string) *store.User {
	if sessionID == "" {
		return nil
	}
	user, err := s.users.UserBySessionID(sessionID)
	if err != nil {
		return nil
	}
	return user
}

// DestroySession clears the session id on the user's record. Unlike
// SessionStrategy.DestroySession it reports no failure for an already
// logged-out user; the two contracts are deliberately asymmetric.
func (s *Service) DestroySession(userID string) {
	_ = s.users.SetSessionID(userID, "")
}

// ResetPasswordToken generates a fresh single-use reset token and writes it
// onto the user record, replacing any previous token so only the latest is
// valid. Returns ErrUnknownUser when no user holds the email.
func (s *Service) ResetPasswordToken(email string) (string, error) {
	user, err := s.users.UserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", email, ErrUnknownUser)
	}
	token := uuid.NewString()
	if err := s.users.SetResetToken(user.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

// UpdatePassword replaces the stored hash of the user holding resetToken and
// consumes the token. Returns ErrInvalidToken when no user holds the token.
func (s *Service) UpdatePassword(resetToken, newPassword string) error {
	if resetToken == "" {
		return ErrInvalidToken
	}
	user, err := s.users.UserByResetToken(resetToken)
	if err != nil {
		return ErrInvalidToken
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.users.SetPasswordHash(user.ID, []byte(hash)); err != nil {
		return err
	}
	return s.users.SetResetToken(user.ID, "")
}
