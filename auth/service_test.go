package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-dev/gatehouse/store/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.NewStore(), BcryptHasher{Cost: 4})
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)

	u, err := svc.Register("a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEmpty(t, u.ID)
	// The stored secret is a hash, never the plaintext.
	assert.NotEqual(t, "p1", string(u.PasswordHash))

	_, err = svc.Register("a@x.com", "p2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestValidLogin(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register("a@x.com", "p1")
	require.NoError(t, err)

	assert.True(t, svc.ValidLogin("a@x.com", "p1"))
	assert.False(t, svc.ValidLogin("a@x.com", "wrong"))
	assert.False(t, svc.ValidLogin("missing@x.com", "p1"))
}

func TestCreateAndResolveSession(t *testing.T) {
	svc := newTestService(t)
	u, err := svc.Register("a@x.com", "p1")
	require.NoError(t, err)

	sessionID, ok := svc.CreateSession("a@x.com")
	require.True(t, ok)
	assert.Len(t, sessionID, 36)

	got := svc.UserBySession(sessionID)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	_, ok = svc.CreateSession("missing@x.com")
	assert.False(t, ok)

	assert.Nil(t, svc.UserBySession(""))
	assert.Nil(t, svc.UserBySession("no-such-session"))
}

func TestNewLoginOverwritesSession(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register("a@x.com", "p1")
	require.NoError(t, err)

	first, ok := svc.CreateSession("a@x.com")
	require.True(t, ok)
	second, ok := svc.CreateSession("a@x.com")
	require.True(t, ok)
	require.NotEqual(t, first, second)

	// Single session per user: only the latest id resolves.
	assert.Nil(t, svc.UserBySession(first))
	assert.NotNil(t, svc.UserBySession(second))
}

func TestDestroySession(t *testing.T) {
	svc := newTestService(t)
	u, err := svc.Register("a@x.com", "p1")
	require.NoError(t, err)

	sessionID, ok := svc.CreateSession("a@x.com")
	require.True(t, ok)

	svc.DestroySession(u.ID)
	assert.Nil(t, svc.UserBySession(sessionID))

	// Destroying again is not a failure; the contract is unconditional.
	svc.DestroySession(u.ID)
	svc.DestroySession("no-such-user")
}

func TestResetPasswordToken(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register("a@x.com", "p1")
	require.NoError(t, err)

	_, err = svc.ResetPasswordToken("missing@x.com")
	assert.ErrorIs(t, err, ErrUnknownUser)

	tok1, err := svc.ResetPasswordToken("a@x.com")
	require.NoError(t, err)
	assert.Len(t, tok1, 36)

	// Issuing again replaces the token; only the latest validates.
	tok2, err := svc.ResetPasswordToken("a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, tok1, tok2)

	assert.ErrorIs(t, svc.UpdatePassword(tok1, "p2"), ErrInvalidToken)
	require.NoError(t, svc.UpdatePassword(tok2, "p2"))
}

func TestUpdatePassword(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register("a@x.com", "b4l0u")
	require.NoError(t, err)

	tok, err := svc.ResetPasswordToken("a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(tok, "t4rt1fl3tt3"))

	assert.False(t, svc.ValidLogin("a@x.com", "b4l0u"))
	assert.True(t, svc.ValidLogin("a@x.com", "t4rt1fl3tt3"))

	// The token is single-use.
	assert.ErrorIs(t, svc.UpdatePassword(tok, "again"), ErrInvalidToken)
	assert.ErrorIs(t, svc.UpdatePassword("", "again"), ErrInvalidToken)
	assert.ErrorIs(t, svc.UpdatePassword("bogus", "again"), ErrInvalidToken)
}

func TestEndToEndFlow(t *testing.T) {
	svc := newTestService(t)

	u, err := svc.Register("a@x.com", "p1")
	require.NoError(t, err)

	require.True(t, svc.ValidLogin("a@x.com", "p1"))
	require.False(t, svc.ValidLogin("a@x.com", "wrong"))

	sessionID, ok := svc.CreateSession("a@x.com")
	require.True(t, ok)
	require.Len(t, sessionID, 36)

	got := svc.UserBySession(sessionID)
	require.NotNil(t, got)
	require.Equal(t, u.ID, got.ID)

	svc.DestroySession(u.ID)
	require.Nil(t, svc.UserBySession(sessionID))
}
