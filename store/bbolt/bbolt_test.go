package bbolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-dev/gatehouse/store"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStoreFromFile(filepath.Join(t.TempDir(), "gatehouse.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserLifecycle(t *testing.T) {
	s := openStore(t)

	u, err := s.CreateUser("a@x.com", []byte("hash"))
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = s.CreateUser("a@x.com", []byte("other"))
	assert.ErrorIs(t, err, store.ErrDuplicate)

	got, err := s.UserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, []byte("hash"), got.PasswordHash)

	_, err = s.UserByID("no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SetSessionID(u.ID, "sid-1"))
	got, err = s.UserBySessionID("sid-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, s.SetResetToken(u.ID, "tok-1"))
	got, err = s.UserByResetToken("tok-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, s.SetPasswordHash(u.ID, []byte("new-hash")))
	got, err = s.UserByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("new-hash"), got.PasswordHash)

	// Empty lookups never match users whose fields were cleared.
	require.NoError(t, s.SetSessionID(u.ID, ""))
	_, err = s.UserBySessionID("")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionRecords(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Insert(store.SessionRecord{SessionID: "sid-1", UserID: "u-1"}))

	got, err := s.Find("sid-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)

	_, err = s.Find("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Delete("sid-1"))
	assert.ErrorIs(t, s.Delete("sid-1"), store.ErrNotFound)
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gatehouse.db")

	s1, err := NewStoreFromFile(path, nil)
	require.NoError(t, err)
	u, err := s1.CreateUser("a@x.com", []byte("hash"))
	require.NoError(t, err)
	require.NoError(t, s1.Insert(store.SessionRecord{SessionID: "sid-1", UserID: u.ID}))
	require.NoError(t, s1.Close())

	s2, err := NewStoreFromFile(path, nil)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.UserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	rec, err := s2.Find("sid-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, rec.UserID)
}
