package vault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/vaultkit/pkg/vault"
	"github.com/systmms/vaultkit/tests/fakes"
)

func newTestEnclave(t *testing.T, conn *fakes.FakeConn) *vault.EnclaveStore {
	t.Helper()
	id, ok := vault.NewIdentifier("enclave-test")
	require.True(t, ok)
	return vault.NewEnclaveWithConn(conn, id, vault.EnclaveAccessControlUserPresence)
}

func TestEnclaveReadWithPresence(t *testing.T) {
	t.Parallel()

	store := newTestEnclave(t, fakes.NewFakeConn())
	require.NoError(t, store.SetString("abc123", "token"))

	res := store.ReadObject("token", "Unlock to view your token")
	require.Equal(t, vault.ReadSuccess, res.Outcome)
	assert.Equal(t, []byte("abc123"), res.Value)
	assert.NoError(t, res.Err)
}

func TestEnclaveReadUserCancelled(t *testing.T) {
	t.Parallel()

	conn := fakes.NewFakeConn()
	store := newTestEnclave(t, conn)
	require.NoError(t, store.SetString("abc123", "token"))

	conn.CancelPrompts = true

	// Dismissing the prompt is its own outcome: not an error, not absence.
	res := store.ReadObject("token", "Unlock")
	assert.Equal(t, vault.ReadUserCancelled, res.Outcome)
	assert.Nil(t, res.Value)
	assert.ErrorIs(t, res.Err, vault.ErrUserCancelled)

	_, err := store.Object("token", "Unlock")
	assert.ErrorIs(t, err, vault.ErrUserCancelled)
}

func TestEnclaveReadMissingKeyIsError(t *testing.T) {
	t.Parallel()

	store := newTestEnclave(t, fakes.NewFakeConn())

	res := store.ReadObject("absent", "Unlock")
	assert.Equal(t, vault.ReadError, res.Outcome)
	assert.ErrorIs(t, res.Err, vault.ErrItemNotFound)
}

func TestEnclaveContainsNeverPrompts(t *testing.T) {
	t.Parallel()

	conn := fakes.NewFakeConn()
	store := newTestEnclave(t, conn)
	require.NoError(t, store.SetString("abc123", "token"))

	// Even with every prompt being dismissed, the metadata-only existence
	// check goes through.
	conn.CancelPrompts = true
	assert.True(t, store.Contains("token"))
	assert.False(t, store.Contains("absent"))
}

func TestEnclaveWritesAndRemovalNeverPrompt(t *testing.T) {
	t.Parallel()

	conn := fakes.NewFakeConn()
	store := newTestEnclave(t, conn)
	conn.CancelPrompts = true

	require.NoError(t, store.SetString("v1", "token"))
	require.NoError(t, store.SetString("v2", "token")) // overwrite
	require.NoError(t, store.Remove("token"))
	require.NoError(t, store.RemoveAll())
}
