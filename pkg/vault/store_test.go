package vault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/vaultkit/pkg/keychain"
	"github.com/systmms/vaultkit/pkg/vault"
	"github.com/systmms/vaultkit/tests/fakes"
)

func newTestStore(t *testing.T, conn keychain.Conn, identifier string) *vault.Store {
	t.Helper()
	id, ok := vault.NewIdentifier(identifier)
	require.True(t, ok)
	return vault.NewWithConn(conn, id, vault.AccessibilityWhenUnlocked)
}

func TestSetObjectRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value []byte
	}{
		{name: "ascii", value: []byte("secret123")},
		{name: "binary", value: []byte{0x00, 0xff, 0x10, 0x00, 0x7f}},
		{name: "utf8", value: []byte("pässwörd ✓")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newTestStore(t, fakes.NewFakeConn(), "roundtrip")
			require.NoError(t, store.SetObject(tt.value, "key"))

			got, err := store.Object("key")
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSetObjectOverwrites(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, fakes.NewFakeConn(), "overwrite")
	require.NoError(t, store.SetString("first", "key"))
	require.NoError(t, store.SetString("second", "key"))

	got, err := store.String("key")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestSetObjectRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, fakes.NewFakeConn(), "empty-input")

	assert.ErrorIs(t, store.SetObject([]byte("v"), ""), vault.ErrEmptyKey)
	assert.ErrorIs(t, store.SetObject(nil, "key"), vault.ErrEmptyValue)
}

func TestObjectNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, fakes.NewFakeConn(), "missing")

	_, err := store.Object("nope")
	assert.ErrorIs(t, err, vault.ErrItemNotFound)

	_, ok := store.Lookup("nope")
	assert.False(t, ok)
}

func TestObjectInaccessibleVault(t *testing.T) {
	t.Parallel()

	conn := fakes.NewFakeConn()
	store := newTestStore(t, conn, "locked")
	require.NoError(t, store.SetString("v", "key"))

	conn.CopyStatus = keychain.StatusInteractionNotAllowed

	// Fallible shape surfaces the distinct failure; optional shape
	// collapses it to absence.
	_, err := store.Object("key")
	assert.ErrorIs(t, err, vault.ErrInteractionNotAllowed)
	_, ok := store.Lookup("key")
	assert.False(t, ok)
}

func TestObjectUnexpectedStatusCarriesRawCode(t *testing.T) {
	t.Parallel()

	conn := fakes.NewFakeConn()
	conn.CopyStatus = keychain.Status(-26275)
	store := newTestStore(t, conn, "weird-status")

	_, err := store.Object("key")
	var statusErr vault.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, keychain.Status(-26275), statusErr.Status)
}

func TestContains(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, fakes.NewFakeConn(), "contains")

	assert.False(t, store.Contains("key"))
	require.NoError(t, store.SetString("v", "key"))
	assert.True(t, store.Contains("key"))
	require.NoError(t, store.Remove("key"))
	assert.False(t, store.Contains("key"))
}

func TestRemoveAbsentKeyIsNoOp(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, fakes.NewFakeConn(), "remove-absent")
	require.NoError(t, store.SetString("v", "other"))

	assert.NoError(t, store.Remove("never-set"))

	// The rest of the namespace is untouched.
	got, err := store.String("other")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestRemoveAllLeavesOtherNamespacesUntouched(t *testing.T) {
	t.Parallel()

	conn := fakes.NewFakeConn()
	mine := newTestStore(t, conn, "mine")
	theirs := newTestStore(t, conn, "theirs")

	require.NoError(t, mine.SetString("a", "k1"))
	require.NoError(t, mine.SetString("b", "k2"))
	require.NoError(t, theirs.SetString("c", "k1"))

	require.NoError(t, mine.RemoveAll())

	keys, err := mine.AllKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	got, err := theirs.String("k1")
	require.NoError(t, err)
	assert.Equal(t, "c", got)
}

func TestRemoveAllOnEmptyNamespace(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, fakes.NewFakeConn(), "remove-all-empty")
	assert.NoError(t, store.RemoveAll())
}

func TestAllKeys(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, fakes.NewFakeConn(), "all-keys")

	keys, err := store.AllKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, store.SetString("1", "zebra"))
	require.NoError(t, store.SetString("2", "apple"))
	require.NoError(t, store.SetString("3", "mango"))

	keys, err = store.AllKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "mango", "zebra"}, keys)
}

func TestAllKeysOrEmptyCollapsesErrors(t *testing.T) {
	t.Parallel()

	conn := fakes.NewFakeConn()
	store := newTestStore(t, conn, "all-keys-or-empty")
	require.NoError(t, store.SetString("1", "apple"))

	assert.Equal(t, []string{"apple"}, store.AllKeysOrEmpty())

	conn.CopyStatus = keychain.StatusNotAvailable
	assert.Equal(t, []string{}, store.AllKeysOrEmpty())
}

func TestCanAccessVault(t *testing.T) {
	t.Parallel()

	t.Run("reachable", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t, fakes.NewFakeConn(), "canary-ok")
		assert.True(t, store.CanAccessVault())
		assert.True(t, store.CanAccessVault())

		// The canary is deleted after each probe and never leaks into key
		// enumeration.
		keys, err := store.AllKeys()
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		conn := fakes.NewFakeConn()
		conn.AddStatus = keychain.StatusInteractionNotAllowed
		conn.CopyStatus = keychain.StatusInteractionNotAllowed
		store := newTestStore(t, conn, "canary-bad")

		// Never surfaces an error, just false.
		assert.False(t, store.CanAccessVault())
	})

	t.Run("write_broken_after_success", func(t *testing.T) {
		t.Parallel()

		conn := fakes.NewFakeConn()
		store := newTestStore(t, conn, "canary-write-broken")
		require.True(t, store.CanAccessVault())

		// A vault that stops accepting writes must stop reporting reachable,
		// no matter what earlier probes saw.
		conn.AddStatus = keychain.StatusNotAvailable
		conn.UpdateStatus = keychain.StatusNotAvailable
		assert.False(t, store.CanAccessVault())
	})
}

func TestStringLookupConveniences(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, fakes.NewFakeConn(), "string-surface")
	require.NoError(t, store.SetString("abc123", "token"))

	got, ok := store.LookupString("token")
	assert.True(t, ok)
	assert.Equal(t, "abc123", got)

	_, ok = store.LookupString("absent")
	assert.False(t, ok)
}
