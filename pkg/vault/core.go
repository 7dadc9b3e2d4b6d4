package vault

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/systmms/vaultkit/pkg/keychain"
)

// core carries the state and backend plumbing shared by Store and
// EnclaveStore: the service derivation, the memoized base query, the
// per-instance lock, and the primitive operations expressed over them.
//
// Locking discipline: every public operation holds mu for its full duration,
// backend call included, so a store has at most one in-flight backend call at
// a time. The *Locked methods assume mu is held.
type core struct {
	identifier Identifier
	config     Configuration
	service    Service

	conn keychain.Conn
	mu   sync.Mutex

	// baseQuery memoizes Service.BaseQuery. The derivation is pure, so two
	// goroutines racing to fill the cell may both compute the identical
	// value; that duplicate work is harmless. The first publish wins and the
	// cell never changes afterward, so no operation ever observes two
	// different base queries from the same store.
	baseQuery atomic.Pointer[keychain.Query]
}

func newCore(id Identifier, config Configuration, service Service, conn keychain.Conn) core {
	return core{identifier: id, config: config, service: service, conn: conn}
}

// base returns the frozen base query, computing it on first use.
func (c *core) base() keychain.Query {
	if q := c.baseQuery.Load(); q != nil {
		return *q
	}
	q := c.service.BaseQuery()
	c.baseQuery.CompareAndSwap(nil, &q)
	return *c.baseQuery.Load()
}

// query copies the base query and merges in per-operation attributes.
func (c *core) query(extra keychain.Query) keychain.Query {
	q := keychain.Clone(c.base())
	for k, v := range extra {
		q[k] = v
	}
	return q
}

func (c *core) setObjectLocked(value []byte, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if len(value) == 0 {
		return ErrEmptyValue
	}
	st := c.conn.Add(c.query(keychain.Query{
		keychain.AttrAccount: key,
		keychain.ValueData:   value,
	}))
	if st == keychain.StatusDuplicateItem {
		st = c.conn.Update(
			c.query(keychain.Query{keychain.AttrAccount: key}),
			keychain.Query{keychain.ValueData: value},
		)
	}
	return statusError(st)
}

// objectLocked reads one item's data. A non-empty prompt is attached for
// access-controlled reads so the backend can collect user presence.
func (c *core) objectLocked(key, prompt string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	q := c.query(keychain.Query{
		keychain.AttrAccount: key,
		keychain.MatchLimit:  keychain.MatchLimitOne,
		keychain.ReturnData:  true,
	})
	if prompt != "" {
		q[keychain.UseOperationPrompt] = prompt
	}
	st, items := c.conn.CopyMatching(q)
	if err := statusError(st); err != nil {
		return nil, err
	}
	if len(items) == 0 || len(items[0].Data) == 0 {
		return nil, ErrItemNotFound
	}
	return items[0].Data, nil
}

// containsLocked checks existence with a metadata-only query. No item data
// is requested, so access-controlled stores never prompt here.
func (c *core) containsLocked(key string) bool {
	if key == "" {
		return false
	}
	st, _ := c.conn.CopyMatching(c.query(keychain.Query{
		keychain.AttrAccount:      key,
		keychain.MatchLimit:       keychain.MatchLimitOne,
		keychain.ReturnAttributes: true,
	}))
	return st == keychain.StatusSuccess
}

// removeLocked deletes one key. An absent key is a successful no-op.
func (c *core) removeLocked(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	st := c.conn.DeleteMatching(c.query(keychain.Query{keychain.AttrAccount: key}))
	if st == keychain.StatusItemNotFound {
		return nil
	}
	return statusError(st)
}

// removeAllLocked deletes every item matching the base query, leaving other
// namespaces untouched.
func (c *core) removeAllLocked() error {
	st := c.conn.DeleteMatching(c.base())
	if st == keychain.StatusItemNotFound {
		return nil
	}
	return statusError(st)
}

// allKeysLocked enumerates the namespace with a metadata-only query. An
// empty namespace yields an empty slice, not an error.
func (c *core) allKeysLocked() ([]string, error) {
	st, items := c.conn.CopyMatching(c.query(keychain.Query{
		keychain.MatchLimit:       keychain.MatchLimitAll,
		keychain.ReturnAttributes: true,
	}))
	if st == keychain.StatusItemNotFound {
		return nil, nil
	}
	if err := statusError(st); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(items))
	keys := make([]string, 0, len(items))
	for _, item := range items {
		if item.Account == "" || item.Account == canaryKey {
			continue
		}
		if _, dup := seen[item.Account]; dup {
			continue
		}
		seen[item.Account] = struct{}{}
		keys = append(keys, item.Account)
	}
	sort.Strings(keys)
	return keys, nil
}
