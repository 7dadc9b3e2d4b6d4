// Package fakes provides hand-written test doubles for vaultkit's backend
// contracts.
package fakes

import (
	"sync"

	"github.com/systmms/vaultkit/pkg/keychain"
)

// identifying attributes considered when matching a query against stored
// entries. Everything else on a query is a directive, not a predicate.
var matchAttrs = []string{
	keychain.AttrClass,
	keychain.AttrService,
	keychain.AttrAccessGroup,
	keychain.AttrAccessible,
	keychain.AttrSynchronizable,
	keychain.AttrAccessControl,
	keychain.UseDataProtection,
}

// attributes copied from an Add query onto the stored entry.
var storedAttrs = matchAttrs

type fakeEntry struct {
	attrs   keychain.Query
	account string
	data    []byte
}

// FakeConn is an in-memory test double for keychain.Conn. It stores entries
// with their full attribute sets and matches queries the way the platform
// store does, including duplicate-item detection, presence enforcement for
// access-controlled reads, and a legacy storage location for
// pre-data-protection items.
type FakeConn struct {
	mu      sync.Mutex
	entries []*fakeEntry
	adds    int

	// Forced statuses. A non-zero value is returned unconditionally by the
	// corresponding primitive.
	CopyStatus   keychain.Status
	AddStatus    keychain.Status
	UpdateStatus keychain.Status
	DeleteStatus keychain.Status

	// AddFailOn, when positive, fails the Nth Add call (1-based, counted
	// from the moment the field is set) with StatusNotAvailable. Used to
	// break a migration write phase partway.
	AddFailOn int

	// CancelPrompts simulates the user dismissing every presence prompt.
	CancelPrompts bool
}

// NewFakeConn creates an empty fake backend.
func NewFakeConn() *FakeConn {
	return &FakeConn{}
}

// Seed inserts an entry directly, bypassing duplicate detection. Tests use
// it to craft legacy items or result sets the normal write path could never
// produce, such as duplicate accounts differing only in untracked attributes.
func (f *FakeConn) Seed(attrs keychain.Query, account string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, &fakeEntry{
		attrs:   keychain.Clone(attrs),
		account: account,
		data:    append([]byte(nil), data...),
	})
}

// Len returns the number of stored entries.
func (f *FakeConn) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *FakeConn) CopyMatching(q keychain.Query) (keychain.Status, []keychain.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CopyStatus != 0 {
		return f.CopyStatus, nil
	}

	matched := f.match(q)
	if len(matched) == 0 {
		return keychain.StatusItemNotFound, nil
	}

	withData := q[keychain.ReturnData] == true
	if withData {
		// Data reads of access-controlled items require presence.
		for _, e := range matched {
			if _, protected := e.attrs[keychain.AttrAccessControl]; !protected {
				continue
			}
			if _, prompted := q[keychain.UseOperationPrompt]; !prompted {
				return keychain.StatusInteractionNotAllowed, nil
			}
			if f.CancelPrompts {
				return keychain.StatusUserCanceled, nil
			}
		}
	}

	limit := len(matched)
	if q[keychain.MatchLimit] == keychain.MatchLimitOne {
		limit = 1
	}
	items := make([]keychain.Item, 0, limit)
	for _, e := range matched[:limit] {
		item := keychain.Item{Account: e.account}
		if withData {
			item.Data = append([]byte(nil), e.data...)
		}
		items = append(items, item)
	}
	return keychain.StatusSuccess, items
}

func (f *FakeConn) Add(q keychain.Query) keychain.Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.AddStatus != 0 {
		return f.AddStatus
	}
	if f.AddFailOn > 0 {
		f.adds++
		if f.adds == f.AddFailOn {
			return keychain.StatusNotAvailable
		}
	}

	account, _ := q[keychain.AttrAccount].(string)
	data, _ := q[keychain.ValueData].([]byte)
	if account == "" || data == nil {
		return keychain.StatusParam
	}
	for _, e := range f.entries {
		if e.account == account && sameItemIdentity(e.attrs, q) {
			return keychain.StatusDuplicateItem
		}
	}

	attrs := keychain.Query{}
	for _, k := range storedAttrs {
		if v, present := q[k]; present {
			attrs[k] = v
		}
	}
	f.entries = append(f.entries, &fakeEntry{
		attrs:   attrs,
		account: account,
		data:    append([]byte(nil), data...),
	})
	return keychain.StatusSuccess
}

func (f *FakeConn) Update(q keychain.Query, attrs keychain.Query) keychain.Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.UpdateStatus != 0 {
		return f.UpdateStatus
	}
	data, ok := attrs[keychain.ValueData].([]byte)
	if !ok {
		return keychain.StatusParam
	}
	matched := f.match(q)
	if len(matched) == 0 {
		return keychain.StatusItemNotFound
	}
	for _, e := range matched {
		e.data = append([]byte(nil), data...)
	}
	return keychain.StatusSuccess
}

func (f *FakeConn) DeleteMatching(q keychain.Query) keychain.Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DeleteStatus != 0 {
		return f.DeleteStatus
	}
	kept := f.entries[:0]
	deleted := 0
	for _, e := range f.entries {
		if f.entryMatches(e, q) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	if deleted == 0 {
		return keychain.StatusItemNotFound
	}
	return keychain.StatusSuccess
}

func (f *FakeConn) match(q keychain.Query) []*fakeEntry {
	var out []*fakeEntry
	for _, e := range f.entries {
		if f.entryMatches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func (f *FakeConn) entryMatches(e *fakeEntry, q keychain.Query) bool {
	if account, present := q[keychain.AttrAccount]; present && account != e.account {
		return false
	}
	for _, k := range matchAttrs {
		want, present := q[k]
		if !present {
			continue
		}
		if k == keychain.UseDataProtection {
			// false targets the legacy location: items never written with
			// the flag. true matches only flagged items.
			inCurrent := e.attrs[keychain.UseDataProtection] == true
			if want == true && !inCurrent {
				return false
			}
			if want == false && inCurrent {
				return false
			}
			continue
		}
		if got, stored := e.attrs[k]; !stored || got != want {
			return false
		}
	}
	return true
}

// sameItemIdentity reports whether an existing entry and an Add query name
// the same item for duplicate detection: class, service, access group and
// synchronizable state.
func sameItemIdentity(stored, q keychain.Query) bool {
	for _, k := range []string{
		keychain.AttrClass,
		keychain.AttrService,
		keychain.AttrAccessGroup,
		keychain.AttrSynchronizable,
	} {
		if stored[k] != q[k] {
			return false
		}
	}
	return true
}

var _ keychain.Conn = (*FakeConn)(nil)
