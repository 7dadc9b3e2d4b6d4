package vault

import (
	"bytes"
	"sync"

	"github.com/systmms/vaultkit/pkg/keychain"
)

// canaryKey is the reserved key CanAccessVault round-trips through. It is
// filtered from key enumeration and must never be handed out to callers.
const (
	canaryKey   = "io.vaultkit.canary"
	canaryValue = "vaultkit-reachability-canary"
)

// defaultConn is the production backend: the OS credential store with
// Prometheus instrumentation in front of it.
var defaultConn = sync.OnceValue(func() keychain.Conn {
	return keychain.Instrument(keychain.NewKeyringConn())
})

// Store reads and writes secrets within one vault namespace. Obtain
// instances through the constructors; all operations are synchronous,
// blocking, and mutually exclusive per instance.
type Store struct {
	core
}

// New returns the store for identifier under the given accessibility policy,
// private to this application.
func New(id Identifier, a Accessibility) *Store {
	return findOrCreateStore(standardService(id, StandardConfiguration(a)), defaultConn())
}

// NewCloud returns the cloud-synchronized store for identifier.
func NewCloud(id Identifier, a CloudAccessibility) *Store {
	return findOrCreateStore(standardService(id, CloudConfiguration(a)), defaultConn())
}

// NewSharedGroup returns the store shared across the applications of the
// given app group.
func NewSharedGroup(group SharedGroupIdentifier, a Accessibility) *Store {
	return findOrCreateStore(sharedGroupService(group, StandardConfiguration(a)), defaultConn())
}

// NewSharedGroupCloud returns the cloud-synchronized store for an app group.
func NewSharedGroupCloud(group SharedGroupIdentifier, a CloudAccessibility) *Store {
	return findOrCreateStore(sharedGroupService(group, CloudConfiguration(a)), defaultConn())
}

// NewOverride returns a store whose namespace attribute is the raw
// identifier verbatim, bypassing the generated namespace tag. The caller
// accepts the risk of colliding with another store's data and must guarantee
// global uniqueness of the identifier themselves.
func NewOverride(id Identifier, a Accessibility) *Store {
	return findOrCreateStore(standardOverrideService(id, StandardConfiguration(a)), defaultConn())
}

// NewSharedGroupOverride is NewOverride within an app group's sharing scope.
func NewSharedGroupOverride(group SharedGroupIdentifier, id Identifier, a Accessibility) *Store {
	return findOrCreateStore(sharedGroupOverrideService(group, id, StandardConfiguration(a)), defaultConn())
}

// NewWithConn builds a store for identifier on an explicit backend. Intended
// for tests and alternate backends; stores built this way are not registered
// for instance deduplication.
func NewWithConn(conn keychain.Conn, id Identifier, a Accessibility) *Store {
	svc := standardService(id, StandardConfiguration(a))
	return &Store{core: newCore(id, StandardConfiguration(a), svc, conn)}
}

// NewCloudWithConn is NewCloud on an explicit backend.
func NewCloudWithConn(conn keychain.Conn, id Identifier, a CloudAccessibility) *Store {
	svc := standardService(id, CloudConfiguration(a))
	return &Store{core: newCore(id, CloudConfiguration(a), svc, conn)}
}

// NewSharedGroupWithConn is NewSharedGroup on an explicit backend.
func NewSharedGroupWithConn(conn keychain.Conn, group SharedGroupIdentifier, a Accessibility) *Store {
	svc := sharedGroupService(group, StandardConfiguration(a))
	return &Store{core: newCore(group.Identifier(), StandardConfiguration(a), svc, conn)}
}

func findOrCreateStore(svc Service, conn keychain.Conn) *Store {
	return storeCache.findOrCreate(svc.Descriptor(), func() *Store {
		return &Store{core: newCore(svc.identifier, svc.config, svc, conn)}
	})
}

// Identifier returns the identifier the store was created with.
func (s *Store) Identifier() Identifier {
	return s.identifier
}

// Descriptor returns the canonical descriptor identifying this store's
// namespace configuration. Two stores are interchangeable iff their
// descriptors match.
func (s *Store) Descriptor() string {
	return s.service.Descriptor()
}

// CanAccessVault reports whether the vault is reachable in the current
// device state. Every call writes the canary, reads it back, and deletes it
// again, so a vault that stops accepting writes stops reporting reachable.
// It never surfaces an error; any failure reads as false.
func (s *Store) CanAccessVault() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setObjectLocked([]byte(canaryValue), canaryKey); err != nil {
		return false
	}
	data, err := s.objectLocked(canaryKey, "")
	if err != nil || !bytes.Equal(data, []byte(canaryValue)) {
		return false
	}
	return s.removeLocked(canaryKey) == nil
}

// SetObject writes value under key, overwriting any existing value.
func (s *Store) SetObject(value []byte, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setObjectLocked(value, key)
}

// Object returns the value stored under key. Returns ErrItemNotFound when no
// value exists; see the package error taxonomy for other failure kinds.
func (s *Store) Object(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objectLocked(key, "")
}

// Lookup is the optional-shape convenience over Object: "not found" and
// "inaccessible" both collapse to ok=false.
func (s *Store) Lookup(key string) ([]byte, bool) {
	data, err := s.Object(key)
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetString writes value's byte encoding under key.
func (s *Store) SetString(value, key string) error {
	return s.SetObject([]byte(value), key)
}

// String returns the value stored under key, decoded symmetrically with
// SetString.
func (s *Store) String(key string) (string, error) {
	data, err := s.Object(key)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LookupString is the optional-shape convenience over String.
func (s *Store) LookupString(key string) (string, bool) {
	data, ok := s.Lookup(key)
	if !ok {
		return "", false
	}
	return string(data), true
}

// Contains reports whether a value exists for key. The check is
// metadata-only and never prompts for user presence.
func (s *Store) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(key)
}

// Remove deletes the value for key. Removing an absent key is a successful
// no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(key)
}

// RemoveAll deletes every entry in this store's namespace. Other namespaces
// are untouched.
func (s *Store) RemoveAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeAllLocked()
}

// AllKeys returns every key currently stored in this namespace, sorted. An
// empty namespace yields an empty slice.
func (s *Store) AllKeys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allKeysLocked()
}

// AllKeysOrEmpty is AllKeys collapsing any failure to an empty slice.
func (s *Store) AllKeysOrEmpty() []string {
	keys, err := s.AllKeys()
	if err != nil {
		return []string{}
	}
	return keys
}
