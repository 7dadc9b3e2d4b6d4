package vault

import (
	"sync"
	"weak"
)

// liveCache is the process-wide registry mapping canonical descriptors to
// live store instances. Entries are weak: the cache never keeps a store
// alive, and once a store's last external reference is dropped a later
// request for the same descriptor constructs a fresh instance.
//
// The mutex covers only lookup and insert. Constructors passed to
// findOrCreate must be limited to pure query derivation, never a backend
// call, so this lock cannot serialize unrelated I/O.
type liveCache[T any] struct {
	mu      sync.Mutex
	entries map[string]weak.Pointer[T]
}

func newLiveCache[T any]() *liveCache[T] {
	return &liveCache[T]{entries: make(map[string]weak.Pointer[T])}
}

// findOrCreate returns the live instance registered under descriptor,
// constructing and registering one if none exists. While at least one
// instance for a descriptor remains externally referenced, every concurrent
// call observes that same instance.
func (c *liveCache[T]) findOrCreate(descriptor string, construct func() *T) *T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.entries[descriptor]; ok {
		if v := p.Value(); v != nil {
			return v
		}
	}
	v := construct()
	c.entries[descriptor] = weak.Make(v)
	c.pruneLocked()
	return v
}

// pruneLocked drops entries whose store has been collected.
func (c *liveCache[T]) pruneLocked() {
	for k, p := range c.entries {
		if p.Value() == nil {
			delete(c.entries, k)
		}
	}
}

// Store and EnclaveStore are distinct types with distinct operation
// signatures, so each gets its own registry.
var (
	storeCache   = newLiveCache[Store]()
	enclaveCache = newLiveCache[EnclaveStore]()
)
