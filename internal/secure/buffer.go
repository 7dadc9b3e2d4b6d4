// Package secure provides memory-safe staging for secret values that are
// held in this process between vault operations, such as migration batches
// read from a source namespace before they are written to the destination.
package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Buffer holds one secret value encrypted at rest in memory. It wraps
// memguard.Enclave, which encrypts the bytes and mlocks the backing pages so
// staged secrets never hit swap in plaintext.
type Buffer struct {
	enclave *memguard.Enclave
	mu      sync.Mutex
	// destroyed allows idempotent Destroy and blocks use-after-destroy.
	destroyed bool
}

// NewBuffer moves data into a protected memory region. The input slice is
// wiped as part of the move; callers must not rely on it afterward.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{enclave: memguard.NewEnclave(data)}
}

// Bytes decrypts the buffer and returns an independent copy of its contents.
// Returns nil after Destroy.
func (b *Buffer) Bytes() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return nil, nil
	}
	locked, err := b.enclave.Open()
	if err != nil {
		return nil, err
	}
	defer locked.Destroy()

	out := make([]byte, len(locked.Bytes()))
	copy(out, locked.Bytes())
	return out, nil
}

// Destroy drops the enclave reference. Idempotent. The encrypted backing data
// is safe to leave for collection; callers wanting a hard wipe of all
// memguard state should defer memguard.Purge() in main.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.enclave = nil
	b.destroyed = true
}
