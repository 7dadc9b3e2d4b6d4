package vault

import (
	"errors"

	"github.com/systmms/vaultkit/pkg/keychain"
)

// ReadOutcome classifies the result of an enclave-protected read.
type ReadOutcome int

const (
	// ReadSuccess means the value was retrieved.
	ReadSuccess ReadOutcome = iota

	// ReadUserCancelled means the user dismissed the presence prompt. This
	// is a "try again" signal, never folded into ReadError.
	ReadUserCancelled

	// ReadError means the read failed for any other reason; inspect Err.
	ReadError
)

// ReadResult is the three-way outcome of an enclave-protected read.
type ReadResult struct {
	Outcome ReadOutcome
	Value   []byte
	Err     error
}

// EnclaveStore is a store whose items are bound to a hardware-backed key.
// Every read requires a caller-supplied prompt and blocks, possibly
// indefinitely, until the backend has collected presence confirmation
// (biometric or passcode); no timeout is imposed here. Writes and existence
// checks never prompt.
type EnclaveStore struct {
	core
}

// NewEnclave returns the enclave-protected store for identifier with the
// given presence requirement.
func NewEnclave(id Identifier, control EnclaveAccessControl) *EnclaveStore {
	return findOrCreateEnclave(standardService(id, EnclaveConfiguration(control)), defaultConn())
}

// NewSharedGroupEnclave returns the enclave-protected store shared across an
// app group.
func NewSharedGroupEnclave(group SharedGroupIdentifier, control EnclaveAccessControl) *EnclaveStore {
	return findOrCreateEnclave(sharedGroupService(group, EnclaveConfiguration(control)), defaultConn())
}

// NewEnclaveWithConn builds an enclave store on an explicit backend.
// Intended for tests; not registered for instance deduplication.
func NewEnclaveWithConn(conn keychain.Conn, id Identifier, control EnclaveAccessControl) *EnclaveStore {
	svc := standardService(id, EnclaveConfiguration(control))
	return &EnclaveStore{core: newCore(id, EnclaveConfiguration(control), svc, conn)}
}

func findOrCreateEnclave(svc Service, conn keychain.Conn) *EnclaveStore {
	return enclaveCache.findOrCreate(svc.Descriptor(), func() *EnclaveStore {
		return &EnclaveStore{core: newCore(svc.identifier, svc.config, svc, conn)}
	})
}

// Identifier returns the identifier the store was created with.
func (s *EnclaveStore) Identifier() Identifier {
	return s.identifier
}

// Descriptor returns the canonical descriptor identifying this store's
// namespace configuration.
func (s *EnclaveStore) Descriptor() string {
	return s.service.Descriptor()
}

// Object returns the value stored under key, showing prompt while the
// backend collects presence confirmation. A dismissed prompt returns
// ErrUserCancelled; classify with errors.Is or use ReadObject for the
// three-way outcome.
func (s *EnclaveStore) Object(key, prompt string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objectLocked(key, prompt)
}

// ReadObject is the outcome-shaped surface over Object: success, user
// cancellation, and every other failure are reported as distinct outcomes.
func (s *EnclaveStore) ReadObject(key, prompt string) ReadResult {
	value, err := s.Object(key, prompt)
	switch {
	case err == nil:
		return ReadResult{Outcome: ReadSuccess, Value: value}
	case errors.Is(err, ErrUserCancelled):
		return ReadResult{Outcome: ReadUserCancelled, Err: err}
	default:
		return ReadResult{Outcome: ReadError, Err: err}
	}
}

// String reads the value under key as a string, prompting for presence.
func (s *EnclaveStore) String(key, prompt string) (string, error) {
	data, err := s.Object(key, prompt)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetObject writes value under key. Writing never prompts.
func (s *EnclaveStore) SetObject(value []byte, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setObjectLocked(value, key)
}

// SetString writes value's byte encoding under key.
func (s *EnclaveStore) SetString(value, key string) error {
	return s.SetObject([]byte(value), key)
}

// Contains reports whether a value exists for key. Existence is determined
// by a metadata-only query, so no presence prompt is shown.
func (s *EnclaveStore) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(key)
}

// Remove deletes the value for key. Removing an absent key is a successful
// no-op; removal never prompts.
func (s *EnclaveStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(key)
}

// RemoveAll deletes every entry in this store's namespace without prompting.
func (s *EnclaveStore) RemoveAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeAllLocked()
}
