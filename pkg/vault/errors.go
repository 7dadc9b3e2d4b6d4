package vault

import (
	"errors"
	"fmt"

	"github.com/systmms/vaultkit/pkg/keychain"
)

// Sentinel errors returned by store operations. Classify with errors.Is.
var (
	// ErrItemNotFound reports that no item exists for the given key.
	ErrItemNotFound = errors.New("vault: item not found")

	// ErrDuplicateItem reports that the backend matched more than one item
	// for an operation expecting at most one.
	ErrDuplicateItem = errors.New("vault: duplicate item")

	// ErrInteractionNotAllowed reports that the vault cannot be read in the
	// current device state, for example while locked or without a passcode
	// set for a protected store. Callers may want to prompt the user to
	// unlock rather than treat the item as absent.
	ErrInteractionNotAllowed = errors.New("vault: interaction not allowed")

	// ErrUserCancelled reports that the user dismissed the presence prompt
	// of an enclave-protected read.
	ErrUserCancelled = errors.New("vault: user cancelled")

	// ErrMissingEntitlement reports that the process lacks the entitlement
	// for the requested namespace, typically a shared access group it is
	// not a member of.
	ErrMissingEntitlement = errors.New("vault: missing entitlement")

	// ErrEmptyKey reports a write or read with an empty key.
	ErrEmptyKey = errors.New("vault: empty key")

	// ErrEmptyValue reports a write with an empty value.
	ErrEmptyValue = errors.New("vault: empty value")
)

// StatusError carries a backend status this layer assigns no meaning to.
type StatusError struct {
	Status keychain.Status
}

func (e StatusError) Error() string {
	return fmt.Sprintf("vault: unexpected backend status %d (%s)", int32(e.Status), e.Status)
}

// statusError translates a backend status into the package error taxonomy.
// Returns nil for success.
func statusError(st keychain.Status) error {
	switch st {
	case keychain.StatusSuccess:
		return nil
	case keychain.StatusItemNotFound:
		return ErrItemNotFound
	case keychain.StatusDuplicateItem:
		return ErrDuplicateItem
	case keychain.StatusInteractionNotAllowed:
		return ErrInteractionNotAllowed
	case keychain.StatusUserCanceled:
		return ErrUserCancelled
	case keychain.StatusMissingEntitlement:
		return ErrMissingEntitlement
	default:
		return StatusError{Status: st}
	}
}

// Migration failures. ErrMigrationRemovalFailed is special: it is reported
// only after every item has been written to the destination, so the data
// exists in both places rather than being lost.
var (
	ErrMigrationInvalidQuery  = errors.New("vault: migration query invalid")
	ErrMigrationInvalidKey    = errors.New("vault: migration result has invalid key")
	ErrMigrationInvalidData   = errors.New("vault: migration result has invalid data")
	ErrMigrationDuplicateKey  = errors.New("vault: migration result has duplicate keys")
	ErrMigrationKeyExists     = errors.New("vault: migration key already exists in destination")
	ErrMigrationRemovalFailed = errors.New("vault: migration succeeded but removal from source failed")
)
