package vault

import (
	"fmt"

	"github.com/systmms/vaultkit/internal/secure"
	"github.com/systmms/vaultkit/pkg/keychain"
)

// Attributes a migration source query may not carry: the engine owns match
// limits and return directives, and a prompt would turn a bulk read into a
// presence check.
var forbiddenMigrationAttrs = []string{
	keychain.MatchLimit,
	keychain.ReturnData,
	keychain.ReturnAttributes,
	keychain.UseOperationPrompt,
	keychain.ValueData,
}

type migrationPair struct {
	key    string
	staged *secure.Buffer
}

// Migrate copies every entry matching query into this store's namespace and,
// when removeOnCompletion is set, deletes the originals afterward.
//
// The vault is left unmodified unless the whole operation succeeds: a failed
// read aborts before anything is written, conflicts (duplicate keys in the
// result, keys already present here) abort before anything is written, and a
// failure partway through the write phase rolls back every key written so
// far. Only removal failures leave a changed vault, reported distinctly as
// ErrMigrationRemovalFailed, since the data then exists in both places.
func (s *Store) Migrate(query keychain.Query, removeOnCompletion bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.migrateLocked(query, removeOnCompletion, false)
}

// MigrateFrom copies every entry of other's namespace into this store,
// optionally removing them from other. The source store's lock is not taken;
// its base query is a pure derivation.
func (s *Store) MigrateFrom(other *Store, removeOnCompletion bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.migrateLocked(other.service.BaseQuery(), removeOnCompletion, false)
}

// MigrateFromLegacyAccessibility locates entries written by a pre-redesign
// release for this store's identifier and sharing scope (stored under the
// retired always-readable policy literal) and moves them into the current
// format.
func (s *Store) MigrateFromLegacyAccessibility(removeOnCompletion bool) error {
	legacy, ok := s.service.withLegacyAccessibility()
	if !ok {
		return ErrMigrationInvalidQuery
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.migrateLocked(legacy.BaseQuery(), removeOnCompletion, false)
}

// MigratePreDataProtection rewrites entries stored before the
// data-protection keychain policy change into the current protection format,
// in place and without removal. Existing keys are overwritten with their own
// values, so a partial failure here is retryable rather than rolled back.
func (s *Store) MigratePreDataProtection() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := keychain.Clone(s.base())
	source[keychain.UseDataProtection] = false
	return s.migrateLocked(source, false, true)
}

func (s *Store) migrateLocked(source keychain.Query, removeOnCompletion, overwriteInPlace bool) error {
	if len(source) == 0 {
		return ErrMigrationInvalidQuery
	}
	for _, attr := range forbiddenMigrationAttrs {
		if _, present := source[attr]; present {
			return ErrMigrationInvalidQuery
		}
	}

	// Read phase. A backend failure aborts with nothing written; an empty
	// result set is a successful no-op.
	read := keychain.Clone(source)
	read[keychain.MatchLimit] = keychain.MatchLimitAll
	read[keychain.ReturnAttributes] = true
	read[keychain.ReturnData] = true

	st, items := s.conn.CopyMatching(read)
	if st == keychain.StatusItemNotFound {
		return nil
	}
	if err := statusError(st); err != nil {
		return fmt.Errorf("vault: migration read phase: %w", err)
	}

	// Conflict check. Entries the engine cannot move faithfully abort the
	// whole operation rather than guessing.
	seen := make(map[string]struct{}, len(items))
	pairs := make([]migrationPair, 0, len(items))
	defer func() {
		for _, p := range pairs {
			p.staged.Destroy()
		}
	}()
	for _, item := range items {
		if item.Account == canaryKey {
			continue // reachability canary, never migrated
		}
		if item.Account == "" {
			return ErrMigrationInvalidKey
		}
		if len(item.Data) == 0 {
			return ErrMigrationInvalidData
		}
		if _, dup := seen[item.Account]; dup {
			return fmt.Errorf("%w: %q", ErrMigrationDuplicateKey, item.Account)
		}
		seen[item.Account] = struct{}{}
		if !overwriteInPlace && s.containsLocked(item.Account) {
			return fmt.Errorf("%w: %q", ErrMigrationKeyExists, item.Account)
		}
		pairs = append(pairs, migrationPair{key: item.Account, staged: secure.NewBuffer(item.Data)})
	}
	if len(pairs) == 0 {
		return nil
	}

	// Write phase. Destination keys are known absent (checked above), so
	// rollback is deletion of exactly the keys written before the failure,
	// restoring the destination byte for byte.
	written := make([]string, 0, len(pairs))
	for _, p := range pairs {
		data, err := p.staged.Bytes()
		if err == nil {
			err = s.setObjectLocked(data, p.key)
		}
		if err != nil {
			if !overwriteInPlace {
				for _, key := range written {
					_ = s.removeLocked(key)
				}
			}
			return fmt.Errorf("vault: migration write phase for %q: %w", p.key, err)
		}
		written = append(written, p.key)
	}

	// Removal phase, only after every write succeeded.
	if removeOnCompletion {
		st := s.conn.DeleteMatching(keychain.Clone(source))
		if st != keychain.StatusSuccess && st != keychain.StatusItemNotFound {
			return fmt.Errorf("%w: %v", ErrMigrationRemovalFailed, statusError(st))
		}
	}
	return nil
}
