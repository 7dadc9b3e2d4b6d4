package keychain

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"github.com/zalando/go-keyring"
)

// indexAccount is the reserved account under which KeyringConn tracks the
// accounts present in a namespace. The portable credential stores behind
// go-keyring cannot enumerate, so the adapter maintains its own index.
const indexAccount = "io.vaultkit.index"

// KeyringConn implements Conn on top of the portable OS credential store
// (macOS Keychain, Linux Secret Service, Windows Credential Manager) via
// go-keyring.
//
// The portable API is (service, account) addressed and stores strings only,
// so the adapter folds the access group into the service key, base64-encodes
// item data, and ignores attributes the store cannot represent (the namespace
// string already embeds the configuration, so distinct configurations never
// share a service key). Queries targeting the pre-data-protection location
// match nothing here: the portable store has no such location.
type KeyringConn struct {
	mu sync.Mutex
}

// NewKeyringConn returns a Conn backed by the OS credential store.
func NewKeyringConn() *KeyringConn {
	return &KeyringConn{}
}

func (c *KeyringConn) CopyMatching(q Query) (Status, []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	service, ok := serviceKey(q)
	if !ok {
		return StatusParam, nil
	}
	if legacyLocation(q) {
		return StatusItemNotFound, nil
	}
	withData := q[ReturnData] == true

	if account, ok := q[AttrAccount].(string); ok {
		item, st := c.fetch(service, account, withData)
		if st != StatusSuccess {
			return st, nil
		}
		return StatusSuccess, []Item{item}
	}

	accounts, err := c.readIndex(service)
	if err != nil {
		return statusForKeyringErr(err), nil
	}
	items := make([]Item, 0, len(accounts))
	for _, account := range accounts {
		item, st := c.fetch(service, account, withData)
		if st == StatusItemNotFound {
			continue // index drift; treat the entry as gone
		}
		if st != StatusSuccess {
			return st, nil
		}
		items = append(items, item)
		if q[MatchLimit] == MatchLimitOne {
			break
		}
	}
	if len(items) == 0 {
		return StatusItemNotFound, nil
	}
	return StatusSuccess, items
}

func (c *KeyringConn) Add(q Query) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	service, ok := serviceKey(q)
	if !ok {
		return StatusParam
	}
	account, ok := q[AttrAccount].(string)
	if !ok || account == "" || account == indexAccount {
		return StatusParam
	}
	data, ok := q[ValueData].([]byte)
	if !ok {
		return StatusParam
	}
	if _, err := keyring.Get(service, account); err == nil {
		return StatusDuplicateItem
	} else if !errors.Is(err, keyring.ErrNotFound) {
		return statusForKeyringErr(err)
	}
	if err := keyring.Set(service, account, base64.StdEncoding.EncodeToString(data)); err != nil {
		return statusForKeyringErr(err)
	}
	if err := c.indexAdd(service, account); err != nil {
		return statusForKeyringErr(err)
	}
	return StatusSuccess
}

func (c *KeyringConn) Update(q Query, attrs Query) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	service, ok := serviceKey(q)
	if !ok {
		return StatusParam
	}
	data, ok := attrs[ValueData].([]byte)
	if !ok {
		return StatusParam
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	if account, ok := q[AttrAccount].(string); ok {
		if _, err := keyring.Get(service, account); err != nil {
			return statusForKeyringErr(err)
		}
		if err := keyring.Set(service, account, encoded); err != nil {
			return statusForKeyringErr(err)
		}
		return StatusSuccess
	}

	accounts, err := c.readIndex(service)
	if err != nil {
		return statusForKeyringErr(err)
	}
	if len(accounts) == 0 {
		return StatusItemNotFound
	}
	for _, account := range accounts {
		if err := keyring.Set(service, account, encoded); err != nil {
			return statusForKeyringErr(err)
		}
	}
	return StatusSuccess
}

func (c *KeyringConn) DeleteMatching(q Query) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	service, ok := serviceKey(q)
	if !ok {
		return StatusParam
	}

	if account, ok := q[AttrAccount].(string); ok {
		if err := keyring.Delete(service, account); err != nil {
			return statusForKeyringErr(err)
		}
		if err := c.indexRemove(service, account); err != nil {
			return statusForKeyringErr(err)
		}
		return StatusSuccess
	}

	accounts, err := c.readIndex(service)
	if err != nil {
		return statusForKeyringErr(err)
	}
	if len(accounts) == 0 {
		return StatusItemNotFound
	}
	for _, account := range accounts {
		if err := keyring.Delete(service, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return statusForKeyringErr(err)
		}
	}
	if err := keyring.Delete(service, indexAccount); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return statusForKeyringErr(err)
	}
	return StatusSuccess
}

// fetch reads one account. Data is decoded only when requested.
func (c *KeyringConn) fetch(service, account string, withData bool) (Item, Status) {
	raw, err := keyring.Get(service, account)
	if err != nil {
		return Item{}, statusForKeyringErr(err)
	}
	item := Item{Account: account}
	if withData {
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return Item{}, StatusParam
		}
		item.Data = data
	}
	return item, StatusSuccess
}

func (c *KeyringConn) readIndex(service string) ([]string, error) {
	raw, err := keyring.Get(service, indexAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var accounts []string
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *KeyringConn) writeIndex(service string, accounts []string) error {
	if len(accounts) == 0 {
		err := keyring.Delete(service, indexAccount)
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return err
	}
	raw, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return keyring.Set(service, indexAccount, string(raw))
}

func (c *KeyringConn) indexAdd(service, account string) error {
	accounts, err := c.readIndex(service)
	if err != nil {
		return err
	}
	if slices.Contains(accounts, account) {
		return nil
	}
	accounts = append(accounts, account)
	slices.Sort(accounts)
	return c.writeIndex(service, accounts)
}

func (c *KeyringConn) indexRemove(service, account string) error {
	accounts, err := c.readIndex(service)
	if err != nil {
		return err
	}
	i := slices.Index(accounts, account)
	if i < 0 {
		return nil
	}
	return c.writeIndex(service, slices.Delete(accounts, i, i+1))
}

// serviceKey derives the keyring service key from the query, folding in the
// access group so shared and private namespaces with the same service string
// stay distinct.
func serviceKey(q Query) (string, bool) {
	service, ok := q[AttrService].(string)
	if !ok || service == "" {
		return "", false
	}
	if group, ok := q[AttrAccessGroup].(string); ok && group != "" {
		return group + "|" + service, true
	}
	return service, true
}

// legacyLocation reports whether the query targets the pre-data-protection
// storage location, which the portable store does not have.
func legacyLocation(q Query) bool {
	v, present := q[UseDataProtection]
	return present && v == false
}

func statusForKeyringErr(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, keyring.ErrNotFound):
		return StatusItemNotFound
	case errors.Is(err, keyring.ErrSetDataTooBig):
		return StatusParam
	case errors.Is(err, keyring.ErrUnsupportedPlatform):
		return StatusUnimplemented
	default:
		return StatusNotAvailable
	}
}
