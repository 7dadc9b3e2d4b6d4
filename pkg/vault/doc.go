// Package vault is a typed abstraction over the platform secure key-value
// store. It persists small secrets (strings and byte blobs) under logical
// namespaces determined by an identifier, a sharing scope, and an
// accessibility policy, and keeps all higher-level correctness guarantees on
// top of the backend's primitive operations.
//
// # Stores
//
// A Store is obtained from one of the constructors:
//
//	id, _ := vault.NewIdentifier("com.example.myapp")
//	store := vault.New(id, vault.AccessibilityWhenUnlocked)
//
//	if err := store.SetString("abc123", "token"); err != nil {
//	    return err
//	}
//	token, err := store.String("token")
//
// Constructors consult a process-wide registry: two requests for the same
// {identifier, scope, configuration} return the same instance while one is
// still referenced, so a namespace never has two independent lock holders.
//
// All operations are synchronous and serialize on a per-store lock;
// operations on different stores proceed independently.
//
// # Sharing and cloud sync
//
// NewSharedGroup creates stores whose namespace is shared across applications
// in an app group. NewCloud and NewSharedGroupCloud create stores whose items
// synchronize through the platform's cloud keychain; CloudAccessibility
// restricts the policy choices to ones that can leave the device.
//
// # Enclave protection
//
// An EnclaveStore binds its items to a hardware-backed key and requires user
// presence for every read. Reads take a prompt string and report a three-way
// outcome so callers can tell "the user cancelled" from real failures:
//
//	res := enclave.ReadObject("token", "Unlock to view your token")
//	switch res.Outcome {
//	case vault.ReadSuccess:        // use res.Value
//	case vault.ReadUserCancelled:  // user dismissed the prompt; maybe retry
//	case vault.ReadError:          // inspect res.Err
//	}
//
// # Migration
//
// Migrate and its specialized entry points move every item matching a source
// query into a store's namespace, optionally removing the originals. The
// vault is left unmodified unless the whole operation succeeds; a failure
// during post-success removal is reported distinctly since the data then
// exists in both places rather than being lost.
package vault
