// Package keychain defines the primitive operations this process uses to talk
// to the platform secure store, the attribute vocabulary those operations
// accept, and the status-code space they return.
//
// Everything above this package (store semantics, locking, migration) is built
// on four primitives: CopyMatching, Add, Update and DeleteMatching. The
// backend is trusted only to return a status per call; all higher-level
// guarantees live in pkg/vault.
package keychain

// Query is an attribute map describing the items an operation targets. Keys
// are the Attr*/Match*/Return* constants below; values are strings, bools or
// byte slices depending on the attribute.
type Query map[string]any

// Item is a single entry returned by CopyMatching. Account is the caller's
// key within the namespace; Data is the stored blob, present only when the
// query asked for data to be returned.
type Item struct {
	Account string
	Data    []byte
}

// Conn is the set of primitive operations the platform secure store exposes.
// Implementations must be safe for concurrent use; serialization of calls
// against a single namespace is the caller's job.
type Conn interface {
	// CopyMatching returns every item matching the query, honoring the
	// match-limit and return-data/return-attributes directives.
	CopyMatching(q Query) (Status, []Item)

	// Add inserts a new item described by the query (attributes plus
	// ValueData). Inserting an item whose identifying attributes collide
	// with an existing one returns StatusDuplicateItem.
	Add(q Query) Status

	// Update rewrites the attributes in attrs on every item matching q.
	Update(q Query, attrs Query) Status

	// DeleteMatching removes every item matching the query.
	DeleteMatching(q Query) Status
}

// Clone returns a shallow copy of the query. Base queries are shared frozen
// state, so every per-operation query starts from a copy.
func Clone(q Query) Query {
	out := make(Query, len(q)+4)
	for k, v := range q {
		out[k] = v
	}
	return out
}
