package vault

import "strings"

// Identifier names a store's logical namespace. The empty string is not a
// valid identifier; beyond that the value is opaque.
type Identifier struct {
	value string
}

// NewIdentifier validates value and returns the identifier. ok is false for
// empty input; malformed user input never panics.
func NewIdentifier(value string) (Identifier, bool) {
	if value == "" {
		return Identifier{}, false
	}
	return Identifier{value: value}, true
}

// String returns the raw identifier value.
func (i Identifier) String() string {
	return i.value
}

// SharedGroupIdentifier names a namespace shared across the applications of
// an app group. App-group names follow the "<team-prefix>.<group>" convention
// enforced at construction; stores built from one always carry the sharing
// attribute in their queries.
type SharedGroupIdentifier struct {
	value string
}

// NewSharedGroupIdentifier validates value against the app-group naming
// convention: a non-empty team prefix, a dot, and a non-empty group name.
// ok is false for anything else.
func NewSharedGroupIdentifier(value string) (SharedGroupIdentifier, bool) {
	dot := strings.Index(value, ".")
	if dot < 1 || dot == len(value)-1 {
		return SharedGroupIdentifier{}, false
	}
	return SharedGroupIdentifier{value: value}, true
}

// String returns the full app-group string, team prefix included.
func (g SharedGroupIdentifier) String() string {
	return g.value
}

// Identifier returns the group as a plain Identifier for display and
// equality use.
func (g SharedGroupIdentifier) Identifier() Identifier {
	return Identifier{value: g.value}
}
