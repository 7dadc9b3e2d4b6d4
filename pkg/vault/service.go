package vault

import (
	"strings"

	"github.com/systmms/vaultkit/pkg/keychain"
)

type serviceKind int

const (
	serviceStandard serviceKind = iota + 1
	serviceSharedGroup
	serviceStandardOverride
	serviceSharedGroupOverride
)

// descriptorPrefix anchors every generated namespace string. Frozen: changing
// it would orphan previously written secrets.
const descriptorPrefix = "vaultkit"

// Service derives a store's canonical descriptor and its base backend query
// from {identifier, sharing scope, configuration}. Both derivations are pure
// and byte-stable across process runs: the descriptor doubles as the
// registry's dedup key and, for generated variants, as the namespace string
// items are stored under.
type Service struct {
	kind       serviceKind
	identifier Identifier
	group      SharedGroupIdentifier
	config     Configuration
}

func standardService(id Identifier, config Configuration) Service {
	return Service{kind: serviceStandard, identifier: id, config: config}
}

func sharedGroupService(group SharedGroupIdentifier, config Configuration) Service {
	return Service{kind: serviceSharedGroup, identifier: group.Identifier(), group: group, config: config}
}

// standardOverrideService uses the raw identifier verbatim as the namespace
// string. Callers opting in bypass namespace isolation and own global
// uniqueness themselves.
func standardOverrideService(id Identifier, config Configuration) Service {
	return Service{kind: serviceStandardOverride, identifier: id, config: config}
}

func sharedGroupOverrideService(group SharedGroupIdentifier, id Identifier, config Configuration) Service {
	return Service{kind: serviceSharedGroupOverride, identifier: id, group: group, config: config}
}

// Descriptor returns the canonical descriptor string. Same inputs always
// yield byte-identical descriptors; distinct scope, sharing group,
// identifier, or configuration always yield distinct descriptors. The
// shared-group override carries the group as its own segment: its identifier
// is the caller's raw namespace, so the group is the only thing telling two
// such stores apart.
func (s Service) Descriptor() string {
	parts := []string{descriptorPrefix, s.scopeTag()}
	if s.kind == serviceSharedGroupOverride {
		parts = append(parts, s.group.String())
	}
	parts = append(parts, s.identifier.String(), s.config.descriptorTag())
	return strings.Join(parts, "_")
}

func (s Service) scopeTag() string {
	switch s.kind {
	case serviceStandard:
		return "standard"
	case serviceSharedGroup:
		return "shared"
	case serviceStandardOverride:
		return "standardOverride"
	case serviceSharedGroupOverride:
		return "sharedOverride"
	default:
		return "unknown"
	}
}

// namespace returns the value stored in the service attribute: the full
// descriptor for generated variants, the raw identifier for overrides.
func (s Service) namespace() string {
	switch s.kind {
	case serviceStandardOverride, serviceSharedGroupOverride:
		return s.identifier.String()
	default:
		return s.Descriptor()
	}
}

// BaseQuery returns the backend query every operation on this namespace
// starts from. The result is freshly allocated; callers may extend it.
func (s Service) BaseQuery() keychain.Query {
	q := keychain.Query{
		keychain.AttrClass:   keychain.ClassGenericPassword,
		keychain.AttrService: s.namespace(),
	}
	if s.kind == serviceSharedGroup || s.kind == serviceSharedGroupOverride {
		q[keychain.AttrAccessGroup] = s.group.String()
	}
	switch s.config.kind {
	case configurationStandard:
		q[keychain.AttrAccessible] = s.config.accessibility.platformLiteral()
	case configurationCloud:
		q[keychain.AttrAccessible] = s.config.cloud.Accessibility().platformLiteral()
		q[keychain.AttrSynchronizable] = true
	case configurationEnclave:
		// The hardware key's access control subsumes the accessibility
		// attribute, which is deliberately omitted.
		q[keychain.AttrAccessControl] = s.config.enclave.controlDescriptor()
		q[keychain.UseDataProtection] = true
	}
	return q
}

// withLegacyAccessibility returns the service addressing the items a
// pre-redesign release would have written for the same identifier and scope:
// a standard configuration under the retired always-readable policy, the
// device-only variant when the current policy is device-only. ok is false for
// enclave services, which have no pre-redesign counterpart.
func (s Service) withLegacyAccessibility() (Service, bool) {
	var legacy Accessibility
	switch s.config.kind {
	case configurationStandard:
		legacy = AccessibilityAlways
		if s.config.accessibility.deviceOnly() {
			legacy = AccessibilityAlwaysThisDeviceOnly
		}
	case configurationCloud:
		legacy = AccessibilityAlways
	default:
		return Service{}, false
	}

	out := s
	out.config = StandardConfiguration(legacy)
	return out, true
}
