package vault

import "github.com/systmms/vaultkit/pkg/keychain"

// Accessibility is the policy governing when a store's items may be read.
type Accessibility int

const (
	// AccessibilityWhenUnlocked makes items readable while the device is
	// unlocked. This is the default posture for most stores.
	AccessibilityWhenUnlocked Accessibility = iota + 1

	// AccessibilityAfterFirstUnlock makes items readable any time after the
	// first unlock following boot.
	AccessibilityAfterFirstUnlock

	// AccessibilityWhenPasscodeSetThisDeviceOnly requires a device passcode
	// and never leaves the device.
	AccessibilityWhenPasscodeSetThisDeviceOnly

	// AccessibilityWhenUnlockedThisDeviceOnly is WhenUnlocked without backup
	// or transfer to another device.
	AccessibilityWhenUnlockedThisDeviceOnly

	// AccessibilityAfterFirstUnlockThisDeviceOnly is AfterFirstUnlock
	// without backup or transfer to another device.
	AccessibilityAfterFirstUnlockThisDeviceOnly

	// AccessibilityAlways is a retired policy retained only so migration can
	// address items written by earlier releases. New stores must not use it.
	AccessibilityAlways

	// AccessibilityAlwaysThisDeviceOnly is the device-only variant of the
	// retired always-readable policy. Migration use only.
	AccessibilityAlwaysThisDeviceOnly
)

// String returns the canonical descriptor tag for the policy. These tags are
// part of the namespace derivation and must remain byte-stable forever.
func (a Accessibility) String() string {
	switch a {
	case AccessibilityWhenUnlocked:
		return "AccessibleWhenUnlocked"
	case AccessibilityAfterFirstUnlock:
		return "AccessibleAfterFirstUnlock"
	case AccessibilityWhenPasscodeSetThisDeviceOnly:
		return "AccessibleWhenPasscodeSetThisDeviceOnly"
	case AccessibilityWhenUnlockedThisDeviceOnly:
		return "AccessibleWhenUnlockedThisDeviceOnly"
	case AccessibilityAfterFirstUnlockThisDeviceOnly:
		return "AccessibleAfterFirstUnlockThisDeviceOnly"
	case AccessibilityAlways:
		return "AccessibleAlways"
	case AccessibilityAlwaysThisDeviceOnly:
		return "AccessibleAlwaysThisDeviceOnly"
	default:
		return "AccessibleUnknown"
	}
}

// platformLiteral returns the frozen backend attribute value for the policy.
func (a Accessibility) platformLiteral() string {
	switch a {
	case AccessibilityWhenUnlocked:
		return keychain.AccessibleWhenUnlocked
	case AccessibilityAfterFirstUnlock:
		return keychain.AccessibleAfterFirstUnlock
	case AccessibilityWhenPasscodeSetThisDeviceOnly:
		return keychain.AccessibleWhenPasscodeSetThisDeviceOnly
	case AccessibilityWhenUnlockedThisDeviceOnly:
		return keychain.AccessibleWhenUnlockedThisDeviceOnly
	case AccessibilityAfterFirstUnlockThisDeviceOnly:
		return keychain.AccessibleAfterFirstUnlockThisDeviceOnly
	case AccessibilityAlways:
		return keychain.AccessibleAlways
	case AccessibilityAlwaysThisDeviceOnly:
		return keychain.AccessibleAlwaysThisDeviceOnly
	default:
		return ""
	}
}

// deviceOnly reports whether items under the policy can never leave the
// device.
func (a Accessibility) deviceOnly() bool {
	switch a {
	case AccessibilityWhenPasscodeSetThisDeviceOnly,
		AccessibilityWhenUnlockedThisDeviceOnly,
		AccessibilityAfterFirstUnlockThisDeviceOnly,
		AccessibilityAlwaysThisDeviceOnly:
		return true
	}
	return false
}

// CloudAccessibility is the subset of policies valid for cloud-synchronized
// stores. Device-only policies are excluded by construction: items that
// cannot leave the device cannot sync.
type CloudAccessibility int

const (
	CloudAccessibilityWhenUnlocked CloudAccessibility = iota + 1
	CloudAccessibilityAfterFirstUnlock
)

// Accessibility returns the equivalent unrestricted policy.
func (c CloudAccessibility) Accessibility() Accessibility {
	switch c {
	case CloudAccessibilityWhenUnlocked:
		return AccessibilityWhenUnlocked
	case CloudAccessibilityAfterFirstUnlock:
		return AccessibilityAfterFirstUnlock
	default:
		return 0
	}
}

func (c CloudAccessibility) String() string {
	return c.Accessibility().String()
}

// EnclaveAccessControl describes the presence requirement enforced by a
// hardware-backed key on every read.
type EnclaveAccessControl int

const (
	// EnclaveAccessControlUserPresence accepts either biometry or the
	// device passcode.
	EnclaveAccessControlUserPresence EnclaveAccessControl = iota + 1

	// EnclaveAccessControlBiometryAny accepts any enrolled biometry.
	EnclaveAccessControlBiometryAny

	// EnclaveAccessControlBiometryCurrentSet accepts only the biometry
	// enrolled at the time the item was written.
	EnclaveAccessControlBiometryCurrentSet

	// EnclaveAccessControlDevicePasscode accepts only the device passcode.
	EnclaveAccessControlDevicePasscode
)

// String returns the canonical descriptor tag for the flavor. Byte-stable
// forever, same as the accessibility tags.
func (c EnclaveAccessControl) String() string {
	switch c {
	case EnclaveAccessControlUserPresence:
		return "AccessControlUserPresence"
	case EnclaveAccessControlBiometryAny:
		return "AccessControlBiometryAny"
	case EnclaveAccessControlBiometryCurrentSet:
		return "AccessControlBiometryCurrentSet"
	case EnclaveAccessControlDevicePasscode:
		return "AccessControlDevicePasscode"
	default:
		return "AccessControlUnknown"
	}
}

// controlDescriptor returns the backend attribute value for the flavor.
func (c EnclaveAccessControl) controlDescriptor() string {
	switch c {
	case EnclaveAccessControlUserPresence:
		return keychain.AccessControlUserPresence
	case EnclaveAccessControlBiometryAny:
		return keychain.AccessControlBiometryAny
	case EnclaveAccessControlBiometryCurrentSet:
		return keychain.AccessControlBiometryCurrentSet
	case EnclaveAccessControlDevicePasscode:
		return keychain.AccessControlDevicePasscode
	default:
		return ""
	}
}
