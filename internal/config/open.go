package config

import (
	"fmt"

	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/pkg/vault"
)

// OpenStore builds the vault store a profile describes. Enclave profiles must
// be opened with OpenEnclave instead; their read path prompts for presence.
func (c *Config) OpenStore(name string) (*vault.Store, error) {
	profile, err := c.GetStore(name)
	if err != nil {
		return nil, err
	}
	if profile.Enclave {
		return nil, vkerrors.ConfigError{
			Field:      fmt.Sprintf("stores.%s", name),
			Message:    "store is enclave-protected",
			Suggestion: "Enclave reads require user presence; use a command that supports prompting",
		}
	}

	shared := profile.Scope == "shared"
	if shared {
		group, ok := vault.NewSharedGroupIdentifier(profile.Group)
		if !ok {
			return nil, invalidGroup(name, profile.Group)
		}
		if profile.Cloud {
			cloud, err := parseCloudAccessibility(name, profile.Accessibility)
			if err != nil {
				return nil, err
			}
			return vault.NewSharedGroupCloud(group, cloud), nil
		}
		accessibility, err := parseAccessibility(name, profile.Accessibility)
		if err != nil {
			return nil, err
		}
		if profile.RawNamespace {
			id, ok := vault.NewIdentifier(profile.Identifier)
			if !ok {
				return nil, invalidIdentifier(name, profile.Identifier)
			}
			return vault.NewSharedGroupOverride(group, id, accessibility), nil
		}
		return vault.NewSharedGroup(group, accessibility), nil
	}

	id, ok := vault.NewIdentifier(profile.Identifier)
	if !ok {
		return nil, invalidIdentifier(name, profile.Identifier)
	}
	if profile.Cloud {
		cloud, err := parseCloudAccessibility(name, profile.Accessibility)
		if err != nil {
			return nil, err
		}
		return vault.NewCloud(id, cloud), nil
	}
	accessibility, err := parseAccessibility(name, profile.Accessibility)
	if err != nil {
		return nil, err
	}
	if profile.RawNamespace {
		return vault.NewOverride(id, accessibility), nil
	}
	return vault.New(id, accessibility), nil
}

// OpenEnclave builds the enclave store a profile describes.
func (c *Config) OpenEnclave(name string) (*vault.EnclaveStore, error) {
	profile, err := c.GetStore(name)
	if err != nil {
		return nil, err
	}
	if !profile.Enclave {
		return nil, vkerrors.ConfigError{
			Field:      fmt.Sprintf("stores.%s", name),
			Message:    "store is not enclave-protected",
			Suggestion: "Set 'enclave: true' on the profile, or use the regular commands",
		}
	}

	control, err := parseAccessControl(name, profile.AccessControl)
	if err != nil {
		return nil, err
	}
	if profile.Scope == "shared" {
		group, ok := vault.NewSharedGroupIdentifier(profile.Group)
		if !ok {
			return nil, invalidGroup(name, profile.Group)
		}
		return vault.NewSharedGroupEnclave(group, control), nil
	}
	id, ok := vault.NewIdentifier(profile.Identifier)
	if !ok {
		return nil, invalidIdentifier(name, profile.Identifier)
	}
	return vault.NewEnclave(id, control), nil
}

// IsEnclave reports whether the named store is enclave-protected. Unknown
// stores report false; opening them surfaces the real error.
func (c *Config) IsEnclave(name string) bool {
	profile, err := c.GetStore(name)
	return err == nil && profile.Enclave
}

func parseAccessibility(store, value string) (vault.Accessibility, error) {
	switch value {
	case "", "when-unlocked":
		return vault.AccessibilityWhenUnlocked, nil
	case "after-first-unlock":
		return vault.AccessibilityAfterFirstUnlock, nil
	case "when-passcode-set-this-device-only":
		return vault.AccessibilityWhenPasscodeSetThisDeviceOnly, nil
	case "when-unlocked-this-device-only":
		return vault.AccessibilityWhenUnlockedThisDeviceOnly, nil
	case "after-first-unlock-this-device-only":
		return vault.AccessibilityAfterFirstUnlockThisDeviceOnly, nil
	}
	return 0, vkerrors.ConfigError{
		Field:      fmt.Sprintf("stores.%s.accessibility", store),
		Value:      value,
		Message:    "unknown accessibility policy",
		Suggestion: "Use when-unlocked, after-first-unlock, or one of the this-device-only variants",
	}
}

func parseCloudAccessibility(store, value string) (vault.CloudAccessibility, error) {
	switch value {
	case "", "when-unlocked":
		return vault.CloudAccessibilityWhenUnlocked, nil
	case "after-first-unlock":
		return vault.CloudAccessibilityAfterFirstUnlock, nil
	}
	return 0, vkerrors.ConfigError{
		Field:      fmt.Sprintf("stores.%s.accessibility", store),
		Value:      value,
		Message:    "accessibility not valid for cloud stores",
		Suggestion: "Cloud stores support when-unlocked and after-first-unlock only",
	}
}

func parseAccessControl(store, value string) (vault.EnclaveAccessControl, error) {
	switch value {
	case "", "user-presence":
		return vault.EnclaveAccessControlUserPresence, nil
	case "biometry-any":
		return vault.EnclaveAccessControlBiometryAny, nil
	case "biometry-current-set":
		return vault.EnclaveAccessControlBiometryCurrentSet, nil
	case "device-passcode":
		return vault.EnclaveAccessControlDevicePasscode, nil
	}
	return 0, vkerrors.ConfigError{
		Field:      fmt.Sprintf("stores.%s.accessControl", store),
		Value:      value,
		Message:    "unknown access control requirement",
		Suggestion: "Use user-presence, biometry-any, biometry-current-set, or device-passcode",
	}
}

func invalidIdentifier(store, value string) error {
	return vkerrors.ConfigError{
		Field:      fmt.Sprintf("stores.%s.identifier", store),
		Value:      value,
		Message:    "invalid store identifier",
		Suggestion: "Use a non-empty stable name, e.g. your bundle identifier",
	}
}

func invalidGroup(store, value string) error {
	return vkerrors.ConfigError{
		Field:      fmt.Sprintf("stores.%s.group", store),
		Value:      value,
		Message:    "invalid shared access group",
		Suggestion: "Use '<TEAMID>.<reverse.dns>', e.g. 'ABC123.com.example.shared'",
	}
}
