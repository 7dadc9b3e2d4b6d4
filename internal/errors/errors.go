package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/systmms/vaultkit/pkg/vault"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// VaultError wraps a vault failure with operation context and a suggestion
// derived from the error kind.
func VaultError(store, operation string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("vault error on store '%s' during %s", store, operation),
		Suggestion: getVaultSuggestion(err),
		Err:        err,
	}
}

// getVaultSuggestion returns helpful suggestions based on the vault error kind
func getVaultSuggestion(err error) string {
	switch {
	case errors.Is(err, vault.ErrItemNotFound):
		return "No value is stored under that key. Use 'vaultkit keys' to list what exists"
	case errors.Is(err, vault.ErrInteractionNotAllowed):
		return "The vault is not readable in the current device state. Unlock the device and try again"
	case errors.Is(err, vault.ErrUserCancelled):
		return "The authentication prompt was dismissed. Run the command again and complete the prompt"
	case errors.Is(err, vault.ErrMissingEntitlement):
		return "The process lacks the entitlement for this sharing scope. Check the app group configuration"
	case errors.Is(err, vault.ErrEmptyKey):
		return "Provide a non-empty key with --key"
	case errors.Is(err, vault.ErrEmptyValue):
		return "Provide a non-empty value; use 'vaultkit remove' to delete a key"
	case errors.Is(err, vault.ErrMigrationRemovalFailed):
		return "The data was copied but the source could not be cleaned up. It now exists in both stores; remove the source manually"
	}

	var st vault.StatusError
	if errors.As(err, &st) {
		return fmt.Sprintf("The platform store returned code %d. Check the device's keychain state", st.Status)
	}
	return ""
}

// Simplify rewrites technical errors into user-facing ones. Errors that are
// already user-facing pass through unchanged.
func Simplify(err error) error {
	if err == nil {
		return nil
	}

	var userErr UserError
	if errors.As(err, &userErr) {
		return err
	}
	var configErr ConfigError
	if errors.As(err, &configErr) {
		return err
	}

	errStr := err.Error()

	if strings.Contains(errStr, "yaml:") {
		return ConfigError{
			Message:    "Invalid YAML format",
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	if strings.Contains(errStr, "permission denied") {
		return UserError{
			Message:    "Permission denied",
			Suggestion: "Check file permissions or run with appropriate privileges",
			Err:        err,
		}
	}

	if strings.Contains(errStr, "no such file or directory") {
		return UserError{
			Message:    "File or directory not found",
			Suggestion: "Verify the path exists and is spelled correctly",
			Err:        err,
		}
	}

	return err
}
