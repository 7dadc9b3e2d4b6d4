package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/internal/logging"
)

// Config holds the runtime configuration
type Config struct {
	Path           string
	Logger         *logging.Logger
	NonInteractive bool
	Definition     *Definition
}

// Definition represents the vaultkit.yaml structure: a set of named store
// profiles the CLI can open.
type Definition struct {
	Version int                    `yaml:"version" json:"version"`
	Stores  map[string]StoreProfile `yaml:"stores" json:"stores"`
}

// StoreProfile describes one vault store: its identity, sharing scope, and
// protection configuration.
type StoreProfile struct {
	// Identifier names the store. Required for standard scope; for shared
	// scope it is derived from the group.
	Identifier string `yaml:"identifier,omitempty" json:"identifier,omitempty"`

	// Scope is "standard" (private to this application, the default) or
	// "shared" (visible to every application in the group).
	Scope string `yaml:"scope,omitempty" json:"scope,omitempty"`

	// Group is the shared access group, "<TEAMID>.<reverse.dns>". Required
	// when scope is shared.
	Group string `yaml:"group,omitempty" json:"group,omitempty"`

	// Accessibility selects the read-availability policy. Defaults to
	// when-unlocked.
	Accessibility string `yaml:"accessibility,omitempty" json:"accessibility,omitempty"`

	// Cloud synchronizes items across the user's devices. Incompatible with
	// device-only accessibility and with enclave.
	Cloud bool `yaml:"cloud,omitempty" json:"cloud,omitempty"`

	// Enclave protects items with a hardware-backed key; every read requires
	// user presence.
	Enclave bool `yaml:"enclave,omitempty" json:"enclave,omitempty"`

	// AccessControl selects the presence requirement for enclave stores.
	// Defaults to user-presence.
	AccessControl string `yaml:"accessControl,omitempty" json:"accessControl,omitempty"`

	// RawNamespace stores items under the identifier verbatim instead of the
	// derived namespace. For interoperating with items written by other
	// tools; the caller owns uniqueness.
	RawNamespace bool `yaml:"rawNamespace,omitempty" json:"rawNamespace,omitempty"`
}

// definitionSchema validates the shape of vaultkit.yaml beyond what YAML
// decoding enforces: known enum values and mutually required fields.
const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "stores"],
  "properties": {
    "version": {"type": "integer", "enum": [1]},
    "stores": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "properties": {
          "identifier": {"type": "string", "minLength": 1},
          "scope": {"type": "string", "enum": ["standard", "shared"]},
          "group": {"type": "string", "minLength": 1},
          "accessibility": {
            "type": "string",
            "enum": [
              "when-unlocked",
              "after-first-unlock",
              "when-passcode-set-this-device-only",
              "when-unlocked-this-device-only",
              "after-first-unlock-this-device-only"
            ]
          },
          "cloud": {"type": "boolean"},
          "enclave": {"type": "boolean"},
          "accessControl": {
            "type": "string",
            "enum": [
              "user-presence",
              "biometry-any",
              "biometry-current-set",
              "device-passcode"
            ]
          },
          "rawNamespace": {"type": "boolean"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

// Load reads and parses the vaultkit.yaml file
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return vkerrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Create a vaultkit.yaml with a 'stores:' section, or pass --config",
			}
		}
		return vkerrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return vkerrors.ConfigError{
			Message:    "invalid YAML in configuration file",
			Suggestion: "Check for indentation errors, unknown fields, or missing quotes",
		}
	}

	if err := validateDefinition(&def); err != nil {
		return err
	}

	c.Definition = &def
	return nil
}

// validateDefinition checks the parsed definition against the JSON schema and
// the cross-field rules the schema cannot express.
func validateDefinition(def *Definition) error {
	if def.Version != 1 {
		return vkerrors.ConfigError{
			Field:      "version",
			Value:      def.Version,
			Message:    "unsupported configuration version",
			Suggestion: "Set 'version: 1' at the top of your vaultkit.yaml file",
		}
	}

	doc, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration for validation: %w", err)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(definitionSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var messages []string
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return vkerrors.ConfigError{
			Message:    "invalid configuration:\n  - " + strings.Join(messages, "\n  - "),
			Suggestion: "Fix the listed fields in your vaultkit.yaml",
		}
	}

	for name, profile := range def.Stores {
		if err := profile.validate(name); err != nil {
			return err
		}
	}
	return nil
}

func (p StoreProfile) validate(name string) error {
	field := func(f string) string { return fmt.Sprintf("stores.%s.%s", name, f) }

	switch p.Scope {
	case "", "standard":
		if p.Identifier == "" {
			return vkerrors.ConfigError{
				Field:      field("identifier"),
				Message:    "identifier is required for standard scope",
				Suggestion: "Set identifier to a stable name, e.g. your bundle identifier",
			}
		}
	case "shared":
		if p.Group == "" {
			return vkerrors.ConfigError{
				Field:      field("group"),
				Message:    "group is required for shared scope",
				Suggestion: "Set group to '<TEAMID>.<reverse.dns>', matching your app group entitlement",
			}
		}
	}

	if p.Enclave && p.Cloud {
		return vkerrors.ConfigError{
			Field:      field("cloud"),
			Value:      true,
			Message:    "enclave stores cannot synchronize to the cloud",
			Suggestion: "Hardware-backed keys never leave the device; drop 'cloud: true' or 'enclave: true'",
		}
	}
	if p.Enclave && p.Accessibility != "" {
		return vkerrors.ConfigError{
			Field:      field("accessibility"),
			Value:      p.Accessibility,
			Message:    "enclave stores do not take an accessibility policy",
			Suggestion: "The access control requirement governs enclave reads; drop 'accessibility'",
		}
	}
	if !p.Enclave && p.AccessControl != "" {
		return vkerrors.ConfigError{
			Field:      field("accessControl"),
			Value:      p.AccessControl,
			Message:    "accessControl requires 'enclave: true'",
			Suggestion: "Set 'enclave: true' or drop 'accessControl'",
		}
	}
	if p.Cloud && strings.HasSuffix(p.Accessibility, "this-device-only") {
		return vkerrors.ConfigError{
			Field:      field("accessibility"),
			Value:      p.Accessibility,
			Message:    "device-only accessibility cannot synchronize to the cloud",
			Suggestion: "Use when-unlocked or after-first-unlock for cloud stores",
		}
	}
	if p.RawNamespace && p.Identifier == "" {
		return vkerrors.ConfigError{
			Field:      field("identifier"),
			Message:    "identifier is required when rawNamespace is set",
			Suggestion: "Set identifier to the exact namespace the items live under",
		}
	}
	if p.RawNamespace && (p.Cloud || p.Enclave) {
		return vkerrors.ConfigError{
			Field:      field("rawNamespace"),
			Value:      true,
			Message:    "rawNamespace supports standard accessibility stores only",
			Suggestion: "Drop 'rawNamespace', or drop 'cloud'/'enclave'",
		}
	}
	return nil
}

// GetStore returns the profile for a named store
func (c *Config) GetStore(name string) (StoreProfile, error) {
	if c.Definition == nil {
		return StoreProfile{}, vkerrors.UserError{
			Message:    "Configuration not loaded",
			Suggestion: "This is an internal error. Please report it",
		}
	}

	if profile, ok := c.Definition.Stores[name]; ok {
		return profile, nil
	}

	available := c.StoreNames()
	suggestion := "Add the store to the 'stores:' section of your vaultkit.yaml"
	if len(available) > 0 {
		suggestion = fmt.Sprintf("Available stores: %s. %s", strings.Join(available, ", "), suggestion)
	}
	return StoreProfile{}, vkerrors.ConfigError{
		Field:      "store",
		Value:      name,
		Message:    "store not found in configuration",
		Suggestion: suggestion,
	}
}

// StoreNames returns the configured store names, sorted
func (c *Config) StoreNames() []string {
	if c.Definition == nil {
		return nil
	}
	names := make([]string, 0, len(c.Definition.Stores))
	for name := range c.Definition.Stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
