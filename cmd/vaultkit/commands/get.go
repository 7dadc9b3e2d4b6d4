package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/internal/logging"
	"github.com/systmms/vaultkit/pkg/vault"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		storeName  string
		key        string
		prompt     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a single secret value",
		Long: `Retrieve and display a single secret value.

By default, only the raw value is printed, making it suitable for scripting.
Enclave-protected stores prompt for user presence before releasing the value;
customize the prompt text with --prompt.

Examples:
  # Get a single value
  vaultkit get --store app --key api-token

  # Get value with metadata in JSON format
  vaultkit get --store app --key api-token --json

  # Use in scripts
  export API_TOKEN=$(vaultkit get --store app --key api-token)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			value, err := readValue(cfg, storeName, key, prompt)
			if err != nil {
				return err
			}
			cfg.Logger.Debug("read %v from store '%s'", logging.Secret(value), storeName)

			if jsonOutput {
				store, _ := cfg.GetStore(storeName)
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"store": storeName,
					"key":   key,
					"value": value,
					"scope": scopeLabel(store),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeName, "store", "", "Store name from vaultkit.yaml (required)")
	cmd.Flags().StringVar(&key, "key", "", "Key to read (required)")
	cmd.Flags().StringVar(&prompt, "prompt", "Unlock to read the secret", "Prompt text for enclave-protected reads")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format with metadata")

	_ = cmd.MarkFlagRequired("store")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

// readValue reads one key from a named store, taking the presence-prompting
// path for enclave profiles.
func readValue(cfg *config.Config, storeName, key, prompt string) (string, error) {
	if cfg.IsEnclave(storeName) {
		if cfg.NonInteractive {
			return "", vkerrors.UserError{
				Message:    fmt.Sprintf("Store '%s' requires user presence", storeName),
				Suggestion: "Enclave-protected reads prompt for biometry or passcode; drop --non-interactive",
			}
		}
		enclave, err := cfg.OpenEnclave(storeName)
		if err != nil {
			return "", err
		}
		result := enclave.ReadObject(key, prompt)
		switch result.Outcome {
		case vault.ReadSuccess:
			return string(result.Value), nil
		case vault.ReadUserCancelled:
			return "", vkerrors.UserError{
				Message:    "Authentication was cancelled",
				Suggestion: "Run the command again and complete the presence prompt",
				Err:        result.Err,
			}
		default:
			return "", vkerrors.VaultError(storeName, "get", result.Err)
		}
	}

	store, err := cfg.OpenStore(storeName)
	if err != nil {
		return "", err
	}
	value, err := store.String(key)
	if err != nil {
		return "", vkerrors.VaultError(storeName, "get", err)
	}
	return value, nil
}

func scopeLabel(profile config.StoreProfile) string {
	if profile.Scope == "shared" {
		return "shared"
	}
	return "standard"
}
