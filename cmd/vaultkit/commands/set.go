package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/internal/logging"
)

func NewSetCommand(cfg *config.Config) *cobra.Command {
	var (
		storeName string
		key       string
		value     string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a secret value",
		Long: `Write a value under a key, overwriting any existing value.

Prefer --stdin over --value: values passed on the command line end up in
shell history. Writing never prompts, including on enclave-protected stores.

Examples:
  # Read the value from stdin
  pbpaste | vaultkit set --store app --key api-token --stdin

  # Pass the value directly (visible in shell history)
  vaultkit set --store app --key api-token --value abc123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			if fromStdin && value != "" {
				return vkerrors.UserError{
					Message:    "Both --value and --stdin were given",
					Suggestion: "Pass the value one way or the other",
				}
			}
			if fromStdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read value from stdin: %w", err)
				}
				value = strings.TrimRight(string(data), "\n")
			} else if value != "" {
				cfg.Logger.Warn("--value is visible in shell history; prefer --stdin")
			}
			if value == "" {
				return vkerrors.UserError{
					Message:    "No value to store",
					Suggestion: "Provide --value or pipe the value with --stdin",
				}
			}

			cfg.Logger.Debug("writing %v under key %q in store '%s'", logging.Secret(value), key, storeName)
			if err := writeValue(cfg, storeName, key, value); err != nil {
				cfg.Logger.Debug("set failed: %s", logging.Redact(err.Error(), []string{value}))
				return err
			}
			cfg.Logger.Info("Stored %q in store '%s'", key, storeName)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeName, "store", "", "Store name from vaultkit.yaml (required)")
	cmd.Flags().StringVar(&key, "key", "", "Key to write (required)")
	cmd.Flags().StringVar(&value, "value", "", "Value to store")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the value from stdin")

	_ = cmd.MarkFlagRequired("store")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func writeValue(cfg *config.Config, storeName, key, value string) error {
	if cfg.IsEnclave(storeName) {
		enclave, err := cfg.OpenEnclave(storeName)
		if err != nil {
			return err
		}
		if err := enclave.SetString(value, key); err != nil {
			return vkerrors.VaultError(storeName, "set", err)
		}
		return nil
	}

	store, err := cfg.OpenStore(storeName)
	if err != nil {
		return err
	}
	if err := store.SetString(value, key); err != nil {
		return vkerrors.VaultError(storeName, "set", err)
	}
	return nil
}
