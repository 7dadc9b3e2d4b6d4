package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
)

func NewRemoveCommand(cfg *config.Config) *cobra.Command {
	var (
		storeName string
		key       string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a secret, or every secret in a store",
		Long: `Delete the value stored under a key. Removing an absent key succeeds.

With --all, every entry in the store is deleted; other stores are untouched.
Removal never prompts, including on enclave-protected stores.

Examples:
  # Remove one key
  vaultkit remove --store app --key api-token

  # Remove everything in the store
  vaultkit remove --store app --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			if all == (key != "") {
				return vkerrors.UserError{
					Message:    "Provide exactly one of --key or --all",
					Suggestion: "Use --key <name> for one entry, --all for the whole store",
				}
			}

			if err := removeValue(cfg, storeName, key, all); err != nil {
				return err
			}
			if all {
				cfg.Logger.Info("Removed all entries from store '%s'", storeName)
			} else {
				cfg.Logger.Info("Removed %q from store '%s'", key, storeName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeName, "store", "", "Store name from vaultkit.yaml (required)")
	cmd.Flags().StringVar(&key, "key", "", "Key to remove")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every entry in the store")

	_ = cmd.MarkFlagRequired("store")

	return cmd
}

func removeValue(cfg *config.Config, storeName, key string, all bool) error {
	operation := "remove"
	if all {
		operation = "remove-all"
	}

	if cfg.IsEnclave(storeName) {
		enclave, err := cfg.OpenEnclave(storeName)
		if err != nil {
			return err
		}
		if all {
			err = enclave.RemoveAll()
		} else {
			err = enclave.Remove(key)
		}
		if err != nil {
			return vkerrors.VaultError(storeName, operation, err)
		}
		return nil
	}

	store, err := cfg.OpenStore(storeName)
	if err != nil {
		return err
	}
	if all {
		err = store.RemoveAll()
	} else {
		err = store.Remove(key)
	}
	if err != nil {
		return vkerrors.VaultError(storeName, operation, err)
	}
	return nil
}
