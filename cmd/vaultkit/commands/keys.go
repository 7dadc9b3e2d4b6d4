package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
)

func NewKeysCommand(cfg *config.Config) *cobra.Command {
	var (
		storeName  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the keys stored in a store",
		Long: `List every key in a store, one per line, sorted.

Only keys are listed, never values, so no presence prompt is shown.
Enclave-protected stores do not support enumeration.

Examples:
  # List keys
  vaultkit keys --store app

  # List keys as JSON
  vaultkit keys --store app --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			store, err := cfg.OpenStore(storeName)
			if err != nil {
				return err
			}
			keys, err := store.AllKeys()
			if err != nil {
				return vkerrors.VaultError(storeName, "keys", err)
			}

			if jsonOutput {
				if keys == nil {
					keys = []string{}
				}
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"store": storeName,
					"keys":  keys,
				})
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeName, "store", "", "Store name from vaultkit.yaml (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	_ = cmd.MarkFlagRequired("store")

	return cmd
}
