package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
)

func NewMigrateCommand(cfg *config.Config) *cobra.Command {
	var (
		toName            string
		fromName          string
		legacy            bool
		preDataProtection bool
		keep              bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move secrets between stores",
		Long: `Copy every entry of a source into the destination store, then remove the
originals (unless --keep is given).

The destination is left unmodified unless the whole migration succeeds:
conflicts such as a key already present in the destination abort before
anything is written.

Modes (exactly one):
  --from <store>          migrate from another configured store
  --legacy                migrate entries written by pre-redesign releases
                          under the retired always-readable policy
  --pre-data-protection   rewrite entries from before the data-protection
                          policy change, in place

Examples:
  # Move everything from the old store into the new one
  vaultkit migrate --from old-app --to app

  # Copy without removing the source
  vaultkit migrate --from old-app --to app --keep

  # Pick up items written by an old release
  vaultkit migrate --to app --legacy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			modes := 0
			for _, on := range []bool{fromName != "", legacy, preDataProtection} {
				if on {
					modes++
				}
			}
			if modes != 1 {
				return vkerrors.UserError{
					Message:    "Provide exactly one of --from, --legacy, or --pre-data-protection",
					Suggestion: "See 'vaultkit migrate --help' for the migration modes",
				}
			}

			destination, err := cfg.OpenStore(toName)
			if err != nil {
				return err
			}

			switch {
			case legacy:
				if err := destination.MigrateFromLegacyAccessibility(!keep); err != nil {
					return vkerrors.VaultError(toName, "legacy migration", err)
				}
				cfg.Logger.Info("Migrated legacy entries into store '%s'", toName)
			case preDataProtection:
				if err := destination.MigratePreDataProtection(); err != nil {
					return vkerrors.VaultError(toName, "pre-data-protection migration", err)
				}
				cfg.Logger.Info("Rewrote pre-data-protection entries in store '%s'", toName)
			default:
				source, err := cfg.OpenStore(fromName)
				if err != nil {
					return err
				}
				if err := destination.MigrateFrom(source, !keep); err != nil {
					return vkerrors.VaultError(toName, "migration", err)
				}
				cfg.Logger.Info("Migrated store '%s' into store '%s'", fromName, toName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&toName, "to", "", "Destination store name (required)")
	cmd.Flags().StringVar(&fromName, "from", "", "Source store name")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Migrate entries stored under the retired always-readable policy")
	cmd.Flags().BoolVar(&preDataProtection, "pre-data-protection", false, "Rewrite entries from before the data-protection policy change")
	cmd.Flags().BoolVar(&keep, "keep", false, "Keep the source entries after a successful copy")

	_ = cmd.MarkFlagRequired("to")

	return cmd
}
