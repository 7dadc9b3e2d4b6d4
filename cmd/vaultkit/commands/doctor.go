package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systmms/vaultkit/internal/config"
)

// StoreHealth is the per-store result of a doctor run.
type StoreHealth struct {
	Name       string
	Descriptor string
	Status     string
	Message    string
}

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check vault reachability and configuration",
		Long: `Verify that the configured stores are usable.

This command checks:
- Configuration file validity
- Vault reachability for each configured store

Enclave-protected stores are reported but not probed: probing would require
a presence prompt for every store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger.Info("Checking vaultkit configuration...")
			if err := cfg.Load(); err != nil {
				cfg.Logger.Error("Configuration error: %v", err)
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.Logger.Info("Configuration loaded successfully")

			results := make([]StoreHealth, 0, len(cfg.Definition.Stores))
			healthy := true
			for _, name := range cfg.StoreNames() {
				health := checkStore(cfg, name)
				if health.Status == "error" {
					healthy = false
				}
				results = append(results, health)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STORE\tSTATUS\tDETAILS")
			for _, health := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\n", health.Name, health.Status, health.Message)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !healthy {
				return fmt.Errorf("one or more stores are not usable")
			}
			return nil
		},
	}

	return cmd
}

func checkStore(cfg *config.Config, name string) StoreHealth {
	health := StoreHealth{Name: name}

	if cfg.IsEnclave(name) {
		enclave, err := cfg.OpenEnclave(name)
		if err != nil {
			health.Status = "error"
			health.Message = err.Error()
			return health
		}
		health.Descriptor = enclave.Descriptor()
		health.Status = "ok"
		health.Message = "enclave-protected; reads prompt for presence"
		return health
	}

	store, err := cfg.OpenStore(name)
	if err != nil {
		health.Status = "error"
		health.Message = err.Error()
		return health
	}
	health.Descriptor = store.Descriptor()
	if !store.CanAccessVault() {
		health.Status = "error"
		health.Message = "vault not reachable in the current device state"
		return health
	}
	health.Status = "ok"
	health.Message = "vault reachable"
	return health
}
