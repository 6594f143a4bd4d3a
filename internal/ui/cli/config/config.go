package config

import (
	"fmt"

	"github.com/isaacphi/promptpad/internal/config"
	"github.com/spf13/cobra"
)

var (
	includeSources bool

	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "View and check configuration",
		// Config commands load the configuration themselves so an invalid
		// file can still be reported.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	printCmd = &cobra.Command{
		Use:   "print",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(nil)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			cfg.PrintConfig(cmd.OutOrStdout(), includeSources)

			return nil
		},
	}
)

func init() {
	printCmd.Flags().BoolVarP(&includeSources, "include-sources", "s", false, "Show source file for each configuration value")
	ConfigCmd.AddCommand(printCmd, validateCmd, schemaCmd)
}
