package config

import (
	"fmt"
	"log/slog"

	"github.com/isaacphi/promptpad/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration files for errors",
	Long:  "Load every configuration file, report unknown keys and where each value comes from, and validate the result.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))

		c, err := config.Load(config.Options{Verbose: true, Logger: logger})
		if err != nil {
			return err
		}
		if _, err := c.Resolve(nil); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
		return nil
	},
}
