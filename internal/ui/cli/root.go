package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/isaacphi/promptpad/internal/appState"
	"github.com/isaacphi/promptpad/internal/config"
	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/isaacphi/promptpad/internal/tui"
	configCmd "github.com/isaacphi/promptpad/internal/ui/cli/config"
	"github.com/isaacphi/promptpad/internal/ui/cli/experiment"
	promptCmd "github.com/isaacphi/promptpad/internal/ui/cli/prompt"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logFile  string
	dbPath   string
	trigger  string
)

var rootCmd = &cobra.Command{
	Use:   "promptpad",
	Short: "Edit prompt templates and fill their [variables]",
	Long: `promptpad keeps a library of prompt templates. Run it without a command to
open the editor, where pasting replaces the selected [variable] and moves on to
the next one.`,
	DisableAutoGenTag: true,
	Args:              cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appState.Get().Config
		svc, err := prompt.InitializeService(cfg)
		if err != nil {
			return err
		}
		defer svc.Close()

		return tui.Run(cmd.Context(), svc, cfg)
	},
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Set up the root command to use this context
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtimeOverrides collects the global flags that were actually set.
func runtimeOverrides(cmd *cobra.Command) *config.RuntimeOverrides {
	overrides := &config.RuntimeOverrides{}
	if logLevel != "" {
		overrides.LogLevel = &logLevel
	}
	if logFile != "" {
		overrides.LogFile = &logFile
	}
	if dbPath != "" {
		overrides.DBPath = &dbPath
	}
	if cmd.Flags().Changed("trigger") {
		overrides.Trigger = &trigger
	}

	// The editor owns the terminal, so its logs go to a file unless one is
	// configured.
	if cmd == rootCmd {
		if dir, err := os.UserCacheDir(); err == nil {
			fallback := filepath.Join(dir, "promptpad", "promptpad.log")
			overrides.FallbackLogFile = &fallback
		}
	}
	return overrides
}

func init() {
	// Add global flags for logging
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (defaults to stderr, or a cache file in the editor)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the prompt library database")
	rootCmd.PersistentFlags().StringVar(&trigger, "trigger", "", "Text that opens prompt suggestions in the editor (empty disables them)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return appState.Initialize(runtimeOverrides(cmd))
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return appState.Cleanup()
	}

	// Remove "completions" command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		configCmd.ConfigCmd,
		promptCmd.PromptCmd,
		experiment.ExperimentCmd,
	)
}
