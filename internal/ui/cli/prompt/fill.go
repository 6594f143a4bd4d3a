package prompt

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/spf13/cobra"
)

var varsCmd = &cobra.Command{
	Use:   "vars [name|id]",
	Short: "List the variables of a prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		t, err := prompt.NewManager(svc).LoadTemplate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, name := range t.Variables {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var fillCmd = &cobra.Command{
	Use:   "fill [name|id] [name=value...]",
	Short: "Print a prompt with its variables filled in",
	Long: `Print a prompt with its variables filled in. Values come from --var flags
and name=value arguments; arguments win. A value of - is read from stdin.`,
	Example: `  promptpad prompt fill letter name=Alice
  git diff | promptpad prompt fill review input=-`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseValues(varsFlag, args[1:])
		if err != nil {
			return err
		}
		for name, v := range values {
			if values[name], err = readContent(v, cmd.InOrStdin()); err != nil {
				return err
			}
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		manager := prompt.NewManager(svc)
		t, err := manager.LoadTemplate(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out, err := manager.RenderTemplate(t, values)
		var missing prompt.MissingVariablesError
		if err != nil && !(allowMissing && errors.As(err, &missing)) {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// parseValues merges flag values with name=value arguments.
func parseValues(flags map[string]string, args []string) (map[string]string, error) {
	values := make(map[string]string, len(flags)+len(args))
	maps.Copy(values, flags)
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q, expected name=value", arg)
		}
		values[name] = value
	}
	return values, nil
}

func init() {
	fillCmd.Flags().StringToStringVarP(&varsFlag, "var", "v", nil, "Variable value as name=value (repeatable)")
	fillCmd.Flags().BoolVar(&allowMissing, "allow-missing", false, "Print the text even if some variables have no value")
}
