package prompt

import (
	"fmt"

	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [name|id]",
	Short: "Print a prompt and its messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		p, err := svc.Find(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if rawFlag {
			fmt.Fprintln(cmd.OutOrStdout(), prompt.NewTemplate(p).Template)
			return nil
		}
		printPrompt(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print only the joined message text")
}
