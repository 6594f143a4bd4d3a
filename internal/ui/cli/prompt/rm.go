package prompt

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "rm [name|id]",
	Short: "Delete a prompt and its messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		p, err := svc.Find(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to find prompt: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "About to delete prompt %s (%s):\n", p.Name, p.ID.String()[:8])
		fmt.Fprintf(out, "Messages: %d\n", len(p.Messages))
		fmt.Fprintf(out, "Preview: %s\n", preview(p))

		if !forceFlag {
			fmt.Fprint(out, "\nAre you sure you want to delete this prompt? [y/N] ")
			response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && response == "" {
				return fmt.Errorf("failed to read input: %w", err)
			}

			response = strings.ToLower(strings.TrimSpace(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}
		}

		if err := svc.Delete(cmd.Context(), p.ID); err != nil {
			return fmt.Errorf("failed to delete prompt: %w", err)
		}

		fmt.Fprintln(out, "Prompt deleted successfully")
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Delete without confirmation")
}
