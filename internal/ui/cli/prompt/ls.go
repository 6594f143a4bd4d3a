package prompt

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/isaacphi/promptpad/internal/variables"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List prompts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		prompts, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tName\tMessages\tVariables\tPreview")
		for _, p := range prompts {
			var names []string
			for _, msg := range p.Messages {
				names = append(names, variables.Names(msg.Content)...)
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				p.ID.String()[:8],
				p.Name,
				len(p.Messages),
				strings.Join(dedupe(names), ","),
				preview(p),
			)
		}
		return w.Flush()
	},
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
