package experiment

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/isaacphi/promptpad/internal/appState"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/spf13/cobra"
)

var experimentFlag string

var openService = func() (*prompt.Service, error) {
	return prompt.InitializeService(appState.Get().Config)
}

var ExperimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Group prompts into experiments",
}

var addCmd = &cobra.Command{
	Use:   "add [prompt...]",
	Short: "Add prompts to an experiment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		for _, ref := range args {
			p, err := svc.Find(cmd.Context(), ref)
			if err != nil {
				return err
			}
			exp, err := svc.AddToExperiment(cmd.Context(), p.ID, experimentFlag)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to experiment %s\n", p.Name, exp.Name)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List experiments and their prompts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		experiments, err := svc.ListExperiments(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list experiments: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Name\tPrompts")
		for _, exp := range experiments {
			fmt.Fprintf(w, "%s\t%s\n", exp.Name, promptNames(exp))
		}
		return w.Flush()
	},
}

func promptNames(exp *domain.Experiment) string {
	if len(exp.Prompts) == 0 {
		return "-"
	}
	names := make([]string, len(exp.Prompts))
	for i, p := range exp.Prompts {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func init() {
	addCmd.Flags().StringVarP(&experimentFlag, "experiment", "e", domain.DefaultExperimentName, "Experiment name")
	ExperimentCmd.AddCommand(addCmd, listCmd)
}
