package prompt

import (
	"fmt"

	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a prompt",
	Long: `Create a prompt with an optional system message and a user message.
Pass --content - to read the user message from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readContent(contentFlag, cmd.InOrStdin())
		if err != nil {
			return err
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		p, err := svc.Create(cmd.Context(), createOptions(args[0], descriptionFlag, systemFlag, content))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created prompt %s (%s)\n", p.Name, p.ID.String()[:8])
		return nil
	},
}

var appendCmd = &cobra.Command{
	Use:   "append [name|id] [content]",
	Short: "Append a message to a prompt",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readContent(args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		p, err := svc.Find(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		msg, err := svc.AddMessage(cmd.Context(), p.ID, domain.Role(roleFlag), content)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added message #%d to %s\n", msg.Position+1, p.Name)
		return nil
	},
}

var mvCmd = &cobra.Command{
	Use:   "mv [name|id] [new-name]",
	Short: "Rename a prompt",
	Args:  cobra.ExactArgs(2),
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
		if err := svc.Rename(cmd.Context(), p.ID, args[1]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", p.Name, args[1])
		return nil
	},
}

// createOptions builds the message list: an optional system message
// followed by the user message.
func createOptions(name, description, system, content string) prompt.CreateOptions {
	opts := prompt.CreateOptions{Name: name, Description: description}
	if system != "" {
		opts.Messages = append(opts.Messages, prompt.MessageInput{Role: domain.RoleSystem, Content: system})
	}
	opts.Messages = append(opts.Messages, prompt.MessageInput{Role: domain.RoleUser, Content: content})
	return opts
}

func init() {
	addCmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Prompt description")
	addCmd.Flags().StringVarP(&systemFlag, "system", "s", "", "System message")
	addCmd.Flags().StringVarP(&contentFlag, "content", "c", "[input]", "User message, or - to read stdin")

	appendCmd.Flags().StringVarP(&roleFlag, "role", "r", string(domain.RoleUser), "Message role (system, user, assistant)")
}
