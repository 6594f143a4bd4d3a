package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/isaacphi/promptpad/internal/appState"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	forceFlag       bool
	rawFlag         bool
	allowMissing    bool
	descriptionFlag string
	systemFlag      string
	contentFlag     string
	roleFlag        string
	varsFlag        map[string]string
)

var PromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Manage prompt templates",
}

func init() {
	PromptCmd.AddCommand(listCmd, showCmd, addCmd, appendCmd, mvCmd, varsCmd, fillCmd, deleteCmd)
}

// openService opens the configured prompt library. Tests point it at a
// temporary database.
var openService = func() (*prompt.Service, error) {
	return prompt.InitializeService(appState.Get().Config)
}

func preview(p *domain.Prompt) string {
	text := p.Description
	if text == "" && len(p.Messages) > 0 {
		text = p.Messages[0].Content
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "[empty]"
	}
	if len(text) > 50 {
		return text[:47] + "..."
	}
	return text
}

// readContent returns value, or stdin when value is "-".
func readContent(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func printPrompt(w io.Writer, p *domain.Prompt) {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID.String()[:8])
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
	for _, msg := range p.Messages {
		fmt.Fprintf(w, "\n#%d %s\n%s\n", msg.Position+1, msg.Role, msg.Content)
	}
}
