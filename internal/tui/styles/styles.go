package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/isaacphi/promptpad/internal/config"
)

// Styles holds the lipgloss styles derived from the configured theme.
type Styles struct {
	Name string

	Doc       lipgloss.Style
	Title     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Current   lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Dialog    lipgloss.Style
	Section   lipgloss.Style
	Variable  lipgloss.Style
	Footer    lipgloss.Style
}

func New(theme config.Theme) Styles {
	accent := lipgloss.Color(theme.Accent)
	muted := lipgloss.Color(theme.Muted)
	title := lipgloss.Color(theme.Title)
	selection := lipgloss.Color(theme.Selection)

	return Styles{
		Name: theme.Name,

		Doc: lipgloss.NewStyle().Margin(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(title).
			Bold(true).
			Padding(0, 1),

		Highlight: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Muted: lipgloss.NewStyle().Foreground(muted),

		Selected: lipgloss.NewStyle().
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(accent).
			PaddingLeft(1),

		Current: lipgloss.NewStyle().Foreground(selection).Bold(true),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(selection).
			Padding(1, 2),

		Section: lipgloss.NewStyle().PaddingLeft(2),

		Variable: lipgloss.NewStyle().
			Foreground(accent).
			Underline(true),

		Footer: lipgloss.NewStyle().
			Foreground(muted).
			Padding(1, 2, 0, 2),
	}
}
