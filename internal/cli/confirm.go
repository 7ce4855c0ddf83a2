package cli

import (
	"fmt"

	"github.com/alexanderramin/teammap/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// teammapHuhTheme returns a huh theme matching the CLI color palette.
func teammapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return t
}

// confirm asks before a destructive command. --yes skips the prompt; without
// it a non-interactive session is refused rather than assumed to agree.
func confirm(app *App, yes bool, title, description string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, fmt.Errorf("%s: refusing without --yes in a non-interactive session", title)
	}

	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(teammapHuhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
