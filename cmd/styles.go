package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sonar-libras/sonar/internal/app"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)
)

// field prints one "Label: value" line, skipping empty values
func field(cmd *cobra.Command, indent, label, value string) {
	if value == "" {
		return
	}
	cmd.Printf("%s%s %s\n", indent, labelStyle.Render(label+":"), valueStyle.Render(value))
}

// titleCase capitalizes stored lower-case labels such as statuses and levels
func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}

// progressBar renders pct as a fixed width bar
func progressBar(pct int) string {
	const width = 20
	filled := pct * width / 100
	filled = max(0, min(filled, width))
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

func appFrom(cmd *cobra.Command) (*app.App, error) {
	return app.FromContext(cmd.Context())
}
