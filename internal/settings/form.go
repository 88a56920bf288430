package settings

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"promptctl/internal/config"
)

// Run launches an interactive settings form and saves the result to
// config.yaml on submit.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	safeMode := cfg.SafeMode
	exportFormat := cfg.DefaultExportFormat

	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(18).Foreground(green).Bold(true)
	theme.Focused.Base.BorderForeground(green)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Settings").Description("Saved to config.yaml in the promptctl data directory."),
			huh.NewConfirm().
				Title("Safe mode").
				Description("Ask before executing {{command}} tokens on copy.").
				Value(&safeMode),
			huh.NewSelect[string]().
				Title("Copy format").
				Description("Default behavior of the copy action.").
				Options(
					huh.NewOption("rendered (resolve references and commands)", "rendered"),
					huh.NewOption("raw (literal text with tokens)", "raw"),
				).
				Value(&exportFormat),
		),
	).WithTheme(theme).WithWidth(60)

	if err := form.Run(); err != nil {
		return err // form canceled or failed
	}

	cfg.SafeMode = safeMode
	cfg.DefaultExportFormat = exportFormat
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Println("\n✓ settings saved")
	return nil
}
