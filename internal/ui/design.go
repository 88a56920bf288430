package ui

import "github.com/charmbracelet/lipgloss"

// Design centralizes the TUI color palette and common styles.
//
// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	Primary lipgloss.Color // #4d9375
	Blue    lipgloss.Color // #6394bf
	Yellow  lipgloss.Color // #e6cc77
	Magenta lipgloss.Color // #d9739f
	Cyan    lipgloss.Color // #5eaab5
	Red     lipgloss.Color // #cb7676

	Text      lipgloss.Color // #dbd7caee
	Secondary lipgloss.Color // #bfbaaa
	Muted     lipgloss.Color // #dedcd590

	Bg     lipgloss.Color // #181818
	BgSoft lipgloss.Color // #292929
	Border lipgloss.Color // #252525

	OnAccent lipgloss.Color // #222

	BarFG lipgloss.AdaptiveColor
	BarBG lipgloss.AdaptiveColor
}

// Vitesse defines the current global design theme for the TUI.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Magenta: lipgloss.Color("#d9739f"),
	Cyan:    lipgloss.Color("#5eaab5"),
	Red:     lipgloss.Color("#cb7676"),

	Text:      lipgloss.Color("#dbd7caee"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#dedcd590"),

	Bg:     lipgloss.Color("#181818"),
	BgSoft: lipgloss.Color("#292929"),
	Border: lipgloss.Color("#252525"),

	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

// Token styles used by the editor pane.
var (
	styleRefValid    = lipgloss.NewStyle().Foreground(Vitesse.Primary)
	styleRefInvalid  = lipgloss.NewStyle().Foreground(Vitesse.Red)
	styleFileValid   = lipgloss.NewStyle().Foreground(Vitesse.Cyan)
	styleFileInvalid = lipgloss.NewStyle().Foreground(Vitesse.Red)
	styleCommand     = lipgloss.NewStyle().Foreground(Vitesse.Yellow)
	styleSelection   = lipgloss.NewStyle().Background(Vitesse.BgSoft)
	styleCursor      = lipgloss.NewStyle().Reverse(true)
)

// BorderStyle returns a style with the standard border color.
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Border)
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// ChipStyle returns a style for colored nuggets in the status bar.
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(bg).Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}

// modeColor maps an editor mode chip to its accent color.
func modeColor(mode string) lipgloss.Color {
	switch mode {
	case "INSERT":
		return Vitesse.Primary
	case "VISUAL", "V-LINE":
		return Vitesse.Magenta
	case "O-PEND":
		return Vitesse.Yellow
	default:
		return Vitesse.Blue
	}
}
