package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"promptctl/internal/engine"
	appver "promptctl/internal/version"
)

const listWidth = 30

func (m model) contentWidth() int {
	w := m.width - listWidth - 4
	if w < 24 {
		w = 24
	}
	return w
}

func (m model) paneHeight() int {
	h := m.height - 4 // title, notice, status bar, spare
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	b := &strings.Builder{}
	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	left := zone.Mark("pane.list", m.renderListPane())
	right := zone.Mark("pane.content", m.renderContentPane())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	if m.notice != "" {
		style := lipgloss.NewStyle().Foreground(Vitesse.Secondary)
		if m.noticeErr {
			style = lipgloss.NewStyle().Foreground(Vitesse.Red)
		}
		b.WriteString("  " + style.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBarLine())
	return zone.Scan(b.String())
}

func (m model) renderTitle() string {
	title := AccentBold().Render("promptctl")
	sub := lipgloss.NewStyle().Foreground(Vitesse.Muted).Render("  prompts with [[references]] and {{commands}}")
	return " " + title + sub
}

func (m model) renderListPane() string {
	h := m.paneHeight()
	var rows []string

	header := "prompts"
	switch {
	case m.showArchived:
		header = "archive"
	case m.tagFilter != "":
		header = "tag: " + m.tagFilter
	case m.query != "":
		header = "search: " + m.query
	}
	rows = append(rows, AccentBold().Render(header))

	sel := lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(Vitesse.Primary)
	norm := lipgloss.NewStyle().Foreground(Vitesse.Text)
	tagStyle := lipgloss.NewStyle().Foreground(Vitesse.Muted)
	for i, p := range m.prompts {
		if len(rows) >= h {
			break
		}
		label := runewidth.Truncate(p.Name, listWidth-4, "…")
		line := "  " + label
		if i == m.selected {
			line = "▸ " + label
		}
		if len(p.Tags) > 0 {
			line += tagStyle.Render(" #" + strings.Join(p.Tags, " #"))
		}
		if i == m.selected {
			rows = append(rows, sel.Render(runewidth.Truncate(line, listWidth-2, "…")))
		} else {
			rows = append(rows, norm.Render(runewidth.Truncate(line, listWidth-2, "…")))
		}
	}
	if len(m.prompts) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(Vitesse.Muted).Render("  (empty) press n"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Vitesse.Border).
		Width(listWidth).
		Height(h)
	return box.Render(strings.Join(rows, "\n"))
}

func (m model) renderContentPane() string {
	w := m.contentWidth()
	h := m.paneHeight()
	borderColor := Vitesse.Border
	if m.mode == modeEdit {
		borderColor = modeColor(m.session.Mode().String())
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(w).
		Height(h)

	switch m.mode {
	case modeConfirm:
		return box.Render(m.renderConfirm(w))
	case modeRename:
		return box.Render("rename prompt\n\n" + m.renameInput.View())
	case modeTags:
		return box.Render("edit tags (comma separated)\n\n" + m.tagInput.View())
	case modeSearch:
		return box.Render(m.searchInput.View() + "\n\n" + m.renderBody(w, h-3))
	}
	return box.Render(m.renderBody(w, h-1))
}

func (m model) renderBody(w, maxLines int) string {
	if m.preview {
		return clipLines(m.previewText, maxLines)
	}
	var content string
	sess := m.session
	if m.mode == modeEdit && sess != nil {
		content = sess.Text()
	} else {
		p, ok := m.current()
		if !ok {
			return lipgloss.NewStyle().Foreground(Vitesse.Muted).Render("nothing selected")
		}
		content = p.Content
		sess = nil
	}
	spans := engine.Classify(content, m.store, m.files)
	lines := renderContent(content, spans, sess, w-2)

	// keep the cursor line visible
	top := 0
	if sess != nil {
		cl := sess.Buffer().Cursor().Line
		if cl >= maxLines {
			top = cl - maxLines + 1
		}
	}
	if top > len(lines) {
		top = len(lines)
	}
	end := top + maxLines
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[top:end], "\n")
}

func (m model) renderConfirm(w int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Yellow).Render("run embedded commands?"))
	b.WriteString("\n\n")
	for _, c := range m.confirmCmds {
		b.WriteString("  $ " + styleCommand.Render(c) + "\n")
	}
	b.WriteString("\n")
	var yes, no string
	if m.confirmIndex == 0 {
		yes = ChipStyle(Vitesse.Primary).Render("run")
		no = lipgloss.NewStyle().Foreground(Vitesse.Muted).Render(" cancel ")
	} else {
		yes = lipgloss.NewStyle().Foreground(Vitesse.Muted).Render(" run ")
		no = ChipStyle(Vitesse.Red).Render("cancel")
	}
	b.WriteString("  " + yes + "  " + no + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(Vitesse.Muted).Render("y/n, enter to choose"))
	return b.String()
}

func (m model) renderStatusBarLine() string {
	var chips []string
	switch m.mode {
	case modeEdit:
		ms := m.session.Mode().String()
		chips = append(chips, ChipStyle(modeColor(ms)).Render(ms))
	case modeConfirm:
		chips = append(chips, ChipStyle(Vitesse.Yellow).Render("CONFIRM"))
	default:
		chips = append(chips, ChipStyle(Vitesse.Blue).Render("LIST"))
	}
	if m.cfg.SafeMode {
		chips = append(chips, ChipStyle(Vitesse.Primary).Render("safe"))
	} else {
		chips = append(chips, ChipStyle(Vitesse.Red).Render("unsafe"))
	}
	right := fmt.Sprintf("%d prompts · v%s ", len(m.prompts), appver.AppVersion)
	return renderStatusBar(maxInt(m.width, 40), chips, right)
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
