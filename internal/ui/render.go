package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"promptctl/internal/editor"
	"promptctl/internal/engine"
)

func spanStyle(class engine.SpanClass) lipgloss.Style {
	switch class {
	case engine.SpanRefValid:
		return styleRefValid
	case engine.SpanRefInvalid:
		return styleRefInvalid
	case engine.SpanFileValid:
		return styleFileValid
	case engine.SpanFileInvalid:
		return styleFileInvalid
	default:
		return styleCommand
	}
}

// renderContent colors token spans and, when a session is supplied,
// overlays the selection and cursor. Cursor beats selection beats token
// coloring. Returns one rendered string per buffer line, truncated to
// width.
func renderContent(content string, spans []engine.Span, sess *editor.Session, width int) []string {
	lines := strings.Split(content, "\n")

	var cur *editor.Position
	var selRange editor.Range
	var selKind editor.TextKind
	hasSel := false
	if sess != nil {
		c := sess.Buffer().Cursor()
		cur = &c
		selRange, selKind, hasSel = sess.Buffer().SelectionRange()
	}

	inSelection := func(line, col int) bool {
		if !hasSel {
			return false
		}
		if selKind == editor.Linewise {
			return line >= selRange.Start.Line && line <= selRange.End.Line
		}
		p := editor.Position{Line: line, Col: col}
		return !p.Less(selRange.Start) && p.Less(selRange.End)
	}

	out := make([]string, len(lines))
	byteOff := 0
	spanIdx := 0
	for li, line := range lines {
		var b strings.Builder
		var runStyle lipgloss.Style
		runClass := -1
		var run strings.Builder
		flush := func() {
			if run.Len() > 0 {
				if runClass == 0 {
					b.WriteString(run.String())
				} else {
					b.WriteString(runStyle.Render(run.String()))
				}
				run.Reset()
			}
			runClass = -1
		}
		col := 0
		for _, r := range line {
			// advance spans past this offset
			for spanIdx < len(spans) && spans[spanIdx].End <= byteOff {
				spanIdx++
			}
			style := lipgloss.NewStyle()
			class := 0
			switch {
			case cur != nil && li == cur.Line && col == cur.Col:
				style, class = styleCursor, 1
			case inSelection(li, col):
				style, class = styleSelection, 2
			case spanIdx < len(spans) && byteOff >= spans[spanIdx].Start:
				style, class = spanStyle(spans[spanIdx].Class), 3+int(spans[spanIdx].Class)
			}
			if class != runClass {
				flush()
				runStyle, runClass = style, class
			}
			run.WriteRune(r)
			byteOff += len(string(r))
			col++
		}
		flush()
		// cursor sits past the last rune (insert mode at line end)
		if cur != nil && li == cur.Line && cur.Col >= col {
			b.WriteString(styleCursor.Render(" "))
		}
		byteOff++ // the newline
		out[li] = xansi.Truncate(b.String(), width, "…")
	}
	return out
}

// renderStatusBar draws one line with left chips and right-aligned text.
func renderStatusBar(width int, chips []string, right string) string {
	left := strings.Join(chips, " ")
	lw := xansi.StringWidth(left)
	rw := xansi.StringWidth(right)
	pad := width - lw - rw
	if pad < 1 {
		pad = 1
	}
	return StatusBarBase().Render(left + strings.Repeat(" ", pad) + right)
}
