package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"promptctl/internal/clipboard"
	"promptctl/internal/config"
	"promptctl/internal/engine"
	"promptctl/internal/store"
	"promptctl/internal/system"
)

// Commands

// watchCmd starts the filesystem watcher once; change events are
// forwarded through ch and picked up by waitChangeCmd.
func watchCmd(s *store.Store, ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		_, err := s.Watch(func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
		if err != nil {
			system.Logger.Warn("file watcher unavailable", "err", err)
		}
		return nil
	}
}

func waitChangeCmd(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

// copyRawCmd puts the literal content on the clipboard.
func copyRawCmd(clip clipboard.Writer, name, content string) tea.Cmd {
	return func() tea.Msg {
		if err := clip.Write(content); err != nil {
			return copiedMsg{name: name, err: err}
		}
		return copiedMsg{name: name, bytes: len(content)}
	}
}

// resolveCmd expands references and files. When safe mode is on and
// the result still contains commands, a confirmation is requested
// instead of executing them.
func resolveCmd(s *store.Store, files engine.FileAccess, clip clipboard.Writer, cfg config.Config, name, content string) tea.Cmd {
	return func() tea.Msg {
		resolved, diags := engine.Resolve(content, s, files, engine.NewContext(name))
		cmds := engine.FindCommands(resolved)
		if len(cmds) > 0 && cfg.SafeMode {
			return confirmMsg{name: name, resolved: resolved, commands: cmds, diags: diags}
		}
		return executeAndCopy(clip, name, resolved, diags)
	}
}

// runConfirmedCmd finishes a copy the user approved.
func runConfirmedCmd(clip clipboard.Writer, name, resolved string, diags []engine.Diagnostic) tea.Cmd {
	return func() tea.Msg {
		return executeAndCopy(clip, name, resolved, diags)
	}
}

func executeAndCopy(clip clipboard.Writer, name, resolved string, diags []engine.Diagnostic) tea.Msg {
	out, cmdDiags := engine.ExecuteInline(resolved, engine.ShellRunner{})
	for _, d := range append(diags, cmdDiags...) {
		system.Logger.Warn("resolution warning", "subject", d.Subject, "msg", d.Message)
	}
	if err := clip.Write(out); err != nil {
		return copiedMsg{name: name, err: err}
	}
	return copiedMsg{name: name, bytes: len(out)}
}

// previewCmd renders markdown through glamour for the preview pane.
func previewCmd(name, content string, width int) tea.Cmd {
	return func() tea.Msg {
		wrap := width - 4
		if wrap < 20 {
			wrap = 20
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return previewMsg{name: name, out: content}
		}
		out, err := r.Render(content)
		if err != nil {
			return previewMsg{name: name, out: content}
		}
		return previewMsg{name: name, out: out}
	}
}

func notifyCmd(format string, args ...any) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{text: fmt.Sprintf(format, args...)}
	}
}

func notifyErrCmd(format string, args ...any) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{text: fmt.Sprintf(format, args...), isErr: true}
	}
}
