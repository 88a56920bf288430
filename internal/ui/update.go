package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"promptctl/internal/config"
	"promptctl/internal/editor"
	"promptctl/internal/system"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = maxInt(10, msg.Width/2)
		m.renameInput.Width = maxInt(10, msg.Width/2)
		m.tagInput.Width = maxInt(10, msg.Width/2)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeRename:
			return m.updateRename(msg)
		case modeTags:
			return m.updateTags(msg)
		case modeSearch:
			return m.updateSearch(msg)
		default:
			return m.updateList(msg)
		}

	case storeChangedMsg:
		// external edits; the in-flight editor session keeps its copy
		if err := m.store.Reload(); err != nil {
			system.Logger.Warn("reload failed", "err", err)
		}
		m.refreshList()
		return m, waitChangeCmd(m.changes)

	case copiedMsg:
		if msg.err != nil {
			m.notice = "copy failed: " + msg.err.Error()
			m.noticeErr = true
		} else {
			m.notice = "copied " + msg.name
			m.noticeErr = false
		}
		return m, nil

	case confirmMsg:
		m.mode = modeConfirm
		m.confirmName = msg.name
		m.confirmResolved = msg.resolved
		m.confirmCmds = msg.commands
		m.confirmDiags = msg.diags
		m.confirmIndex = 1 // default to cancel
		return m, nil

	case previewMsg:
		m.preview = true
		m.previewText = msg.out
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		m.noticeErr = msg.isErr
		return m, nil
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.mode != modeList {
		return m, nil
	}
	if zone.Get("pane.list").InBounds(msg) {
		_, y := zone.Get("pane.list").Pos(msg)
		idx := y - 1 // first row is the pane title
		if idx >= 0 && idx < len(m.prompts) {
			m.selected = idx
			m.preview = false
		}
		return m, nil
	}
	if zone.Get("pane.content").InBounds(msg) {
		return m.startEdit()
	}
	return m, nil
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "j", "down":
		if m.selected < len(m.prompts)-1 {
			m.selected++
			m.preview = false
		}
		return m, nil
	case "k", "up":
		if m.selected > 0 {
			m.selected--
			m.preview = false
		}
		return m, nil
	case "g":
		m.selected = 0
		m.preview = false
		return m, nil
	case "G":
		if len(m.prompts) > 0 {
			m.selected = len(m.prompts) - 1
		}
		m.preview = false
		return m, nil
	case "enter", "i":
		return m.startEdit()
	case "n":
		p, err := m.store.Create("")
		if err != nil {
			return m, notifyErrCmd("create failed: %v", err)
		}
		m.query = ""
		m.tagFilter = ""
		m.showArchived = false
		m.refreshList()
		for i, q := range m.prompts {
			if q.Name == p.Name {
				m.selected = i
				break
			}
		}
		return m.startEdit()
	case "y":
		p, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, resolveCmd(m.store, m.files, m.clip, m.cfg, p.Name, p.Content)
	case "Y":
		p, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, copyRawCmd(m.clip, p.Name, p.Content)
	case "r":
		p, ok := m.current()
		if !ok {
			return m, nil
		}
		m.mode = modeRename
		m.renameInput.SetValue(p.Name)
		m.renameInput.Focus()
		return m, nil
	case "T":
		p, ok := m.current()
		if !ok {
			return m, nil
		}
		m.mode = modeTags
		m.tagInput.SetValue(strings.Join(p.Tags, ", "))
		m.tagInput.Focus()
		return m, nil
	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.query)
		m.searchInput.Focus()
		return m, nil
	case "t":
		m.cycleTagFilter()
		return m, nil
	case "a":
		m.showArchived = !m.showArchived
		m.selected = 0
		m.preview = false
		m.refreshList()
		return m, nil
	case "A":
		p, ok := m.current()
		if !ok {
			return m, nil
		}
		var err error
		var verb string
		if m.showArchived {
			err, verb = m.store.Unarchive(p.Name), "restored"
		} else {
			err, verb = m.store.Archive(p.Name), "archived"
		}
		if err != nil {
			return m, notifyErrCmd("%v", err)
		}
		m.refreshList()
		return m, notifyCmd("%s %s", verb, p.Name)
	case "D":
		p, ok := m.current()
		if !ok {
			return m, nil
		}
		if err := m.store.Delete(p.Name); err != nil {
			return m, notifyErrCmd("%v", err)
		}
		m.refreshList()
		return m, notifyCmd("deleted %s", p.Name)
	case "p":
		p, ok := m.current()
		if !ok {
			return m, nil
		}
		if m.preview {
			m.preview = false
			return m, nil
		}
		return m, previewCmd(p.Name, p.Content, m.contentWidth())
	case "!":
		m.cfg.SafeMode = !m.cfg.SafeMode
		if err := config.Save(m.cfg); err != nil {
			return m, notifyErrCmd("save config: %v", err)
		}
		if m.cfg.SafeMode {
			return m, notifyCmd("safe mode on")
		}
		return m, notifyCmd("safe mode off")
	case "esc":
		m.query = ""
		m.tagFilter = ""
		m.preview = false
		m.notice = ""
		m.refreshList()
		return m, nil
	}
	return m, nil
}

func (m model) startEdit() (tea.Model, tea.Cmd) {
	p, ok := m.current()
	if !ok {
		return m, nil
	}
	if m.showArchived {
		return m, notifyErrCmd("restore %s before editing", p.Name)
	}
	m.session = editor.Open(p.Content)
	m.editingName = p.Name
	m.mode = modeEdit
	m.preview = false
	m.notice = ""
	return m, nil
}

func (m model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev := m.session.HandleKey(msg.String())
	if ev == editor.EventExit {
		return m.finishEdit()
	}
	return m, nil
}

func (m model) finishEdit() (tea.Model, tea.Cmd) {
	name := m.editingName
	p, ok := m.store.Get(name)
	if !ok {
		m.mode = modeList
		m.session = nil
		return m, notifyErrCmd("%s disappeared while editing", name)
	}
	text := m.session.Text()
	m.mode = modeList
	m.session = nil
	m.editingName = ""
	if text == p.Content {
		return m, nil
	}
	p.Content = text
	if err := m.store.Save(p); err != nil {
		return m, notifyErrCmd("save failed: %v", err)
	}
	m.refreshList()
	return m, notifyCmd("saved %s", name)
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.confirmIndex = 1 - m.confirmIndex
		return m, nil
	case "y":
		return m.acceptConfirm()
	case "n", "esc":
		return m.declineConfirm()
	case "enter":
		if m.confirmIndex == 0 {
			return m.acceptConfirm()
		}
		return m.declineConfirm()
	}
	return m, nil
}

func (m model) acceptConfirm() (tea.Model, tea.Cmd) {
	name, resolved, diags := m.confirmName, m.confirmResolved, m.confirmDiags
	m.mode = modeList
	m.confirmCmds = nil
	m.confirmResolved = ""
	m.confirmDiags = nil
	return m, runConfirmedCmd(m.clip, name, resolved, diags)
}

func (m model) declineConfirm() (tea.Model, tea.Cmd) {
	m.mode = modeList
	m.confirmCmds = nil
	m.confirmResolved = ""
	m.confirmDiags = nil
	return m, notifyCmd("copy aborted")
}

func (m model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.renameInput.Blur()
		return m, nil
	case "enter":
		p, ok := m.current()
		newName := m.renameInput.Value()
		m.mode = modeList
		m.renameInput.Blur()
		if !ok || newName == "" || newName == p.Name {
			return m, nil
		}
		if err := m.store.Rename(p.Name, newName); err != nil {
			return m, notifyErrCmd("%v", err)
		}
		m.refreshList()
		for i, q := range m.prompts {
			if q.Name == newName {
				m.selected = i
				break
			}
		}
		return m, notifyCmd("renamed to %s", newName)
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m model) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.tagInput.Blur()
		return m, nil
	case "enter":
		p, ok := m.current()
		m.mode = modeList
		m.tagInput.Blur()
		if !ok {
			return m, nil
		}
		p.Tags = parseTags(m.tagInput.Value())
		if err := m.store.Save(p); err != nil {
			return m, notifyErrCmd("save failed: %v", err)
		}
		m.refreshList()
		if len(p.Tags) == 0 {
			return m, notifyCmd("cleared tags on %s", p.Name)
		}
		return m, notifyCmd("tagged %s", p.Name)
	}
	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	return m, cmd
}

// parseTags splits a comma or space separated tag line, dropping
// duplicates while keeping first-seen order.
func parseTags(v string) []string {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' '
	})
	var tags []string
	seen := map[string]bool{}
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			tags = append(tags, f)
		}
	}
	return tags
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.query = ""
		m.searchInput.Blur()
		m.refreshList()
		return m, nil
	case "enter":
		m.mode = modeList
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query = m.searchInput.Value()
	m.selected = 0
	m.refreshList()
	return m, cmd
}

func (m *model) cycleTagFilter() {
	tags := m.store.Tags()
	if len(tags) == 0 {
		m.tagFilter = ""
		return
	}
	if m.tagFilter == "" {
		m.tagFilter = tags[0]
	} else {
		next := ""
		for i, t := range tags {
			if t == m.tagFilter && i+1 < len(tags) {
				next = tags[i+1]
				break
			}
		}
		m.tagFilter = next
	}
	m.selected = 0
	m.refreshList()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
