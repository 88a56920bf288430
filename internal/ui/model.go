package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"promptctl/internal/clipboard"
	"promptctl/internal/config"
	"promptctl/internal/editor"
	"promptctl/internal/engine"
	"promptctl/internal/prompt"
	"promptctl/internal/store"
)

type appMode int

const (
	modeList appMode = iota
	modeEdit
	modeConfirm
	modeRename
	modeTags
	modeSearch
)

// Model for TUI
type model struct {
	store *store.Store
	cfg   config.Config
	clip  clipboard.Writer
	files engine.FileAccess

	prompts      []prompt.Prompt
	selected     int
	showArchived bool
	tagFilter    string
	query        string

	mode        appMode
	session     *editor.Session
	editingName string

	searchInput textinput.Model
	renameInput textinput.Model
	tagInput    textinput.Model

	// safe-mode confirmation overlay
	confirmName     string
	confirmResolved string
	confirmCmds     []string
	confirmDiags    []engine.Diagnostic
	confirmIndex    int // 0 = run, 1 = cancel

	preview     bool
	previewText string

	notice    string
	noticeErr bool

	width    int
	height   int
	changes  chan struct{}
	quitting bool
}

func initialModel(s *store.Store, cfg config.Config) model {
	m := model{
		store:   s,
		cfg:     cfg,
		clip:    clipboard.System{},
		files:   engine.OSFileAccess{},
		changes: make(chan struct{}, 1),
	}
	si := textinput.New()
	si.Prompt = " / "
	si.Placeholder = "search prompts"
	si.CharLimit = 128
	m.searchInput = si

	ri := textinput.New()
	ri.Prompt = " > "
	ri.Placeholder = "new name"
	ri.CharLimit = 128
	m.renameInput = ri

	ti := textinput.New()
	ti.Prompt = " # "
	ti.Placeholder = "tag1, tag2"
	ti.CharLimit = 128
	m.tagInput = ti

	m.refreshList()
	return m
}

// InitialModel is the public constructor for app.
func InitialModel(s *store.Store, cfg config.Config) tea.Model {
	return initialModel(s, cfg)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(watchCmd(m.store, m.changes), waitChangeCmd(m.changes))
}

// refreshList recomputes the visible prompt list from the current
// archive/tag/search filters, keeping the selection in range.
func (m *model) refreshList() {
	switch {
	case m.showArchived:
		m.prompts = m.store.ListArchived()
	case m.query != "":
		m.prompts = m.store.Search(m.query)
	case m.tagFilter != "":
		m.prompts = m.store.FilterByTag(m.tagFilter)
	default:
		m.prompts = m.store.List()
	}
	if m.selected >= len(m.prompts) {
		m.selected = len(m.prompts) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m model) current() (prompt.Prompt, bool) {
	if m.selected < 0 || m.selected >= len(m.prompts) {
		return prompt.Prompt{}, false
	}
	return m.prompts[m.selected], true
}
