package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"promptctl/internal/clipboard"
	"promptctl/internal/config"
	"promptctl/internal/store"
	"promptctl/internal/system"
	"promptctl/internal/testutil"
)

func init() {
	zone.NewGlobal()
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// press feeds one key and runs the returned command to completion.
func press(t *testing.T, m model, s string) model {
	t.Helper()
	next, cmd := m.Update(key(s))
	m = next.(model)
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m
}

func newTestModel(t *testing.T, contents ...string) (model, *store.Store, *clipboard.Memory) {
	t.Helper()
	testutil.WithTempHome(t)
	s, err := store.Open()
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range contents {
		if _, err := s.Create(c); err != nil {
			t.Fatal(err)
		}
	}
	m := initialModel(s, config.Default())
	mem := &clipboard.Memory{}
	m.clip = mem
	m.width, m.height = 100, 30
	return m, s, mem
}

func TestCopyRawKeepsTokensLiteral(t *testing.T) {
	m, _, mem := newTestModel(t, "body with [[ref]] and {{cmd}}")
	m = press(t, m, "Y")
	if mem.Writes != 1 {
		t.Fatalf("writes %d", mem.Writes)
	}
	if mem.Last != "body with [[ref]] and {{cmd}}" {
		t.Errorf("clipboard %q", mem.Last)
	}
}

func TestCopyResolvedExpandsReference(t *testing.T) {
	m, s, mem := newTestModel(t, "shared piece")
	p, _ := s.Create("uses the piece")
	p.Content = "before [[shared_piece]] after"
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	m.refreshList()
	// select the second prompt
	m = press(t, m, "j")
	if cur, _ := m.current(); cur.Name != "uses_the_piece" {
		t.Fatalf("selected %q", cur.Name)
	}
	m = press(t, m, "y")
	if mem.Last != "before shared piece after" {
		t.Errorf("clipboard %q", mem.Last)
	}
}

func TestSafeModeDeclineWritesNothing(t *testing.T) {
	m, s, mem := newTestModel(t)
	p, _ := s.Create("runner prompt")
	p.Content = "run {{echo hi}}"
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	m.refreshList()

	m = press(t, m, "y")
	if m.mode != modeConfirm {
		t.Fatalf("mode %v, want confirm", m.mode)
	}
	if len(m.confirmCmds) != 1 || m.confirmCmds[0] != "echo hi" {
		t.Fatalf("confirm commands %v", m.confirmCmds)
	}
	m = press(t, m, "n")
	if mem.Writes != 0 {
		t.Errorf("clipboard written on decline")
	}
	if m.mode != modeList {
		t.Errorf("mode %v after decline", m.mode)
	}
}

func TestSafeModeAcceptExecutes(t *testing.T) {
	m, s, mem := newTestModel(t)
	p, _ := s.Create("runner prompt")
	p.Content = "say {{echo hi}}"
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	m.refreshList()

	m = press(t, m, "y")
	m = press(t, m, "y") // confirm
	if mem.Writes != 1 {
		t.Fatalf("writes %d", mem.Writes)
	}
	if mem.Last != "say hi" {
		t.Errorf("clipboard %q", mem.Last)
	}
}

func TestConfirmDefaultsToCancel(t *testing.T) {
	m, s, mem := newTestModel(t)
	p, _ := s.Create("runner prompt")
	p.Content = "{{echo nope}}"
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	m.refreshList()

	m = press(t, m, "y")
	m = press(t, m, "enter") // default selection must cancel
	if mem.Writes != 0 {
		t.Errorf("default enter executed commands")
	}
}

func TestUnsafeModeSkipsConfirm(t *testing.T) {
	m, s, mem := newTestModel(t)
	p, _ := s.Create("runner prompt")
	p.Content = "{{echo fast}}"
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	m.refreshList()
	m.cfg.SafeMode = false

	m = press(t, m, "y")
	if m.mode == modeConfirm {
		t.Fatal("confirmation shown with safe mode off")
	}
	if mem.Last != "fast" {
		t.Errorf("clipboard %q", mem.Last)
	}
}

func TestEditInsertAndSave(t *testing.T) {
	m, s, _ := newTestModel(t, "hello")
	m = press(t, m, "enter")
	if m.mode != modeEdit {
		t.Fatalf("mode %v", m.mode)
	}
	m = press(t, m, "A") // append at end of line
	for _, r := range " world" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "esc") // back to normal
	m = press(t, m, "esc") // exit and save
	if m.mode != modeList {
		t.Fatalf("mode %v after exit", m.mode)
	}
	p, ok := s.Get("hello")
	if !ok || p.Content != "hello world" {
		t.Fatalf("saved content %q", p.Content)
	}
}

func TestEditUnchangedDoesNotTouchStore(t *testing.T) {
	m, s, _ := newTestModel(t, "stable")
	before, _ := s.Get("stable")
	m = press(t, m, "enter")
	m = press(t, m, "esc")
	after, _ := s.Get("stable")
	if !after.Modified.Equal(before.Modified) {
		t.Error("modified bumped without changes")
	}
}

func TestSearchFiltersList(t *testing.T) {
	m, _, _ := newTestModel(t, "alpha one", "beta two")
	m = press(t, m, "/")
	if m.mode != modeSearch {
		t.Fatalf("mode %v", m.mode)
	}
	for _, r := range "beta" {
		m = press(t, m, string(r))
	}
	if len(m.prompts) != 1 || m.prompts[0].Name != "beta_two" {
		t.Fatalf("filtered %v", m.prompts)
	}
	m = press(t, m, "esc")
	if len(m.prompts) != 2 {
		t.Fatalf("esc did not clear filter, %d prompts", len(m.prompts))
	}
}

func TestArchiveToggle(t *testing.T) {
	m, s, _ := newTestModel(t, "to archive")
	m = press(t, m, "A")
	if len(m.prompts) != 0 {
		t.Fatalf("active list %v", m.prompts)
	}
	if len(s.ListArchived()) != 1 {
		t.Fatal("prompt not archived")
	}
	m = press(t, m, "a")
	if !m.showArchived || len(m.prompts) != 1 {
		t.Fatalf("archive view %v", m.prompts)
	}
	m = press(t, m, "A") // restore
	if len(s.List()) != 1 {
		t.Fatal("prompt not restored")
	}
}

func TestRenameFlow(t *testing.T) {
	m, s, _ := newTestModel(t, "old thing")
	m = press(t, m, "r")
	if m.mode != modeRename {
		t.Fatalf("mode %v", m.mode)
	}
	m.renameInput.SetValue("")
	for _, r := range "new_thing" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	if _, ok := s.Get("new_thing"); !ok {
		t.Fatal("renamed prompt missing")
	}
	if _, ok := s.Get("old_thing"); ok {
		t.Fatal("old name still present")
	}
}

func TestSafeModeToggleKey(t *testing.T) {
	m, _, _ := newTestModel(t, "anything")
	if !m.cfg.SafeMode {
		t.Fatal("safe mode should default on")
	}
	m = press(t, m, "!")
	if m.cfg.SafeMode {
		t.Fatal("toggle did not turn safe mode off")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SafeMode {
		t.Fatal("toggle not persisted")
	}
}

func TestTagEditRoundTripsToDisk(t *testing.T) {
	m, s, _ := newTestModel(t, "tag me")
	m = press(t, m, "T")
	if m.mode != modeTags {
		t.Fatalf("mode %v", m.mode)
	}
	for _, r := range "git, review" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	if m.mode != modeList {
		t.Fatalf("mode %v after enter", m.mode)
	}
	// reload from disk so the tags must survive the frontmatter
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	p, ok := s.Get("tag_me")
	if !ok {
		t.Fatal("prompt missing after reload")
	}
	if len(p.Tags) != 2 || p.Tags[0] != "git" || p.Tags[1] != "review" {
		t.Fatalf("tags %v", p.Tags)
	}
	got := s.FilterByTag("review")
	if len(got) != 1 || got[0].Name != "tag_me" {
		t.Fatalf("filter by new tag %v", got)
	}
}

func TestTagEditClearAndEscape(t *testing.T) {
	m, s, _ := newTestModel(t, "tagged one")
	p, _ := s.Get("tagged_one")
	p.Tags = []string{"old"}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	m.refreshList()

	m = press(t, m, "T")
	if m.tagInput.Value() != "old" {
		t.Fatalf("input prefill %q", m.tagInput.Value())
	}
	m = press(t, m, "esc")
	if p, _ := s.Get("tagged_one"); len(p.Tags) != 1 {
		t.Fatalf("esc changed tags %v", p.Tags)
	}

	m = press(t, m, "T")
	m.tagInput.SetValue("")
	m = press(t, m, "enter")
	if p, _ := s.Get("tagged_one"); len(p.Tags) != 0 {
		t.Fatalf("tags not cleared %v", p.Tags)
	}
}

func TestConfirmCarriesResolveWarnings(t *testing.T) {
	m, s, mem := newTestModel(t)
	p, _ := s.Create("warny prompt")
	p.Content = "see [[nope]] then {{echo hi}}"
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	m.refreshList()

	var buf bytes.Buffer
	system.Logger.SetOutput(&buf)
	defer system.Logger.SetOutput(os.Stderr)

	m = press(t, m, "y")
	if m.mode != modeConfirm {
		t.Fatalf("mode %v, want confirm", m.mode)
	}
	if len(m.confirmDiags) != 1 || m.confirmDiags[0].Subject != "nope" {
		t.Fatalf("carried diagnostics %v", m.confirmDiags)
	}
	m = press(t, m, "y") // accept
	if mem.Writes != 1 {
		t.Fatalf("writes %d", mem.Writes)
	}
	if !strings.Contains(buf.String(), "nope") {
		t.Error("resolve warning lost across the confirmation")
	}
}

func TestViewRenders(t *testing.T) {
	m, _, _ := newTestModel(t, "view me [[missing]]")
	out := m.View()
	if !strings.Contains(out, "view_me") {
		t.Errorf("list entry missing from view")
	}
	if !strings.Contains(out, "promptctl") {
		t.Errorf("title missing from view")
	}
}
