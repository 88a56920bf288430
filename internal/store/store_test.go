package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"promptctl/internal/prompt"
	"promptctl/internal/testutil"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	home := testutil.WithTempHome(t)
	s, err := Open()
	if err != nil {
		t.Fatal(err)
	}
	return s, home
}

func TestCreateAndGet(t *testing.T) {
	s, _ := openTestStore(t)
	p, err := s.Create("Review this diff\n")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "review_this_diff" {
		t.Errorf("name %q", p.Name)
	}
	got, ok := s.Get(p.Name)
	if !ok || got.Content != "Review this diff\n" {
		t.Fatalf("Get returned %v %v", got, ok)
	}
}

func TestCreateUniqueNames(t *testing.T) {
	s, _ := openTestStore(t)
	a, _ := s.Create("same line")
	b, err := s.Create("same line")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name == b.Name {
		t.Fatalf("duplicate name %q", b.Name)
	}
	if b.Name != a.Name+"_1" {
		t.Errorf("got %q", b.Name)
	}
}

func TestCreateEmptyContent(t *testing.T) {
	s, _ := openTestStore(t)
	p, err := s.Create("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "empty_prompt_1" {
		t.Errorf("name %q", p.Name)
	}
}

func TestSavePersists(t *testing.T) {
	s, _ := openTestStore(t)
	p, _ := s.Create("v1")
	p.Content = "v2"
	p.Tags = []string{"work"}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}

	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	got, ok := s.Get(p.Name)
	if !ok || got.Content != "v2" {
		t.Fatalf("after reload: %v %v", got, ok)
	}
	if !got.HasTag("work") {
		t.Error("tag lost")
	}
	if got.ID != p.ID {
		t.Error("id changed across save")
	}
}

func TestRename(t *testing.T) {
	s, home := openTestStore(t)
	p, _ := s.Create("old body")
	if err := s.Rename(p.Name, "renamed"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(p.Name); ok {
		t.Error("old name still present")
	}
	got, ok := s.Get("renamed")
	if !ok || got.Content != "old body" {
		t.Fatalf("renamed prompt %v %v", got, ok)
	}
	if _, err := os.Stat(filepath.Join(home, "prompts", "renamed.md")); err != nil {
		t.Error("renamed file missing on disk")
	}
}

func TestRenameCollision(t *testing.T) {
	s, _ := openTestStore(t)
	a, _ := s.Create("first one")
	b, _ := s.Create("second one")
	if err := s.Rename(a.Name, b.Name); err == nil {
		t.Fatal("expected collision error")
	}
}

func TestDelete(t *testing.T) {
	s, _ := openTestStore(t)
	p, _ := s.Create("doomed")
	if err := s.Delete(p.Name); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(p.Name); ok {
		t.Error("deleted prompt still present")
	}
	if s.Exists(p.Name) {
		t.Error("Exists true after delete")
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	p, _ := s.Create("keep me around")
	if err := s.Archive(p.Name); err != nil {
		t.Fatal(err)
	}
	if s.Exists(p.Name) {
		t.Error("archived prompt still resolves")
	}
	if len(s.ListArchived()) != 1 {
		t.Error("archive list empty")
	}
	if err := s.Unarchive(p.Name); err != nil {
		t.Fatal(err)
	}
	if !s.Exists(p.Name) {
		t.Error("unarchived prompt not active")
	}
}

func TestFolders(t *testing.T) {
	s, _ := openTestStore(t)
	p, _ := s.Create("foldered thing")
	if err := s.MoveToFolder(p.Name, "work"); err != nil {
		t.Fatal(err)
	}
	inFolder := s.ListFolder("work")
	if len(inFolder) != 1 || inFolder[0].Name != p.Name {
		t.Fatalf("folder contents %v", inFolder)
	}
	if !s.Exists(p.Name) {
		t.Error("foldered prompt should still resolve")
	}
	folders, err := s.Folders()
	if err != nil {
		t.Fatal(err)
	}
	if len(folders) != 1 || folders[0] != "work" {
		t.Fatalf("folders %v", folders)
	}
}

func TestBrokenFileSkipped(t *testing.T) {
	s, home := openTestStore(t)
	bad := filepath.Join(home, "prompts", "broken.md")
	if err := os.WriteFile(bad, []byte("---\ntags: [unclosed\n---\nx"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(home, "prompts", "fine.md")
	if err := os.WriteFile(good, []byte("plain body"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if !s.Exists("fine") {
		t.Error("good file not loaded")
	}
	if s.Exists("broken") {
		t.Error("broken file should be skipped")
	}
}

func TestIndexWritten(t *testing.T) {
	s, home := openTestStore(t)
	if _, err := s.Create("indexed entry"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(home, ".index.json"))
	if err != nil {
		t.Fatal(err)
	}
	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		t.Fatal(err)
	}
	if idx.Version != indexVersion || len(idx.Entries) != 1 {
		t.Fatalf("index %+v", idx)
	}
	if idx.Entries[0].Name != "indexed_entry" {
		t.Errorf("entry name %q", idx.Entries[0].Name)
	}
}

func TestSearch(t *testing.T) {
	s, _ := openTestStore(t)
	s.Create("git commit helper")
	s.Create("meeting notes template")

	hits := s.Search("gitcom")
	if len(hits) != 1 || hits[0].Name != "git_commit_helper" {
		t.Fatalf("hits %v", names(hits))
	}
	if got := s.Search(""); len(got) != 2 {
		t.Fatalf("empty query returned %d", len(got))
	}
}

func TestTagsAndFilter(t *testing.T) {
	s, _ := openTestStore(t)
	p, _ := s.Create("tagged prompt")
	p.Tags = []string{"review", "go"}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	s.Create("untagged prompt")

	tags := s.Tags()
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "review" {
		t.Fatalf("tags %v", tags)
	}
	byTag := s.FilterByTag("review")
	if len(byTag) != 1 || byTag[0].Name != p.Name {
		t.Fatalf("filter %v", names(byTag))
	}
}

func names(ps []prompt.Prompt) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
