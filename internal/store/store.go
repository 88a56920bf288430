// Package store persists prompts as markdown files with YAML
// frontmatter under the promptctl data directory and maintains the
// JSON search index alongside them.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"promptctl/internal/config"
	"promptctl/internal/prompt"
	"promptctl/internal/system"
)

// entry tracks where a loaded prompt lives on disk.
type entry struct {
	prompt   prompt.Prompt
	path     string
	folder   string
	archived bool
}

// Store is the on-disk prompt collection. Safe for concurrent use; the
// TUI and the HTTP server share one instance.
type Store struct {
	mu         sync.RWMutex
	promptsDir string
	archiveDir string
	foldersDir string
	indexPath  string
	entries    map[string]*entry
}

// Open locates the data directories, creates them if needed, and loads
// every prompt. Files that fail to parse are skipped with a warning so
// one broken file never blocks the collection.
func Open() (*Store, error) {
	promptsDir, err := config.PromptsDir()
	if err != nil {
		return nil, err
	}
	archiveDir, err := config.ArchiveDir()
	if err != nil {
		return nil, err
	}
	foldersDir, err := config.FoldersDir()
	if err != nil {
		return nil, err
	}
	indexPath, err := config.IndexPath()
	if err != nil {
		return nil, err
	}
	for _, dir := range []string{promptsDir, archiveDir, foldersDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	s := &Store{
		promptsDir: promptsDir,
		archiveDir: archiveDir,
		foldersDir: foldersDir,
		indexPath:  indexPath,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rescans the data directories from scratch.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]*entry{}
	if err := s.scanDir(s.promptsDir, "", false); err != nil {
		return err
	}
	if err := s.scanDir(s.archiveDir, "", true); err != nil {
		return err
	}
	folders, err := os.ReadDir(s.foldersDir)
	if err != nil {
		return err
	}
	for _, f := range folders {
		if !f.IsDir() {
			continue
		}
		if err := s.scanDir(filepath.Join(s.foldersDir, f.Name()), f.Name(), false); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) scanDir(dir, folder string, archived bool) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(f.Name(), ".md")
		path := filepath.Join(dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			system.Logger.Warn("skipping unreadable prompt", "path", path, "err", err)
			continue
		}
		p, err := prompt.Unmarshal(name, data)
		if err != nil {
			system.Logger.Warn("skipping broken prompt", "path", path, "err", err)
			continue
		}
		s.entries[name] = &entry{prompt: p, path: path, folder: folder, archived: archived}
	}
	return nil
}

// List returns all active prompts sorted by name.
func (s *Store) List() []prompt.Prompt {
	return s.filtered(func(e *entry) bool { return !e.archived })
}

// ListArchived returns archived prompts sorted by name.
func (s *Store) ListArchived() []prompt.Prompt {
	return s.filtered(func(e *entry) bool { return e.archived })
}

// ListFolder returns the active prompts inside folder.
func (s *Store) ListFolder(folder string) []prompt.Prompt {
	return s.filtered(func(e *entry) bool { return !e.archived && e.folder == folder })
}

func (s *Store) filtered(keep func(*entry) bool) []prompt.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []prompt.Prompt
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e.prompt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Folders returns the user folder names, sorted.
func (s *Store) Folders() ([]string, error) {
	files, err := os.ReadDir(s.foldersDir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range files {
		if f.IsDir() {
			out = append(out, f.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Get returns the prompt with the given name, archived or not.
func (s *Store) Get(name string) (prompt.Prompt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[name]
	if !ok {
		return prompt.Prompt{}, false
	}
	return e.prompt, true
}

// LookupByName returns the content of an active prompt. Archived
// prompts do not resolve.
func (s *Store) LookupByName(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[name]
	if !ok || e.archived {
		return "", false
	}
	return e.prompt.Content, true
}

// Exists reports whether an active prompt with the name is stored.
func (s *Store) Exists(name string) bool {
	_, ok := s.LookupByName(name)
	return ok
}

// Create stores a new prompt, deriving a unique name from its content.
func (s *Store) Create(content string) (prompt.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base := prompt.NameFromContent(content)
	name := prompt.UniqueName(base, func(n string) bool {
		_, taken := s.entries[n]
		return taken
	})
	p := prompt.New(name, content)
	path := filepath.Join(s.promptsDir, name+".md")
	if err := s.writePrompt(p, path); err != nil {
		return prompt.Prompt{}, err
	}
	s.entries[name] = &entry{prompt: p, path: path}
	return p, s.rebuildIndexLocked()
}

// Save writes back an existing prompt's content and tags, bumping its
// modified timestamp.
func (s *Store) Save(p prompt.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[p.Name]
	if !ok {
		return fmt.Errorf("prompt %q not found", p.Name)
	}
	p.ID = e.prompt.ID
	p.Created = e.prompt.Created
	p.Touch()
	if err := s.writePrompt(p, e.path); err != nil {
		return err
	}
	e.prompt = p
	return s.rebuildIndexLocked()
}

// Rename moves a prompt to a new name. The new name must be free.
func (s *Store) Rename(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[oldName]
	if !ok {
		return fmt.Errorf("prompt %q not found", oldName)
	}
	if newName == "" {
		return errors.New("empty name")
	}
	if _, taken := s.entries[newName]; taken {
		return fmt.Errorf("prompt %q already exists", newName)
	}
	newPath := filepath.Join(filepath.Dir(e.path), newName+".md")
	if err := os.Rename(e.path, newPath); err != nil {
		return err
	}
	delete(s.entries, oldName)
	e.path = newPath
	e.prompt.Name = newName
	e.prompt.Touch()
	s.entries[newName] = e
	if err := s.writePrompt(e.prompt, e.path); err != nil {
		return err
	}
	return s.rebuildIndexLocked()
}

// Delete removes a prompt's file permanently.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("prompt %q not found", name)
	}
	if err := os.Remove(e.path); err != nil {
		return err
	}
	delete(s.entries, name)
	return s.rebuildIndexLocked()
}

// Archive moves an active prompt into the archive directory.
func (s *Store) Archive(name string) error {
	return s.move(name, s.archiveDir, "", true)
}

// Unarchive moves an archived prompt back to the active set.
func (s *Store) Unarchive(name string) error {
	return s.move(name, s.promptsDir, "", false)
}

// CreateFolder makes a new empty folder.
func (s *Store) CreateFolder(folder string) error {
	if folder == "" || strings.ContainsAny(folder, `/\`) {
		return fmt.Errorf("invalid folder name %q", folder)
	}
	return os.MkdirAll(filepath.Join(s.foldersDir, folder), 0o755)
}

// MoveToFolder relocates an active prompt into folder. An empty folder
// name moves it back to the top level.
func (s *Store) MoveToFolder(name, folder string) error {
	dir := s.promptsDir
	if folder != "" {
		dir = filepath.Join(s.foldersDir, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return s.move(name, dir, folder, false)
}

func (s *Store) move(name, dir, folder string, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("prompt %q not found", name)
	}
	newPath := filepath.Join(dir, name+".md")
	if newPath == e.path {
		return nil
	}
	if err := os.Rename(e.path, newPath); err != nil {
		return err
	}
	e.path = newPath
	e.folder = folder
	e.archived = archived
	return s.rebuildIndexLocked()
}

func (s *Store) writePrompt(p prompt.Prompt, path string) error {
	data, err := prompt.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
