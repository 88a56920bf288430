package store

import (
	"encoding/json"
	"os"
	"sort"
	"time"
)

const indexVersion = 1

// indexEntry is one prompt's searchable metadata in .index.json.
type indexEntry struct {
	Name     string    `json:"name"`
	Tags     []string  `json:"tags,omitempty"`
	Folder   string    `json:"folder,omitempty"`
	Archived bool      `json:"archived,omitempty"`
	Modified time.Time `json:"modified"`
}

type index struct {
	Version int          `json:"version"`
	Updated time.Time    `json:"updated"`
	Entries []indexEntry `json:"entries"`
}

// rebuildIndexLocked rewrites .index.json from the in-memory entries.
// Callers hold s.mu.
func (s *Store) rebuildIndexLocked() error {
	idx := index{Version: indexVersion, Updated: time.Now().UTC()}
	for _, e := range s.entries {
		idx.Entries = append(idx.Entries, indexEntry{
			Name:     e.prompt.Name,
			Tags:     e.prompt.Tags,
			Folder:   e.folder,
			Archived: e.archived,
			Modified: e.prompt.Modified,
		})
	}
	sort.Slice(idx.Entries, func(i, j int) bool { return idx.Entries[i].Name < idx.Entries[j].Name })
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.indexPath, data, 0o644)
}
