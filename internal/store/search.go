package store

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"promptctl/internal/prompt"
)

// Search fuzzy-matches query against active prompt names and tags,
// best matches first. An empty query returns everything.
func (s *Store) Search(query string) []prompt.Prompt {
	active := s.List()
	if strings.TrimSpace(query) == "" {
		return active
	}
	haystack := make([]string, len(active))
	for i, p := range active {
		haystack[i] = p.Name + " " + strings.Join(p.Tags, " ")
	}
	matches := fuzzy.Find(query, haystack)
	out := make([]prompt.Prompt, 0, len(matches))
	for _, m := range matches {
		out = append(out, active[m.Index])
	}
	return out
}

// FilterByTag returns the active prompts carrying tag.
func (s *Store) FilterByTag(tag string) []prompt.Prompt {
	var out []prompt.Prompt
	for _, p := range s.List() {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Tags returns the distinct tags across active prompts, sorted.
func (s *Store) Tags() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range s.List() {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
