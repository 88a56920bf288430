// Package prompt defines the prompt document model and its markdown
// serialization with YAML frontmatter.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Prompt is one stored prompt. Name is the filename stem and the key
// used by [[name]] references; it never lives in the frontmatter.
type Prompt struct {
	ID       string    `yaml:"id" json:"id"`
	Name     string    `yaml:"-" json:"name"`
	Content  string    `yaml:"-" json:"content"`
	Tags     []string  `yaml:"tags" json:"tags"`
	Created  time.Time `yaml:"created" json:"created"`
	Modified time.Time `yaml:"modified" json:"modified"`
}

// New builds a prompt with a fresh ID and both timestamps set to now.
func New(name, content string) Prompt {
	now := time.Now().UTC()
	return Prompt{
		ID:       uuid.NewString(),
		Name:     name,
		Content:  content,
		Created:  now,
		Modified: now,
	}
}

// Touch bumps the modified timestamp.
func (p *Prompt) Touch() {
	p.Modified = time.Now().UTC()
}

// HasTag reports whether the prompt carries tag.
func (p Prompt) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

const frontmatterFence = "---"

// Marshal renders the prompt as markdown with a YAML frontmatter block.
func Marshal(p Prompt) ([]byte, error) {
	meta, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString(frontmatterFence + "\n")
	b.Write(meta)
	b.WriteString(frontmatterFence + "\n")
	b.WriteString(p.Content)
	return []byte(b.String()), nil
}

// Unmarshal parses a markdown document with optional frontmatter. A
// document without a frontmatter block is all content; missing ID or
// timestamps are filled in so older files keep loading.
func Unmarshal(name string, data []byte) (Prompt, error) {
	p := Prompt{Name: name}
	text := string(data)
	meta, content, ok := splitFrontmatter(text)
	if !ok {
		p.Content = text
	} else {
		if err := yaml.Unmarshal([]byte(meta), &p); err != nil {
			return Prompt{}, fmt.Errorf("parse frontmatter for %s: %w", name, err)
		}
		p.Name = name
		p.Content = content
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Created.IsZero() {
		p.Created = time.Now().UTC()
	}
	if p.Modified.IsZero() {
		p.Modified = p.Created
	}
	return p, nil
}

func splitFrontmatter(text string) (meta, content string, ok bool) {
	if !strings.HasPrefix(text, frontmatterFence+"\n") {
		return "", "", false
	}
	rest := text[len(frontmatterFence)+1:]
	idx := strings.Index(rest, "\n"+frontmatterFence+"\n")
	if idx < 0 {
		return "", "", false
	}
	meta = rest[:idx+1]
	content = rest[idx+1+len(frontmatterFence)+1:]
	return meta, content, true
}
