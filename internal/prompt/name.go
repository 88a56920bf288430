package prompt

import (
	"fmt"
	"strings"
)

const nameMaxLen = 20

// NameFromContent derives a filename-safe name from the first
// non-empty content line: lowercase ascii letters, digits and
// underscores, capped around 20 characters without splitting a word.
func NameFromContent(content string) string {
	line := firstLine(content)
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(line) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	name := strings.Trim(b.String(), "_")
	if len(name) > nameMaxLen {
		cut := nameMaxLen
		if name[nameMaxLen] != '_' {
			if i := strings.LastIndexByte(name[:nameMaxLen], '_'); i > 0 {
				cut = i
			}
		}
		name = strings.Trim(name[:cut], "_")
	}
	return name
}

func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

// UniqueName makes base collision-free against taken by appending _N.
// An empty base becomes empty_prompt_N.
func UniqueName(base string, taken func(string) bool) string {
	if base == "" {
		for n := 1; ; n++ {
			candidate := fmt.Sprintf("empty_prompt_%d", n)
			if !taken(candidate) {
				return candidate
			}
		}
	}
	if !taken(base) {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
