package engine

import (
	"fmt"
	"os"
	"strings"
)

// MaxDepth caps nested reference expansion from the copy root.
const MaxDepth = 10

// Repository looks up prompt content by name. Implemented by the on-disk
// store; tests use in-memory maps.
type Repository interface {
	LookupByName(name string) (string, bool)
	Exists(name string) bool
}

// FileAccess reads files referenced by [[file:path]] tokens. Paths are
// relative to the process working directory.
type FileAccess interface {
	ReadFile(path string) (string, error)
	FileExists(path string) bool
}

// Confirmer gates command execution in safe mode. Confirm blocks until
// the user answers and returns false to abort the whole copy.
type Confirmer interface {
	Confirm(commands []string) bool
}

// OSFileAccess is the real-filesystem FileAccess.
type OSFileAccess struct{}

func (OSFileAccess) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (OSFileAccess) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DiagKind classifies resolution diagnostics. Diagnostics drive the
// display only; failures are always also embedded in the output text.
type DiagKind int

const (
	DiagLookupMiss DiagKind = iota
	DiagCycle
	DiagDepth
	DiagFileError
	DiagCommandError
)

// Diagnostic records one recovered resolution failure.
type Diagnostic struct {
	Kind    DiagKind
	Subject string
	Message string
}

// Context threads cycle and depth state through recursive resolution.
// It is passed by value; child contexts copy the ancestor list so
// sibling branches never see each other's names.
type Context struct {
	ancestors []string
	Depth     int
}

// NewContext seeds resolution with the name of the prompt being
// resolved, so a direct self-reference is caught at the first hop.
func NewContext(root string) Context {
	return Context{ancestors: []string{root}}
}

func (c Context) has(name string) bool {
	for _, a := range c.ancestors {
		if a == name {
			return true
		}
	}
	return false
}

func (c Context) with(name string) Context {
	next := make([]string, len(c.ancestors), len(c.ancestors)+1)
	copy(next, c.ancestors)
	return Context{ancestors: append(next, name), Depth: c.Depth + 1}
}

// Resolve expands reference and file tokens in content, in document
// order. Command tokens pass through untouched; they belong to the
// execution stage. Resolution never fails: every problem is embedded as
// self-describing text and reported as a diagnostic.
func Resolve(content string, repo Repository, files FileAccess, ctx Context) (string, []Diagnostic) {
	tokens := Scan(content)
	var out strings.Builder
	var diags []Diagnostic
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenReference:
			text, d := resolveReference(tok, repo, files, ctx)
			out.WriteString(text)
			diags = append(diags, d...)
		case TokenFileReference:
			text, d := resolveFile(tok, files)
			out.WriteString(text)
			diags = append(diags, d...)
		default:
			out.WriteString(tok.Raw)
		}
	}
	return out.String(), diags
}

func resolveReference(tok Token, repo Repository, files FileAccess, ctx Context) (string, []Diagnostic) {
	name := tok.Text
	if ctx.has(name) {
		return fmt.Sprintf("<!-- [CIRCULAR REFERENCE DETECTED: %s] -->", name),
			[]Diagnostic{{Kind: DiagCycle, Subject: name, Message: "circular reference"}}
	}
	if ctx.Depth >= MaxDepth {
		return tok.Raw,
			[]Diagnostic{{Kind: DiagDepth, Subject: name, Message: fmt.Sprintf("max depth %d exceeded", MaxDepth)}}
	}
	body, ok := repo.LookupByName(name)
	if !ok {
		// invalid references are copied verbatim; highlighting flags them
		return tok.Raw,
			[]Diagnostic{{Kind: DiagLookupMiss, Subject: name, Message: "prompt not found"}}
	}
	resolved, diags := Resolve(body, repo, files, ctx.with(name))
	return resolved, diags
}

func resolveFile(tok Token, files FileAccess) (string, []Diagnostic) {
	content, err := files.ReadFile(tok.Text)
	if err != nil {
		return fmt.Sprintf("<!-- [FILE ERROR: %s - %v] -->", tok.Text, err),
			[]Diagnostic{{Kind: DiagFileError, Subject: tok.Text, Message: err.Error()}}
	}
	return content, nil
}
