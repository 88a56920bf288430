package ui

import "promptctl/internal/engine"

// Bubble Tea messages
type storeChangedMsg struct{}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	name  string
	bytes int
	err   error
}

// confirmMsg asks the user to approve embedded commands before they
// run. Diagnostics from the resolve stage ride along so they are still
// reported when the copy goes through.
type confirmMsg struct {
	name     string
	resolved string
	commands []string
	diags    []engine.Diagnostic
}

// previewMsg carries a glamour-rendered markdown body.
type previewMsg struct {
	name string
	out  string
}

// generic notification line above the status bar
type noticeMsg struct {
	text  string
	isErr bool
}
