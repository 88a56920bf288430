// Package clipboard is a thin seam over the system clipboard so the
// rest of the app can be tested without one.
package clipboard

import "github.com/atotto/clipboard"

// Writer copies text to a clipboard.
type Writer interface {
	Write(text string) error
}

// System writes to the real OS clipboard.
type System struct{}

func (System) Write(text string) error {
	return clipboard.WriteAll(text)
}

// Memory keeps the last written text, for tests and headless runs.
type Memory struct {
	Last   string
	Writes int
}

func (m *Memory) Write(text string) error {
	m.Last = text
	m.Writes++
	return nil
}
