package editor

// Register is the single-slot internal yank register. Every yank, delete
// or change overwrites it atomically. It is entirely separate from the OS
// clipboard; bridging happens only through explicit copy actions.
type Register struct {
	text string
	kind TextKind
}

// Set overwrites the register.
func (r *Register) Set(text string, kind TextKind) {
	r.text = text
	r.kind = kind
}

// Get returns the stored text and its shape.
func (r *Register) Get() (string, TextKind) {
	return r.text, r.kind
}

// Empty reports whether anything has been yanked yet.
func (r *Register) Empty() bool { return r.text == "" }
