package editor

import "strings"

// Position addresses a rune in the buffer. Col may equal the line length
// (the insert position past the last rune).
type Position struct {
	Line int
	Col  int
}

// Less reports document order.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Range is a half-open span [Start, End) in document order.
type Range struct {
	Start Position
	End   Position
}

// TextKind distinguishes character-wise from line-wise text, both for
// selections and for the yank register.
type TextKind int

const (
	Charwise TextKind = iota
	Linewise
)

// Selection is an active visual selection anchored at Anchor; the moving
// end is the buffer cursor.
type Selection struct {
	Anchor Position
	Kind   TextKind
}

type snapshot struct {
	lines  [][]rune
	cursor Position
}

// Buffer is the mutable, line-oriented content of one prompt under edit.
// It always contains at least one line. Undo history is a stack of
// snapshots; one snapshot per logical edit, pushed lazily at the first
// mutation of a group.
type Buffer struct {
	lines  [][]rune
	cursor Position
	sel    *Selection

	undo    []snapshot
	redo    []snapshot
	pending *snapshot
}

// NewBuffer builds a buffer from raw content. Empty content yields a
// single empty line.
func NewBuffer(content string) *Buffer {
	raw := strings.Split(content, "\n")
	lines := make([][]rune, len(raw))
	for i, l := range raw {
		lines[i] = []rune(l)
	}
	return &Buffer{lines: lines}
}

// Text reassembles the buffer content.
func (b *Buffer) Text() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Lines returns the buffer lines as strings, for rendering.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line i as a string; out-of-range yields "".
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

func (b *Buffer) lineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

func (b *Buffer) Cursor() Position { return b.cursor }

// SetCursor moves the cursor, clamped to the buffer.
func (b *Buffer) SetCursor(p Position) {
	b.cursor = b.clamp(p)
}

func (b *Buffer) clamp(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := b.lineLen(p.Line); p.Col > n {
		p.Col = n
	}
	return p
}

// Selection returns the active selection, or nil.
func (b *Buffer) Selection() *Selection { return b.sel }

// SetSelection anchors a selection of the given kind at the cursor.
func (b *Buffer) SetSelection(kind TextKind) {
	b.sel = &Selection{Anchor: b.cursor, Kind: kind}
}

// SetSelectionKind switches an active selection between char/line kind
// without moving the anchor.
func (b *Buffer) SetSelectionKind(kind TextKind) {
	if b.sel != nil {
		b.sel.Kind = kind
	}
}

func (b *Buffer) ClearSelection() { b.sel = nil }

// SelectionRange normalizes the active selection into a range. Charwise
// selections are inclusive of the rune under the moving end, so End.Col
// is advanced by one.
func (b *Buffer) SelectionRange() (Range, TextKind, bool) {
	if b.sel == nil {
		return Range{}, Charwise, false
	}
	a, c := b.sel.Anchor, b.cursor
	if c.Less(a) {
		a, c = c, a
	}
	if b.sel.Kind == Linewise {
		return Range{Start: Position{Line: a.Line}, End: Position{Line: c.Line}}, Linewise, true
	}
	if c.Col < b.lineLen(c.Line) {
		c.Col++
	}
	return Range{Start: a, End: c}, Charwise, true
}

// BeginGroup opens a new undo group. The snapshot is committed to the
// undo stack at the first mutation; a group with no mutations leaves no
// record.
func (b *Buffer) BeginGroup() {
	snap := b.snapshot()
	b.pending = &snap
}

func (b *Buffer) snapshot() snapshot {
	lines := make([][]rune, len(b.lines))
	for i, l := range b.lines {
		lines[i] = append([]rune(nil), l...)
	}
	return snapshot{lines: lines, cursor: b.cursor}
}

func (b *Buffer) commit() {
	if b.pending == nil {
		return
	}
	b.undo = append(b.undo, *b.pending)
	b.pending = nil
	b.redo = nil
}

// Undo restores the most recent snapshot, including the cursor position
// it carried. Returns false on an empty stack.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	b.pending = nil
	b.redo = append(b.redo, b.snapshot())
	top := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.lines = top.lines
	b.cursor = b.clamp(top.cursor)
	b.sel = nil
	return true
}

// Redo re-applies the most recently undone change.
func (b *Buffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	b.undo = append(b.undo, b.snapshot())
	top := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	b.lines = top.lines
	b.cursor = b.clamp(top.cursor)
	b.sel = nil
	return true
}

// --- raw mutators (no undo bookkeeping beyond committing an open group) ---

// insertRuneRaw inserts r at the cursor and advances it. Used by the
// insert-mode typing loop so a whole insert run shares one undo group.
func (b *Buffer) insertRuneRaw(r rune) {
	b.commit()
	line := b.lines[b.cursor.Line]
	col := b.cursor.Col
	line = append(line[:col:col], append([]rune{r}, line[col:]...)...)
	b.lines[b.cursor.Line] = line
	b.cursor.Col++
}

// insertNewlineRaw splits the current line at the cursor.
func (b *Buffer) insertNewlineRaw() {
	b.commit()
	line := b.lines[b.cursor.Line]
	col := b.cursor.Col
	rest := append([]rune(nil), line[col:]...)
	b.lines[b.cursor.Line] = line[:col:col]
	b.lines = append(b.lines[:b.cursor.Line+1:b.cursor.Line+1],
		append([][]rune{rest}, b.lines[b.cursor.Line+1:]...)...)
	b.cursor = Position{Line: b.cursor.Line + 1, Col: 0}
}

// deleteBackwardRaw removes the rune before the cursor, joining lines at
// column zero. No-op at the start of the buffer.
func (b *Buffer) deleteBackwardRaw() {
	if b.cursor.Col == 0 && b.cursor.Line == 0 {
		return
	}
	b.commit()
	if b.cursor.Col > 0 {
		line := b.lines[b.cursor.Line]
		col := b.cursor.Col
		b.lines[b.cursor.Line] = append(line[:col-1:col-1], line[col:]...)
		b.cursor.Col--
		return
	}
	prev := b.cursor.Line - 1
	newCol := b.lineLen(prev)
	b.lines[prev] = append(b.lines[prev], b.lines[b.cursor.Line]...)
	b.lines = append(b.lines[:b.cursor.Line], b.lines[b.cursor.Line+1:]...)
	b.cursor = Position{Line: prev, Col: newCol}
}

// removeRange deletes [Start, End) and returns the removed text. The
// cursor lands at Start, clamped.
func (b *Buffer) removeRange(r Range) string {
	r.Start = b.clamp(r.Start)
	r.End = b.clamp(r.End)
	if r.End.Less(r.Start) {
		r.Start, r.End = r.End, r.Start
	}
	if r.Start == r.End {
		return ""
	}
	b.commit()
	removed := b.textInRange(r)
	if r.Start.Line == r.End.Line {
		line := b.lines[r.Start.Line]
		b.lines[r.Start.Line] = append(line[:r.Start.Col:r.Start.Col], line[r.End.Col:]...)
	} else {
		head := b.lines[r.Start.Line][:r.Start.Col:r.Start.Col]
		tail := b.lines[r.End.Line][r.End.Col:]
		b.lines[r.Start.Line] = append(head, tail...)
		b.lines = append(b.lines[:r.Start.Line+1], b.lines[r.End.Line+1:]...)
	}
	b.cursor = b.clamp(r.Start)
	return removed
}

// removeLines deletes lines [from, to] inclusive and returns their text.
// Deleting every line leaves a single empty one.
func (b *Buffer) removeLines(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to >= len(b.lines) {
		to = len(b.lines) - 1
	}
	if from > to {
		return ""
	}
	b.commit()
	parts := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		parts = append(parts, string(b.lines[i]))
	}
	b.lines = append(b.lines[:from], b.lines[to+1:]...)
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
	line := from
	if line >= len(b.lines) {
		line = len(b.lines) - 1
	}
	b.cursor = b.clamp(Position{Line: line})
	return strings.Join(parts, "\n")
}

func (b *Buffer) textInRange(r Range) string {
	if r.Start.Line == r.End.Line {
		return string(b.lines[r.Start.Line][r.Start.Col:r.End.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[r.Start.Line][r.Start.Col:]))
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[r.End.Line][:r.End.Col]))
	return sb.String()
}

// --- grouped public operations: exactly one undo record each ---

// Insert places text at the cursor as a single undoable edit.
func (b *Buffer) Insert(text string) {
	if text == "" {
		return
	}
	b.BeginGroup()
	for _, r := range text {
		if r == '\n' {
			b.insertNewlineRaw()
		} else {
			b.insertRuneRaw(r)
		}
	}
}

// DeleteRange removes [Start, End) as one undoable edit and returns the
// removed text.
func (b *Buffer) DeleteRange(r Range) string {
	b.BeginGroup()
	return b.removeRange(r)
}

// DeleteLines removes whole lines [from, to] as one undoable edit.
func (b *Buffer) DeleteLines(from, to int) string {
	b.BeginGroup()
	return b.removeLines(from, to)
}

// Yank returns the text in a range without mutating anything.
func (b *Buffer) Yank(r Range) string {
	r.Start = b.clamp(r.Start)
	r.End = b.clamp(r.End)
	if r.End.Less(r.Start) {
		r.Start, r.End = r.End, r.Start
	}
	if r.Start == r.End {
		return ""
	}
	return b.textInRange(r)
}

// YankLines returns whole lines [from, to] inclusive.
func (b *Buffer) YankLines(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to >= len(b.lines) {
		to = len(b.lines) - 1
	}
	if from > to {
		return ""
	}
	parts := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		parts = append(parts, string(b.lines[i]))
	}
	return strings.Join(parts, "\n")
}

// Put inserts register text. Charwise text goes inline (after the cursor
// rune when after is true); linewise text becomes whole lines below or
// above the cursor line. One undo record either way.
func (b *Buffer) Put(text string, kind TextKind, after bool) {
	if text == "" {
		return
	}
	b.BeginGroup()
	if kind == Linewise {
		b.commit()
		newLines := strings.Split(text, "\n")
		at := b.cursor.Line
		if after {
			at++
		}
		block := make([][]rune, len(newLines))
		for i, l := range newLines {
			block[i] = []rune(l)
		}
		b.lines = append(b.lines[:at:at], append(block, b.lines[at:]...)...)
		b.cursor = Position{Line: at, Col: 0}
		return
	}
	if after && b.cursor.Col < b.lineLen(b.cursor.Line) {
		b.cursor.Col++
	}
	for _, r := range text {
		if r == '\n' {
			b.insertNewlineRaw()
		} else {
			b.insertRuneRaw(r)
		}
	}
}

// openLineAt makes line i a fresh empty line to type into, pushing any
// existing content down. If the buffer is already a single empty line the
// cursor just moves there.
func (b *Buffer) openLineAt(i int) {
	if i >= len(b.lines) {
		i = len(b.lines) - 1
	}
	if i < 0 {
		i = 0
	}
	if !(len(b.lines) == 1 && len(b.lines[0]) == 0) {
		b.commit()
		b.lines = append(b.lines[:i:i], append([][]rune{{}}, b.lines[i:]...)...)
	}
	b.cursor = Position{Line: i, Col: 0}
}

// ClampNormal pulls the cursor back onto the last rune of the line, the
// resting position for normal mode.
func (b *Buffer) ClampNormal() {
	if n := b.lineLen(b.cursor.Line); b.cursor.Col >= n && n > 0 {
		b.cursor.Col = n - 1
	}
}
