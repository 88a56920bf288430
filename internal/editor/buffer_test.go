package editor

import "testing"

func TestBuffer_NewAndText(t *testing.T) {
	b := NewBuffer("hello\nworld")
	if b.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", b.LineCount())
	}
	if got := b.Text(); got != "hello\nworld" {
		t.Fatalf("round trip mismatch: %q", got)
	}

	empty := NewBuffer("")
	if empty.LineCount() != 1 {
		t.Fatalf("empty buffer must hold one line, got %d", empty.LineCount())
	}
}

func TestBuffer_InsertSingleUndoRecord(t *testing.T) {
	b := NewBuffer("ab")
	b.SetCursor(Position{Line: 0, Col: 1})
	b.Insert("XY\nZ")
	if got := b.Text(); got != "aXY\nZb" {
		t.Fatalf("insert result: %q", got)
	}
	if !b.Undo() {
		t.Fatalf("expected one undo record")
	}
	if got := b.Text(); got != "ab" {
		t.Fatalf("undo result: %q", got)
	}
	if b.Cursor() != (Position{Line: 0, Col: 1}) {
		t.Fatalf("undo cursor: %+v", b.Cursor())
	}
	if b.Undo() {
		t.Fatalf("second undo should be a no-op")
	}
}

func TestBuffer_DeleteRangeAcrossLines(t *testing.T) {
	b := NewBuffer("one\ntwo\nthree")
	removed := b.DeleteRange(Range{Start: Position{Line: 0, Col: 2}, End: Position{Line: 2, Col: 1}})
	if removed != "e\ntwo\nt" {
		t.Fatalf("removed text: %q", removed)
	}
	if got := b.Text(); got != "onhree" {
		t.Fatalf("after delete: %q", got)
	}
	if b.Cursor() != (Position{Line: 0, Col: 2}) {
		t.Fatalf("cursor after delete: %+v", b.Cursor())
	}
}

func TestBuffer_DeleteLinesNeverLeavesZeroLines(t *testing.T) {
	b := NewBuffer("only")
	removed := b.DeleteLines(0, 0)
	if removed != "only" {
		t.Fatalf("removed: %q", removed)
	}
	if b.LineCount() != 1 || b.Line(0) != "" {
		t.Fatalf("single-line delete must leave one empty line, got %d %q", b.LineCount(), b.Line(0))
	}
}

func TestBuffer_RedoClearedByNewEdit(t *testing.T) {
	b := NewBuffer("x")
	b.Insert("1")
	b.Undo()
	if !b.Redo() {
		t.Fatalf("redo should succeed after undo")
	}
	b.Undo()
	b.Insert("2")
	if b.Redo() {
		t.Fatalf("redo stack must be cleared by a fresh edit")
	}
}

func TestBuffer_PutLinewise(t *testing.T) {
	b := NewBuffer("alpha\nbeta")
	b.SetCursor(Position{Line: 0, Col: 2})
	b.Put("gamma", Linewise, true)
	if got := b.Text(); got != "alpha\ngamma\nbeta" {
		t.Fatalf("put below: %q", got)
	}
	if b.Cursor() != (Position{Line: 1, Col: 0}) {
		t.Fatalf("cursor after linewise put: %+v", b.Cursor())
	}

	b2 := NewBuffer("alpha")
	b2.Put("top", Linewise, false)
	if got := b2.Text(); got != "top\nalpha" {
		t.Fatalf("put above: %q", got)
	}
}

func TestBuffer_PutCharwise(t *testing.T) {
	b := NewBuffer("ad")
	b.SetCursor(Position{Line: 0, Col: 0})
	b.Put("bc", Charwise, true)
	if got := b.Text(); got != "abcd" {
		t.Fatalf("charwise put after: %q", got)
	}
}

func TestBuffer_SelectionRange(t *testing.T) {
	b := NewBuffer("hello")
	b.SetCursor(Position{Line: 0, Col: 3})
	b.SetSelection(Charwise)
	b.SetCursor(Position{Line: 0, Col: 1})
	r, kind, ok := b.SelectionRange()
	if !ok || kind != Charwise {
		t.Fatalf("expected charwise selection")
	}
	// inclusive of the rune under the anchor end, normalized to order
	if r.Start != (Position{Line: 0, Col: 1}) || r.End != (Position{Line: 0, Col: 4}) {
		t.Fatalf("selection range: %+v", r)
	}
}

func TestBuffer_CursorClampedAfterShorterLine(t *testing.T) {
	b := NewBuffer("long line here\nhi")
	b.SetCursor(Position{Line: 0, Col: 10})
	b.SetCursor(Position{Line: 1, Col: 10})
	if b.Cursor() != (Position{Line: 1, Col: 2}) {
		t.Fatalf("cursor not clamped: %+v", b.Cursor())
	}
}
