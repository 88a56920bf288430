package editor

// Mode is the modal editing state. Exactly one is active per session; it
// belongs to the session, not the buffer.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeVisualLine
	ModeOperatorPending
)

// String returns the display label shown in the status bar.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "V-LINE"
	case ModeOperatorPending:
		return "O-PEND"
	default:
		return "NORMAL"
	}
}

// CursorHint tells the renderer which cursor shape fits the mode.
func (m Mode) CursorHint() string {
	switch m {
	case ModeInsert:
		return "bar"
	case ModeVisual, ModeVisualLine:
		return "underline"
	default:
		return "block"
	}
}

// Operator is a pending d/c/y awaiting its motion.
type Operator int

const (
	OpNone Operator = iota
	OpDelete
	OpChange
	OpYank
)

// Event reports what a key press did, for the caller's benefit.
type Event int

const (
	// EventNone: mode or cursor may have moved, content did not.
	EventNone Event = iota
	// EventChanged: buffer content changed; re-highlight.
	EventChanged
	// EventExit: the user left the editor (Esc in normal mode); save.
	EventExit
)

// Session is one modal editing session over one prompt's content.
type Session struct {
	buf     *Buffer
	mode    Mode
	pending Operator
	reg     Register
}

// Open starts an editing session on the given content, in normal mode.
func Open(content string) *Session {
	return &Session{buf: NewBuffer(content)}
}

func (s *Session) Buffer() *Buffer     { return s.buf }
func (s *Session) Mode() Mode          { return s.mode }
func (s *Session) Pending() Operator   { return s.pending }
func (s *Session) Text() string        { return s.buf.Text() }
func (s *Session) Register() *Register { return &s.reg }

// motionForKey maps a key string (bubbletea naming) to a motion.
func motionForKey(key string) (Motion, bool) {
	switch key {
	case "h", "left":
		return MotionLeft, true
	case "l", "right":
		return MotionRight, true
	case "k", "up":
		return MotionUp, true
	case "j", "down":
		return MotionDown, true
	case "w":
		return MotionWordForward, true
	case "b":
		return MotionWordBack, true
	case "e":
		return MotionWordEnd, true
	case "0", "home":
		return MotionLineStart, true
	case "^":
		return MotionFirstNonBlank, true
	case "$", "end":
		return MotionLineEnd, true
	case "{":
		return MotionParaPrev, true
	case "}":
		return MotionParaNext, true
	case "g":
		return MotionFileStart, true
	case "G":
		return MotionFileEnd, true
	}
	return MotionNone, false
}

// linewiseMotion reports motions that operate on whole lines when
// combined with an operator (dj deletes two lines, dG to end of file).
func linewiseMotion(m Motion) bool {
	switch m {
	case MotionUp, MotionDown, MotionFileStart, MotionFileEnd:
		return true
	}
	return false
}

// HandleKey interprets one key event. It is the single entry point of the
// modal state machine; each mode has its own handler.
func (s *Session) HandleKey(key string) Event {
	switch s.mode {
	case ModeInsert:
		return s.handleInsert(key)
	case ModeVisual, ModeVisualLine:
		return s.handleVisual(key)
	case ModeOperatorPending:
		return s.handleOperatorPending(key)
	default:
		return s.handleNormal(key)
	}
}

func (s *Session) handleNormal(key string) Event {
	b := s.buf
	switch key {
	case "esc":
		return EventExit

	// insert-mode entries; the undo group opens before the cursor is
	// positioned so undo restores the original spot
	case "i":
		b.BeginGroup()
		s.mode = ModeInsert
	case "I":
		b.BeginGroup()
		b.SetCursor(b.MotionTarget(MotionFirstNonBlank, b.Cursor()))
		s.mode = ModeInsert
	case "a":
		b.BeginGroup()
		b.SetCursor(Position{Line: b.Cursor().Line, Col: b.Cursor().Col + 1})
		s.mode = ModeInsert
	case "A":
		b.BeginGroup()
		b.SetCursor(b.MotionTarget(MotionLineEnd, b.Cursor()))
		s.mode = ModeInsert
	case "o":
		b.BeginGroup()
		b.SetCursor(b.MotionTarget(MotionLineEnd, b.Cursor()))
		b.insertNewlineRaw()
		s.mode = ModeInsert
		return EventChanged
	case "O":
		b.BeginGroup()
		line := b.Cursor().Line
		b.SetCursor(Position{Line: line, Col: 0})
		b.insertNewlineRaw()
		b.SetCursor(Position{Line: line, Col: 0})
		s.mode = ModeInsert
		return EventChanged

	case "v":
		b.SetSelection(Charwise)
		s.mode = ModeVisual
	case "V":
		b.SetSelection(Linewise)
		s.mode = ModeVisualLine

	case "d":
		s.pending = OpDelete
		s.mode = ModeOperatorPending
	case "c":
		s.pending = OpChange
		s.mode = ModeOperatorPending
	case "y":
		s.pending = OpYank
		s.mode = ModeOperatorPending

	case "x", "delete":
		cur := b.Cursor()
		if cur.Col < len([]rune(b.Line(cur.Line))) {
			removed := b.DeleteRange(Range{Start: cur, End: Position{Line: cur.Line, Col: cur.Col + 1}})
			s.reg.Set(removed, Charwise)
			b.ClampNormal()
			return EventChanged
		}
	case "D":
		cur := b.Cursor()
		end := b.MotionTarget(MotionLineEnd, cur)
		if removed := b.DeleteRange(Range{Start: cur, End: end}); removed != "" {
			s.reg.Set(removed, Charwise)
			b.ClampNormal()
			return EventChanged
		}
	case "C":
		cur := b.Cursor()
		end := b.MotionTarget(MotionLineEnd, cur)
		b.BeginGroup()
		if removed := b.removeRange(Range{Start: cur, End: end}); removed != "" {
			s.reg.Set(removed, Charwise)
		}
		s.mode = ModeInsert
		return EventChanged
	case "J":
		cur := b.Cursor()
		if cur.Line+1 < b.LineCount() {
			eol := b.MotionTarget(MotionLineEnd, cur)
			b.BeginGroup()
			b.removeRange(Range{Start: eol, End: Position{Line: cur.Line + 1, Col: firstNonBlank([]rune(b.Line(cur.Line + 1)))}})
			b.SetCursor(eol)
			b.insertRuneRaw(' ')
			b.SetCursor(eol)
			return EventChanged
		}

	case "p", "P":
		if !s.reg.Empty() {
			text, kind := s.reg.Get()
			s.buf.Put(text, kind, key == "p")
			return EventChanged
		}
	case "u":
		if b.Undo() {
			return EventChanged
		}
	case "ctrl+r":
		if b.Redo() {
			return EventChanged
		}

	default:
		if m, ok := motionForKey(key); ok {
			b.SetCursor(b.MotionTarget(m, b.Cursor()))
			b.ClampNormal()
		}
	}
	return EventNone
}

func (s *Session) handleInsert(key string) Event {
	b := s.buf
	switch key {
	case "esc":
		s.mode = ModeNormal
		b.ClampNormal()
		return EventNone
	case "enter":
		b.insertNewlineRaw()
		return EventChanged
	case "backspace":
		b.deleteBackwardRaw()
		return EventChanged
	case "tab":
		b.insertRuneRaw('\t')
		return EventChanged
	case "left", "right", "up", "down":
		m, _ := motionForKey(key)
		b.SetCursor(b.MotionTarget(m, b.Cursor()))
		return EventNone
	}
	runes := []rune(key)
	if len(runes) == 1 {
		b.insertRuneRaw(runes[0])
		return EventChanged
	}
	return EventNone
}

func (s *Session) handleOperatorPending(key string) Event {
	op := s.pending
	s.pending = OpNone
	s.mode = ModeNormal
	b := s.buf

	// doubled operator key means whole-line: dd, cc, yy
	if (op == OpDelete && key == "d") || (op == OpChange && key == "c") || (op == OpYank && key == "y") {
		line := b.Cursor().Line
		text := b.YankLines(line, line)
		s.reg.Set(text, Linewise)
		switch op {
		case OpYank:
			return EventNone
		case OpDelete:
			b.DeleteLines(line, line)
			return EventChanged
		case OpChange:
			b.BeginGroup()
			b.removeRange(Range{Start: Position{Line: line}, End: Position{Line: line, Col: len([]rune(b.Line(line)))}})
			s.mode = ModeInsert
			return EventChanged
		}
	}

	m, ok := motionForKey(key)
	if !ok || key == "esc" {
		// anything that is not a motion cancels the operator
		return EventNone
	}

	if linewiseMotion(m) {
		cur := b.Cursor().Line
		target := b.MotionTarget(m, b.Cursor()).Line
		from, to := cur, target
		if from > to {
			from, to = to, from
		}
		text := b.YankLines(from, to)
		s.reg.Set(text, Linewise)
		switch op {
		case OpYank:
			return EventNone
		case OpDelete:
			b.DeleteLines(from, to)
			return EventChanged
		case OpChange:
			b.BeginGroup()
			b.removeLines(from, to)
			b.openLineAt(from)
			s.mode = ModeInsert
			return EventChanged
		}
	}

	cur := b.Cursor()
	target := b.MotionTarget(m, cur)
	if m == MotionWordEnd {
		target = Position{Line: target.Line, Col: target.Col + 1}
	}
	r := Range{Start: cur, End: target}
	if target.Less(cur) {
		r = Range{Start: target, End: cur}
	}
	switch op {
	case OpYank:
		if text := b.Yank(r); text != "" {
			s.reg.Set(text, Charwise)
		}
		return EventNone
	case OpDelete:
		if removed := b.DeleteRange(r); removed != "" {
			s.reg.Set(removed, Charwise)
			b.ClampNormal()
			return EventChanged
		}
	case OpChange:
		b.BeginGroup()
		if removed := b.removeRange(r); removed != "" {
			s.reg.Set(removed, Charwise)
		}
		s.mode = ModeInsert
		return EventChanged
	}
	return EventNone
}

func (s *Session) handleVisual(key string) Event {
	b := s.buf
	switch key {
	case "esc":
		b.ClearSelection()
		s.mode = ModeNormal
		return EventNone
	case "v":
		if s.mode == ModeVisual {
			b.ClearSelection()
			s.mode = ModeNormal
		} else {
			b.SetSelectionKind(Charwise)
			s.mode = ModeVisual
		}
		return EventNone
	case "V":
		if s.mode == ModeVisualLine {
			b.ClearSelection()
			s.mode = ModeNormal
		} else {
			b.SetSelectionKind(Linewise)
			s.mode = ModeVisualLine
		}
		return EventNone
	case "d", "x", "c":
		r, kind, ok := b.SelectionRange()
		if !ok {
			s.mode = ModeNormal
			return EventNone
		}
		if kind == Linewise {
			text := b.YankLines(r.Start.Line, r.End.Line)
			s.reg.Set(text, Linewise)
			if key == "c" {
				b.BeginGroup()
				b.removeLines(r.Start.Line, r.End.Line)
				b.ClearSelection()
				b.openLineAt(r.Start.Line)
				s.mode = ModeInsert
				return EventChanged
			}
			b.DeleteLines(r.Start.Line, r.End.Line)
		} else {
			if key == "c" {
				b.BeginGroup()
				if removed := b.removeRange(r); removed != "" {
					s.reg.Set(removed, Charwise)
				}
				b.ClearSelection()
				s.mode = ModeInsert
				return EventChanged
			}
			if removed := b.DeleteRange(r); removed != "" {
				s.reg.Set(removed, Charwise)
			}
		}
		b.ClearSelection()
		s.mode = ModeNormal
		b.ClampNormal()
		return EventChanged
	case "y":
		r, kind, ok := b.SelectionRange()
		if ok {
			if kind == Linewise {
				s.reg.Set(b.YankLines(r.Start.Line, r.End.Line), Linewise)
			} else {
				s.reg.Set(b.Yank(r), Charwise)
			}
			b.SetCursor(r.Start)
		}
		b.ClearSelection()
		s.mode = ModeNormal
		b.ClampNormal()
		return EventNone
	}
	if m, ok := motionForKey(key); ok {
		b.SetCursor(b.MotionTarget(m, b.Cursor()))
	}
	return EventNone
}
