package editor

import "unicode"

// Motion identifies a cursor movement. Motions compute a target position
// and never mutate the buffer.
type Motion int

const (
	MotionNone Motion = iota
	MotionLeft
	MotionRight
	MotionUp
	MotionDown
	MotionWordForward
	MotionWordBack
	MotionWordEnd
	MotionLineStart
	MotionFirstNonBlank
	MotionLineEnd
	MotionParaPrev
	MotionParaNext
	MotionFileStart
	MotionFileEnd
)

type charClass int

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func classOf(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return classWord
	default:
		return classPunct
	}
}

// MotionTarget computes where a motion lands starting from a position.
// Targets are clamped to the buffer; motions past an edge stick to it.
func (b *Buffer) MotionTarget(m Motion, from Position) Position {
	from = b.clamp(from)
	switch m {
	case MotionLeft:
		return b.clamp(Position{Line: from.Line, Col: from.Col - 1})
	case MotionRight:
		return b.clamp(Position{Line: from.Line, Col: from.Col + 1})
	case MotionUp:
		return b.clamp(Position{Line: from.Line - 1, Col: from.Col})
	case MotionDown:
		return b.clamp(Position{Line: from.Line + 1, Col: from.Col})
	case MotionLineStart:
		return Position{Line: from.Line, Col: 0}
	case MotionFirstNonBlank:
		return Position{Line: from.Line, Col: firstNonBlank(b.lines[from.Line])}
	case MotionLineEnd:
		return Position{Line: from.Line, Col: b.lineLen(from.Line)}
	case MotionFileStart:
		return Position{}
	case MotionFileEnd:
		last := len(b.lines) - 1
		return b.clamp(Position{Line: last, Col: b.lineLen(last)})
	case MotionWordForward:
		return b.wordForward(from)
	case MotionWordBack:
		return b.wordBack(from)
	case MotionWordEnd:
		return b.wordEnd(from)
	case MotionParaPrev:
		return b.paragraph(from, -1)
	case MotionParaNext:
		return b.paragraph(from, +1)
	}
	return from
}

func firstNonBlank(line []rune) int {
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

// wordForward advances to the start of the next word, switching word
// class at alphanumeric/punctuation boundaries and crossing line ends.
func (b *Buffer) wordForward(p Position) Position {
	line := b.lines[p.Line]
	if p.Col >= len(line) {
		if p.Line+1 < len(b.lines) {
			next := b.lines[p.Line+1]
			return Position{Line: p.Line + 1, Col: firstNonSpace(next, 0)}
		}
		return b.clamp(p)
	}
	col := p.Col
	cls := classOf(line[col])
	for col < len(line) && classOf(line[col]) == cls {
		col++
	}
	for col < len(line) && unicode.IsSpace(line[col]) {
		col++
	}
	if col >= len(line) && p.Line+1 < len(b.lines) {
		next := b.lines[p.Line+1]
		return Position{Line: p.Line + 1, Col: firstNonSpace(next, 0)}
	}
	return b.clamp(Position{Line: p.Line, Col: col})
}

func firstNonSpace(line []rune, from int) int {
	for from < len(line) && unicode.IsSpace(line[from]) {
		from++
	}
	if from >= len(line) {
		return 0
	}
	return from
}

// wordBack retreats to the start of the previous word.
func (b *Buffer) wordBack(p Position) Position {
	line, col := p.Line, p.Col
	for {
		if col == 0 {
			if line == 0 {
				return Position{}
			}
			line--
			col = b.lineLen(line)
			if col == 0 {
				continue
			}
		}
		runes := b.lines[line]
		col--
		for col > 0 && unicode.IsSpace(runes[col]) {
			col--
		}
		if unicode.IsSpace(runes[col]) {
			continue
		}
		cls := classOf(runes[col])
		for col > 0 && classOf(runes[col-1]) == cls {
			col--
		}
		return Position{Line: line, Col: col}
	}
}

// wordEnd advances to the last rune of the current or next word.
func (b *Buffer) wordEnd(p Position) Position {
	line, col := p.Line, p.Col
	for {
		runes := b.lines[line]
		col++
		for col < len(runes) && unicode.IsSpace(runes[col]) {
			col++
		}
		if col >= len(runes) {
			if line+1 >= len(b.lines) {
				return b.clamp(Position{Line: line, Col: col - 1})
			}
			line++
			col = -1
			continue
		}
		cls := classOf(runes[col])
		for col+1 < len(runes) && classOf(runes[col+1]) == cls {
			col++
		}
		return Position{Line: line, Col: col}
	}
}

// paragraph finds the nearest blank line in the given direction, or the
// buffer boundary if none.
func (b *Buffer) paragraph(p Position, dir int) Position {
	i := p.Line + dir
	for i > 0 && i < len(b.lines)-1 {
		if len(b.lines[i]) == 0 {
			return Position{Line: i, Col: 0}
		}
		i += dir
	}
	if dir < 0 {
		return Position{}
	}
	last := len(b.lines) - 1
	return b.clamp(Position{Line: last, Col: b.lineLen(last)})
}
