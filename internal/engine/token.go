// Package engine implements prompt content resolution: token scanning,
// recursive reference expansion, inline command execution and the
// highlight classification that drives the editor display.
package engine

import "strings"

// TokenKind discriminates scanned tokens.
type TokenKind int

const (
	// TokenLiteral is plain text, including unterminated delimiters.
	TokenLiteral TokenKind = iota
	// TokenReference is [[name]].
	TokenReference
	// TokenFileReference is [[file:path]].
	TokenFileReference
	// TokenCommand is {{shell text}}.
	TokenCommand
)

// Token is one scanned unit of content. Text holds the inner payload
// (name, path or shell text) for token kinds and the raw text for
// literals; Raw always holds the exact source slice. Start/End are byte
// offsets into the scanned content.
type Token struct {
	Kind  TokenKind
	Text  string
	Raw   string
	Start int
	End   int
}

const filePrefix = "file:"

// Scan walks content left to right in a single pass and returns its
// tokens in order. Tokens never nest: a token extends from its opening
// delimiter to the first matching closer. An opener with no closer is
// literal text through end of content, not an error.
func Scan(content string) []Token {
	var tokens []Token
	litStart := 0
	i := 0
	flushLiteral := func(end int) {
		if end > litStart {
			tokens = append(tokens, Token{
				Kind:  TokenLiteral,
				Text:  content[litStart:end],
				Raw:   content[litStart:end],
				Start: litStart,
				End:   end,
			})
		}
	}
	for i < len(content) {
		var open, closer string
		switch {
		case strings.HasPrefix(content[i:], "[["):
			open, closer = "[[", "]]"
		case strings.HasPrefix(content[i:], "{{"):
			open, closer = "{{", "}}"
		default:
			i++
			continue
		}
		rel := strings.Index(content[i+2:], closer)
		if rel < 0 {
			// no closer: the rest is literal
			break
		}
		flushLiteral(i)
		inner := content[i+2 : i+2+rel]
		end := i + 2 + rel + 2
		tok := Token{Raw: content[i:end], Start: i, End: end}
		if open == "{{" {
			tok.Kind = TokenCommand
			tok.Text = strings.TrimSpace(inner)
		} else if strings.HasPrefix(inner, filePrefix) {
			tok.Kind = TokenFileReference
			tok.Text = inner[len(filePrefix):]
		} else {
			tok.Kind = TokenReference
			tok.Text = inner
		}
		tokens = append(tokens, tok)
		i = end
		litStart = end
	}
	flushLiteral(len(content))
	return tokens
}

// HasTokens reports whether content contains anything to resolve.
func HasTokens(content string) bool {
	for _, t := range Scan(content) {
		if t.Kind != TokenLiteral {
			return true
		}
	}
	return false
}
