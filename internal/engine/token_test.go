package engine

import "testing"

func TestScanPlainText(t *testing.T) {
	toks := Scan("just words, no tokens")
	if len(toks) != 1 || toks[0].Kind != TokenLiteral {
		t.Fatalf("expected single literal, got %#v", toks)
	}
}

func TestScanMixed(t *testing.T) {
	content := "a [[ref]] b [[file:x.md]] c {{date}} d"
	toks := Scan(content)
	kinds := []TokenKind{
		TokenLiteral, TokenReference, TokenLiteral,
		TokenFileReference, TokenLiteral, TokenCommand, TokenLiteral,
	}
	if len(toks) != len(kinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(kinds))
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[1].Text != "ref" {
		t.Errorf("reference text %q", toks[1].Text)
	}
	if toks[3].Text != "x.md" {
		t.Errorf("file path %q", toks[3].Text)
	}
	if toks[5].Text != "date" {
		t.Errorf("command %q", toks[5].Text)
	}
}

func TestScanUnterminated(t *testing.T) {
	toks := Scan("start [[never closed")
	if len(toks) != 1 || toks[0].Kind != TokenLiteral || toks[0].Raw != "start [[never closed" {
		t.Fatalf("unterminated opener should stay literal, got %#v", toks)
	}
}

func TestScanShortestMatch(t *testing.T) {
	toks := Scan("[[a]]]]")
	if toks[0].Kind != TokenReference || toks[0].Text != "a" {
		t.Fatalf("expected shortest match [[a]], got %#v", toks[0])
	}
	if toks[1].Raw != "]]" {
		t.Fatalf("trailing %q", toks[1].Raw)
	}
}

func TestScanCommandTrimsSpaces(t *testing.T) {
	toks := Scan("{{ git status }}")
	if toks[0].Text != "git status" {
		t.Fatalf("command text %q", toks[0].Text)
	}
}

func TestScanOffsets(t *testing.T) {
	content := "x [[r]] y"
	toks := Scan(content)
	ref := toks[1]
	if content[ref.Start:ref.End] != "[[r]]" {
		t.Fatalf("offsets %d:%d slice to %q", ref.Start, ref.End, content[ref.Start:ref.End])
	}
}

func TestHasTokens(t *testing.T) {
	if HasTokens("plain") {
		t.Error("plain text reported as having tokens")
	}
	if !HasTokens("go {{date}}") {
		t.Error("command token not detected")
	}
}
