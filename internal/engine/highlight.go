package engine

// SpanClass tells the renderer how to color a token occurrence.
type SpanClass int

const (
	SpanRefValid SpanClass = iota
	SpanRefInvalid
	SpanFileValid
	SpanFileInvalid
	SpanCommand
)

// Span marks a highlightable byte range in editor content.
type Span struct {
	Start int
	End   int
	Class SpanClass
}

// Classify maps every non-literal token to a span. Validity is an
// existence probe only; no content is read or resolved here, so this is
// cheap enough to run on every redraw.
func Classify(content string, repo Repository, files FileAccess) []Span {
	var spans []Span
	for _, tok := range Scan(content) {
		switch tok.Kind {
		case TokenReference:
			class := SpanRefInvalid
			if repo.Exists(tok.Text) {
				class = SpanRefValid
			}
			spans = append(spans, Span{Start: tok.Start, End: tok.End, Class: class})
		case TokenFileReference:
			class := SpanFileInvalid
			if files.FileExists(tok.Text) {
				class = SpanFileValid
			}
			spans = append(spans, Span{Start: tok.Start, End: tok.End, Class: class})
		case TokenCommand:
			spans = append(spans, Span{Start: tok.Start, End: tok.End, Class: SpanCommand})
		}
	}
	return spans
}
