package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"nova/internal/source"
	"nova/internal/token"
)

// CheckTokenStream runs the structural invariants of a lexed file:
// 1) every token belongs to file id and lies within the content
// 2) tokens are ordered and do not overlap; only EOF is empty
// 3) the stream ends with exactly one EOF at offset == len(content)
// 4) start-of-line and leading-space are never both set
// 5) identifier and keyword tokens carry an IdentInfo spelled like the source
func CheckTokenStream(sm *source.Manager, id source.FileID, toks []token.Token) error {
	f := sm.File(id)
	if f == nil {
		return fmt.Errorf("file %d not registered", id)
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}

	var prevEnd uint32
	for i, tok := range toks {
		if tok.Loc.File() != id {
			return fmt.Errorf("token %d: file %d, want %d", i, tok.Loc.File(), id)
		}
		off := tok.Loc.Offset()
		end := off + tok.Len
		if off < prevEnd {
			return fmt.Errorf("token %d (%s) at %d overlaps previous end %d", i, tok.Kind, off, prevEnd)
		}
		if end > size {
			return fmt.Errorf("token %d (%s) ends at %d beyond content %d", i, tok.Kind, end, size)
		}
		if tok.Flags&token.StartOfLine != 0 && tok.Flags&token.LeadingSpace != 0 {
			return fmt.Errorf("token %d (%s) has both layout flags", i, tok.Kind)
		}
		isLast := i == len(toks)-1
		switch {
		case tok.Kind == token.EOF && !isLast:
			return fmt.Errorf("token %d: EOF before end of stream", i)
		case tok.Kind == token.EOF && (off != size || tok.Len != 0):
			return fmt.Errorf("EOF at %d len %d, want %d len 0", off, tok.Len, size)
		case tok.Kind != token.EOF && isLast:
			return fmt.Errorf("stream does not end with EOF")
		case tok.Kind != token.EOF && tok.Len == 0:
			return fmt.Errorf("token %d (%s) is empty", i, tok.Kind)
		}
		if tok.Kind == token.Identifier || tok.Kind.IsKeyword() {
			text := string(f.Content[off:end])
			if tok.Ident == nil || tok.Ident.Name != text {
				return fmt.Errorf("token %d (%s): ident does not match %q", i, tok.Kind, text)
			}
		}
		prevEnd = end
	}
	return nil
}
