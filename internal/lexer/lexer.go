package lexer

import (
	"nova/internal/source"
	"nova/internal/token"
)

// Lexer turns the bytes of one file into tokens, one per call.
//
// The lexer borrows the file buffer from the source.Manager and interns
// identifiers into a shared token.IdentTable; both must outlive it. Lexing
// never fails: malformed input is absorbed into token shape (Unknown tokens,
// literals running to the end of the buffer) and left to later passes.
type Lexer struct {
	file   source.FileID
	idents *token.IdentTable
	cursor Cursor

	// переносятся от пропуска пробелов/комментариев к следующему токену
	startOfLine  bool
	leadingSpace bool
}

// New creates a lexer over file id of sm. An unknown id lexes as an empty file.
func New(sm *source.Manager, idents *token.IdentTable, id source.FileID) *Lexer {
	var buf []byte
	if f := sm.File(id); f != nil {
		buf = f.Content
	} else {
		id = 0
	}
	return &Lexer{
		file:        id,
		idents:      idents,
		cursor:      NewCursor(buf),
		startOfLine: true,
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF,
// курсор при этом не сдвигается.
func (lx *Lexer) Next() token.Token {
	var tok token.Token
	lx.Lex(&tok)
	return tok
}

// Lex overwrites *out with the next token.
func (lx *Lexer) Lex(out *token.Token) {
	lx.skipTrivia()

	start := lx.cursor.Mark()
	*out = token.Token{Loc: lx.location(start)}

	if lx.cursor.EOF() {
		lx.form(out, token.EOF, start)
		return
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		lx.scanIdentOrKeyword(out, start)
	case isDec(ch):
		lx.scanNumber(out, start)
	case ch == '"':
		lx.scanQuoted(out, start, '"', token.StringLiteral)
	case ch == '\'':
		lx.scanQuoted(out, start, '\'', token.CharConstant)
	default:
		lx.scanPunct(out, start)
	}
}

// Offset returns the cursor position in bytes.
func (lx *Lexer) Offset() uint32 { return lx.cursor.Off }

// File returns the id of the file being lexed (0 for an unknown file).
func (lx *Lexer) File() source.FileID { return lx.file }

func (lx *Lexer) location(m Mark) source.Location {
	if lx.file == 0 {
		return source.Invalid()
	}
	return source.NewLocation(lx.file, uint32(m))
}

// form finishes a token: length from start, carried layout flags.
// Начало строки важнее пробела: выставляется только один флаг.
func (lx *Lexer) form(out *token.Token, kind token.Kind, start Mark) {
	out.Kind = kind
	out.Len = lx.cursor.LenFrom(start)
	switch {
	case lx.startOfLine:
		out.Flags |= token.StartOfLine
		lx.startOfLine = false
	case lx.leadingSpace:
		out.Flags |= token.LeadingSpace
		lx.leadingSpace = false
	}
}

// All lexes the remainder of the file, EOF token included.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, lx.cursor.Limit/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
