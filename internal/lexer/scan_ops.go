package lexer

import (
	"nova/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные (token.MatchPunct).
// Неизвестный символ тянет за собой все следующие непробельные байты,
// чтобы одна кривая последовательность давала один Unknown, а не каскад.
func (lx *Lexer) scanPunct(out *token.Token, start Mark) {
	kind, n := token.MatchPunct(lx.cursor.Rest())
	if kind == token.Unknown {
		lx.cursor.Bump()
		lx.cursor.EatFunc(func(b byte) bool { return !isSpace(b) })
	} else {
		lx.cursor.Advance(uint32(n))
	}
	lx.form(out, kind, start)
}
