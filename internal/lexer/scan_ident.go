package lexer

import (
	"nova/internal/token"
)

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и классифицирует через
// таблицу идентификаторов: ключевые слова уже лежат в ней с самого начала.
func (lx *Lexer) scanIdentOrKeyword(out *token.Token, start Mark) {
	lx.cursor.Bump()
	lx.cursor.EatFunc(isIdentContinueByte)

	info := lx.idents.Intern(lx.cursor.buf[start:lx.cursor.Off])
	out.Ident = info
	if info.IsKeyword {
		lx.form(out, info.Kind, start)
		return
	}
	lx.form(out, token.Identifier, start)
}
