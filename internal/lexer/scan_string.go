package lexer

import (
	"nova/internal/token"
)

// scanQuoted сканирует строковый или символьный литерал до парной кавычки.
// '\' съедает следующий байт без проверки escape-последовательности;
// незакрытый литерал молча тянется до конца буфера.
func (lx *Lexer) scanQuoted(out *token.Token, start Mark, quote byte, kind token.Kind) {
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == quote {
			break
		}
		if b == '\\' {
			lx.cursor.Bump()
		}
	}
	lx.form(out, kind, start)
}
