package lexer

import (
	"nova/internal/token"
)

// Поддержка: 0x.., 0o.., 0b.. (только целые), 123, 1.5, 1e-3, 1.0e+10.
// Здесь определяются только границы лексемы; переполнение и кривые
// экспоненты проверяет более поздний проход.
func (lx *Lexer) scanNumber(out *token.Token, start Mark) {
	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = isOct
		case 'b', 'B':
			digit = isBin
		}
		if digit != nil {
			lx.cursor.Advance(2)
			lx.cursor.EatFunc(digit)
			lx.form(out, token.NumericConstant, start)
			return
		}
	}

	kind := token.NumericConstant
	lx.cursor.EatFunc(isDec)

	// дробная часть: точка съедается всегда, "1." тоже float
	if lx.cursor.Eat('.') {
		kind = token.FloatingConstant
		lx.cursor.EatFunc(isDec)
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatingConstant
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		lx.cursor.EatFunc(isDec)
	}

	lx.form(out, kind, start)
}
