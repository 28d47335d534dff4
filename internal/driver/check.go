package driver

import (
	"fmt"

	"fortio.org/safecast"

	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

// CheckTokens reports lexical malformations the lexer absorbed into token
// shape: unknown bytes, unterminated or empty literals, bad escapes and
// prefixed numbers without digits. It returns the number of reports.
func CheckTokens(e *diag.Engine, sm *source.Manager, toks []token.Token) int {
	n := 0
	report := func(code diag.Code, loc source.Location, r source.Range, parts ...string) {
		b := e.Report(code, loc)
		for _, p := range parts {
			b.Str(p)
		}
		_ = b.Range(r).Emit() // фатальных кодов здесь нет
		n++
	}

	for _, tok := range toks {
		r := tok.Range()
		switch tok.Kind {
		case token.Unknown:
			report(diag.ErrInvalidCharacter, tok.Loc, r, "invalid character '", sm.Text(r), "'")
		case token.StringLiteral, token.CharConstant:
			text := sm.Text(r)
			if text == "" {
				continue
			}
			quote := text[0]
			closed, bad := scanLiteral(text, quote)
			for _, off := range bad {
				loc := shift(tok.Loc, off)
				esc := text[off:min(off+2, len(text))]
				report(diag.ErrInvalidEscapeSequence, loc, source.NewRange(loc, shift(loc, len(esc))), "invalid escape sequence '", esc, "'")
			}
			switch {
			case !closed && quote == '"':
				report(diag.ErrUnterminatedString, tok.Loc, r, "unterminated string literal")
			case !closed:
				report(diag.ErrUnterminatedChar, tok.Loc, r, "unterminated character literal")
			case quote == '\'' && len(text) == 2:
				report(diag.ErrEmptyCharLiteral, tok.Loc, r, "empty character literal")
			}
		case token.NumericConstant, token.FloatingConstant:
			if text := sm.Text(r); !numberComplete(text) {
				report(diag.ErrInvalidNumberLiteral, tok.Loc, r, "invalid number literal '", text, "'")
			}
		}
	}
	return n
}

func shift(loc source.Location, delta int) source.Location {
	d, err := safecast.Conv[int32](delta)
	if err != nil {
		panic(fmt.Errorf("shift overflow: %w", err))
	}
	return loc.Shift(d)
}

// scanLiteral повторяет обход scanQuoted и возвращает, закрыт ли литерал,
// и смещения недопустимых escape-последовательностей.
func scanLiteral(text string, quote byte) (closed bool, bad []int) {
	for i := 1; i < len(text); i++ {
		switch text[i] {
		case quote:
			return i == len(text)-1, bad
		case '\\':
			if !validEscape(text[i+1:]) {
				bad = append(bad, i)
			}
			i++
		}
	}
	return false, bad
}

// validEscape проверяет хвост после '\': \n \t \r \0 \\ \' \" и \xNN.
func validEscape(rest string) bool {
	if rest == "" {
		return true // обрыв на EOF уже отчитан как незакрытый литерал
	}
	switch rest[0] {
	case 'n', 't', 'r', '0', '\\', '\'', '"':
		return true
	case 'x':
		return len(rest) >= 3 && isHexDigit(rest[1]) && isHexDigit(rest[2])
	}
	return false
}

func isHexDigit(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

// numberComplete: префиксное число требует хотя бы одну цифру, экспонента тоже.
func numberComplete(text string) bool {
	if len(text) >= 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			return len(text) > 2
		}
	}
	for i := 0; i < len(text); i++ {
		if text[i] != 'e' && text[i] != 'E' {
			continue
		}
		exp := text[i+1:]
		if exp != "" && (exp[0] == '+' || exp[0] == '-') {
			exp = exp[1:]
		}
		return exp != ""
	}
	return true
}
