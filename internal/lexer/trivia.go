package lexer

import "bytes"

// skipTrivia пропускает пробелы и комментарии перед значимым токеном.
//   - '\n' выставляет startOfLine
//   - любой пропуск выставляет leadingSpace
//   - //... съедает строку вместе с '\n'
//   - /* ... */ без вложенности; незакрытый съедает всё до конца буфера молча
func (lx *Lexer) skipTrivia() {
	lx.leadingSpace = false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) {
			lx.leadingSpace = true
			if b == '\n' {
				lx.startOfLine = true
			}
			lx.cursor.Bump()
			continue
		}

		if b != '/' {
			return
		}
		switch lx.cursor.PeekAt(1) {
		case '/':
			lx.leadingSpace = true
			lx.skipLineComment()
		case '*':
			lx.leadingSpace = true
			lx.skipBlockComment()
		default:
			// это не комментарий, пусть сканируется как '/'
			return
		}
	}
}

func (lx *Lexer) skipLineComment() {
	lx.cursor.Advance(2)
	rest := lx.cursor.Rest()
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 {
		lx.cursor.Advance(uint32(len(rest)))
		return
	}
	lx.cursor.Advance(uint32(nl) + 1)
	lx.startOfLine = true
}

func (lx *Lexer) skipBlockComment() {
	lx.cursor.Advance(2)
	rest := lx.cursor.Rest()
	end := bytes.Index(rest, []byte("*/"))
	body := rest
	if end >= 0 {
		body = rest[:end]
	}
	if bytes.IndexByte(body, '\n') >= 0 {
		lx.startOfLine = true
	}
	if end < 0 {
		lx.cursor.Advance(uint32(len(rest)))
		return
	}
	lx.cursor.Advance(uint32(end) + 2)
}
