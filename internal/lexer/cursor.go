package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в буфере одного файла
type Cursor struct {
	buf []byte
	Off uint32
	// Limit is the exclusive upper bound for Off: len(buf).
	Limit uint32
}

// NewCursor creates a cursor over buf. The buffer is borrowed, never modified.
func NewCursor(buf []byte) Cursor {
	limit, err := safecast.Conv[uint32](len(buf))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{buf: buf, Limit: limit}
}

// EOF проверяет, достигнут ли конец буфера
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.buf[c.Off]
}

// PeekAt reads the byte n positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.buf[c.Off+n]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.buf[c.Off], c.buf[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.buf[c.Off]
	c.Off++
	return b
}

// Advance moves the cursor n bytes forward, clamped to Limit.
func (c *Cursor) Advance(n uint32) {
	if n > c.Limit-c.Off {
		c.Off = c.Limit
		return
	}
	c.Off += n
}

// Rest returns the unread part of the buffer.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.buf[c.Off:c.Limit]
}

// Mark это метка, что бы быстро получать длину читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// LenFrom returns the number of bytes consumed since m.
func (c *Cursor) LenFrom(m Mark) uint32 {
	return c.Off - uint32(m)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.buf[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatFunc consumes bytes while pred holds and returns how many were eaten.
func (c *Cursor) EatFunc(pred func(byte) bool) uint32 {
	start := c.Off
	for c.Off < c.Limit && pred(c.buf[c.Off]) {
		c.Off++
	}
	return c.Off - start
}
