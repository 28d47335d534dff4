package diag

import (
	"strconv"

	"nova/internal/source"
)

// Builder accumulates one diagnostic until it is emitted.
// Builders are obtained from Engine.Report and must not be copied.
type Builder struct {
	engine  *Engine
	msg     Message
	text    []byte
	emitted bool
}

// Str appends text.
func (b *Builder) Str(s string) *Builder {
	if b.emitted {
		return b
	}
	b.text = append(b.text, s...)
	return b
}

// Int appends the decimal rendering of n.
func (b *Builder) Int(n int64) *Builder {
	if b.emitted {
		return b
	}
	b.text = strconv.AppendInt(b.text, n, 10)
	return b
}

// Range attaches an extra range to highlight.
func (b *Builder) Range(r source.Range) *Builder {
	if b.emitted {
		return b
	}
	b.msg.Ranges = append(b.msg.Ranges, r)
	return b
}

// Message returns a snapshot of what Emit would deliver.
func (b *Builder) Message() Message {
	m := b.msg
	m.Text = string(b.text)
	if len(b.msg.Ranges) > 0 {
		m.Ranges = append([]source.Range(nil), b.msg.Ranges...)
	}
	return m
}

// Pending reports whether the builder still owes a delivery.
func (b *Builder) Pending() bool {
	return !b.emitted
}

// Emit delivers the diagnostic to the engine. Only the first call has an
// effect; later calls return nil.
func (b *Builder) Emit() error {
	if b.emitted {
		return nil
	}
	b.emitted = true
	e := b.engine
	if e == nil {
		return nil
	}
	e.forget(b)
	return e.Emit(b.Message())
}

// Move transfers the pending diagnostic into a fresh builder. The receiver is
// left empty and will never deliver anything.
func (b *Builder) Move() *Builder {
	nb := &Builder{
		engine:  b.engine,
		msg:     b.msg,
		text:    b.text,
		emitted: b.emitted,
	}
	if b.engine != nil && !b.emitted {
		b.engine.replace(b, nb)
	}
	b.engine = nil
	b.msg = Message{}
	b.text = nil
	b.emitted = true
	return nb
}
