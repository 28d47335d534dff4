package diag

import (
	"slices"

	"nova/internal/source"
)

// Bag collects emitted messages instead of printing them.
type Bag struct {
	items  []Message
	limit  int
	errors int
}

// NewBag creates a bag keeping at most limit messages (0 = unbounded).
func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

// Handler returns a Handler that stores into the bag.
func (b *Bag) Handler() Handler {
	return func(m Message) { b.Add(m) }
}

// Add stores m; it returns false when the bag is full.
func (b *Bag) Add(m Message) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		return false
	}
	if m.Severity >= SevError {
		b.errors++
	}
	b.items = append(b.items, m)
	return true
}

// Len returns the number of stored messages.
func (b *Bag) Len() int { return len(b.items) }

// HasErrors reports whether an Error or Fatal message is stored.
func (b *Bag) HasErrors() bool { return b.errors > 0 }

// Items returns the stored messages; the slice is owned by the bag.
func (b *Bag) Items() []Message { return b.items }

// Codes lists the codes of stored messages in order.
func (b *Bag) Codes() []Code {
	out := make([]Code, len(b.items))
	for i, m := range b.items {
		out[i] = m.Code
	}
	return out
}

// Reset drops every message.
func (b *Bag) Reset() {
	b.items = b.items[:0]
	b.errors = 0
}

// Sort orders messages by file, offset, severity (highest first) and code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Message) int {
		if c := x.Loc.Compare(y.Loc); c != 0 {
			return c
		}
		if x.Severity != y.Severity {
			return int(y.Severity) - int(x.Severity)
		}
		return int(x.Code) - int(y.Code)
	})
}

// Dedup drops messages equal in code, location and text, keeping the first.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		loc  source.Location
		text string
	}
	seen := make(map[key]struct{}, len(b.items))
	out := b.items[:0]
	errs := 0
	for _, m := range b.items {
		k := key{m.Code, m.Loc, m.Text}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if m.Severity >= SevError {
			errs++
		}
		out = append(out, m)
	}
	b.items = out
	b.errors = errs
}
