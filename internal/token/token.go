package token

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"nova/internal/source"
)

// Flags carries layout facts about the bytes preceding a token.
type Flags uint8

const (
	// StartOfLine is set on the first token after a newline (or at file start).
	StartOfLine Flags = 1 << iota
	// LeadingSpace is set when whitespace or a comment precedes the token on its line.
	LeadingSpace
)

func (f Flags) String() string {
	switch f & (StartOfLine | LeadingSpace) {
	case StartOfLine:
		return "sol"
	case LeadingSpace:
		return "space"
	case StartOfLine | LeadingSpace:
		return "sol|space"
	}
	return ""
}

// Token represents a single lexed token. It is a plain value; Ident points into
// the IdentTable that produced it and must not outlive that table.
type Token struct {
	Kind  Kind
	Loc   source.Location
	Len   uint32
	Flags Flags
	Ident *IdentInfo
}

// Range returns [Loc, Loc+Len).
func (t Token) Range() source.Range {
	delta, err := safecast.Conv[int32](t.Len)
	if err != nil {
		panic(fmt.Errorf("token length overflow: %w", err))
	}
	return source.NewRange(t.Loc, t.Loc.Shift(delta))
}

// Is reports whether the token has kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsNot reports whether the token does not have kind k.
func (t Token) IsNot(k Kind) bool { return t.Kind != k }

// IsOneOf reports whether the token has any of the given kinds.
func (t Token) IsOneOf(kinds ...Kind) bool { return slices.Contains(kinds, t.Kind) }

// IsLiteral reports whether the token is a numeric, floating, string or char literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether the token is a keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool { return t.Kind.IsPunct() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Identifier }

func (t Token) AtStartOfLine() bool   { return t.Flags&StartOfLine != 0 }
func (t Token) HasLeadingSpace() bool { return t.Flags&LeadingSpace != 0 }
