package source

import (
	"cmp"
	"fmt"
)

const (
	// FileIDBits is the width of the file id part of a packed Location.
	FileIDBits = 12
	// OffsetBits is the width of the byte offset part of a packed Location.
	OffsetBits = 20

	// MaxFileID is the largest file id a Location can carry.
	MaxFileID = 1<<FileIDBits - 1
	// MaxOffset is the largest byte offset a Location can carry (files are < 1 MiB).
	MaxOffset = 1<<OffsetBits - 1

	offsetMask = 1<<OffsetBits - 1
)

// Location is a packed (file id, byte offset) pair: file id in the high 12 bits,
// offset in the low 20 bits. The zero value is the invalid location.
//
// Ordering is the integer order of the packed value. Inside one file it is the
// offset order; across files it sorts by file id first and carries no proximity meaning.
type Location uint32

// Invalid returns the reserved "no location" sentinel.
func Invalid() Location { return 0 }

// NewLocation packs id and offset. Out-of-range arguments are a programmer
// error and panic.
func NewLocation(id FileID, offset uint32) Location {
	if uint32(id) > MaxFileID {
		panic(fmt.Errorf("source: file id %d exceeds %d", id, MaxFileID))
	}
	if offset > MaxOffset {
		panic(fmt.Errorf("source: offset %d exceeds %d", offset, MaxOffset))
	}
	return Location(uint32(id)<<OffsetBits | offset)
}

// File returns the file id part.
func (l Location) File() FileID { return FileID(uint32(l) >> OffsetBits) }

// Offset returns the byte offset part.
func (l Location) Offset() uint32 { return uint32(l) & offsetMask }

// Raw returns the packed encoding.
func (l Location) Raw() uint32 { return uint32(l) }

func (l Location) IsValid() bool   { return l != 0 }
func (l Location) IsInvalid() bool { return l == 0 }

// Shift returns a location in the same file with the offset moved by delta.
// Underflow or overflow of the offset range panics.
func (l Location) Shift(delta int32) Location {
	off := int64(l.Offset()) + int64(delta)
	if off < 0 || off > MaxOffset {
		panic(fmt.Errorf("source: shifted offset %d out of range [0, %d]", off, MaxOffset))
	}
	return NewLocation(l.File(), uint32(off))
}

// Less reports whether l sorts before other.
func (l Location) Less(other Location) bool { return l < other }

// Compare returns -1, 0 or +1 comparing the packed values.
func (l Location) Compare(other Location) int { return cmp.Compare(l, other) }

func (l Location) String() string {
	if l.IsInvalid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%d:%d", l.File(), l.Offset())
}

// Range is a half-open [Begin, End) pair of locations.
type Range struct {
	Begin Location
	End   Location
}

// NewRange builds a range from two locations.
func NewRange(begin, end Location) Range {
	return Range{Begin: begin, End: end}
}

// PointRange builds an empty range at loc.
func PointRange(loc Location) Range {
	return Range{Begin: loc, End: loc}
}

// IsValid reports whether both endpoints are valid.
func (r Range) IsValid() bool {
	return r.Begin.IsValid() && r.End.IsValid()
}

func (r Range) Empty() bool {
	return r.Begin == r.End
}

// Len is the byte length of the range; 0 for cross-file or inverted ranges.
func (r Range) Len() uint32 {
	if r.Begin.File() != r.End.File() || r.End < r.Begin {
		return 0
	}
	return r.End.Offset() - r.Begin.Offset()
}

// Contains reports whether loc falls inside [Begin, End).
func (r Range) Contains(loc Location) bool {
	return loc.File() == r.Begin.File() && loc >= r.Begin && loc < r.End
}

// Cover returns the smallest range spanning both r and other.
// Ranges from different files are not merged.
func (r Range) Cover(other Range) Range {
	if r.Begin.File() != other.Begin.File() {
		return r
	}
	if other.Begin < r.Begin {
		r.Begin = other.Begin
	}
	if other.End > r.End {
		r.End = other.End
	}
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d", r.Begin.File(), r.Begin.Offset(), r.End.Offset())
}
