package source

import (
	"errors"
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/cespare/xxhash/v2"
)

var (
	// ErrTooManyFiles is returned by Load once every file id is taken.
	ErrTooManyFiles = errors.New("source: file id space exhausted")
	// ErrFileTooLarge is returned by Load for content that does not fit the offset range.
	ErrFileTooLarge = errors.New("source: file exceeds maximum size")
)

// Manager owns loaded file buffers and answers location queries.
// It is not safe for concurrent mutation; concurrent reads after the last
// AddFile are fine.
type Manager struct {
	files []*File
	index map[string]FileID // name -> latest id
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		files: make([]*File, 0),
		index: make(map[string]FileID),
	}
}

// AddFile stores content under name, builds its line index and returns a fresh
// 1-based FileID. A new id is issued even if name was added before.
// Exceeding the file id space or the offset range panics; use Load for a
// checked variant.
func (m *Manager) AddFile(name string, content []byte) FileID {
	return m.add(name, content, FileVirtual)
}

func (m *Manager) add(name string, content []byte, flags FileFlags) FileID {
	if err := m.checkCapacity(len(content)); err != nil {
		panic(fmt.Errorf("add %q: %w", name, err))
	}
	next, err := safecast.Conv[uint16](len(m.files) + 1)
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(next)
	m.files = append(m.files, &File{
		ID:         id,
		Name:       name,
		Content:    content,
		LineStarts: buildLineStarts(content),
		Hash:       xxhash.Sum64(content),
		Flags:      flags,
	})
	// Всегда обновляем индекс на последнюю версию файла
	m.index[normalizePath(name)] = id
	return id
}

func (m *Manager) checkCapacity(size int) error {
	if len(m.files) >= MaxFileID {
		return ErrTooManyFiles
	}
	// EOF token sits at offset == size, so size itself must be encodable.
	if size > MaxOffset {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, MaxOffset)
	}
	return nil
}

// Load reads a file from disk, strips a UTF-8 BOM, normalizes CRLF and adds it.
func (m *Manager) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if err := m.checkCapacity(len(content)); err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return m.add(path, content, flags), nil
}

// File returns the entry for id or nil if id was never issued.
func (m *Manager) File(id FileID) *File {
	if id == 0 || int(id) > len(m.files) {
		return nil
	}
	return m.files[id-1]
}

// Lookup returns the latest id registered under name.
func (m *Manager) Lookup(name string) (FileID, bool) {
	id, ok := m.index[normalizePath(name)]
	return id, ok
}

// Len returns the number of registered files.
func (m *Manager) Len() int { return len(m.files) }

// Char returns the byte at loc, or 0 when loc is outside any known content.
func (m *Manager) Char(loc Location) byte {
	f := m.File(loc.File())
	if f == nil {
		return 0
	}
	off := loc.Offset()
	if int(off) >= len(f.Content) {
		return 0
	}
	return f.Content[off]
}

// Text returns the bytes covered by r as a string, or "" for an unknown file
// or out-of-range / inverted bounds.
func (m *Manager) Text(r Range) string {
	f := m.File(r.Begin.File())
	if f == nil {
		return ""
	}
	begin, end := r.Begin.Offset(), r.End.Offset()
	size := uint32(len(f.Content))
	if begin >= size || end > size || begin > end {
		return ""
	}
	return string(f.Content[begin:end])
}

// LineColumn converts loc to a 1-based line and column; {0, 0} for an unknown file.
func (m *Manager) LineColumn(loc Location) LineCol {
	f := m.File(loc.File())
	if f == nil {
		return LineCol{}
	}
	return toLineCol(f.LineStarts, loc.Offset())
}

// Resolve converts both ends of r into line/column pairs.
func (m *Manager) Resolve(r Range) (start, end LineCol) {
	return m.LineColumn(r.Begin), m.LineColumn(r.End)
}

// Filename returns the name of the file loc belongs to, or "".
func (m *Manager) Filename(loc Location) string {
	f := m.File(loc.File())
	if f == nil {
		return ""
	}
	return f.Name
}

// FormatLocation renders "<filename>:<line>:<column>".
func (m *Manager) FormatLocation(loc Location) string {
	f := m.File(loc.File())
	if f == nil {
		return "<invalid location>"
	}
	lc := toLineCol(f.LineStarts, loc.Offset())
	return fmt.Sprintf("%s:%d:%d", f.Name, lc.Line, lc.Col)
}

// Line returns the text of 1-based line n of file id without its newline.
// Unknown files or lines yield "".
func (m *Manager) Line(id FileID, n uint32) string {
	f := m.File(id)
	if f == nil || n == 0 || int(n) > len(f.LineStarts) {
		return ""
	}
	start := f.LineStarts[n-1]
	end := uint32(len(f.Content))
	if int(n) < len(f.LineStarts) {
		end = f.LineStarts[n] - 1 // без '\n'
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// Digest returns the xxhash of the file content, or 0 for an unknown id.
func (m *Manager) Digest(id FileID) uint64 {
	if f := m.File(id); f != nil {
		return f.Hash
	}
	return 0
}
