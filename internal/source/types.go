package source

type (
	// FileID uniquely identifies a source file within a Manager. Ids are 1-based;
	// 0 is never issued so that the zero Location stays invalid.
	FileID uint16 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures the name, content and line-start index of a single source file.
type File struct {
	ID      FileID
	Name    string
	Content []byte
	// LineStarts holds the byte offset of every line start; LineStarts[0] == 0.
	LineStarts []uint32
	Hash       uint64
	Flags      FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Size returns the content length in bytes.
func (f *File) Size() int { return len(f.Content) }

// LineCount returns the number of lines (a trailing newline opens an empty last line).
func (f *File) LineCount() int { return len(f.LineStarts) }
