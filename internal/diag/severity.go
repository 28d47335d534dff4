package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevNote adds context to another diagnostic.
	SevNote Severity = iota
	// SevWarning is for potential issues.
	SevWarning
	// SevError marks the unit as failed; processing continues.
	SevError
	// SevFatal is unrecoverable.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	case SevFatal:
		return "fatal"
	}
	return "unknown"
}

// Label returns the capitalised prefix used by the built-in handler.
func (s Severity) Label() string {
	switch s {
	case SevNote:
		return "Note"
	case SevWarning:
		return "Warning"
	case SevError:
		return "Error"
	case SevFatal:
		return "Fatal Error"
	}
	return "Unknown"
}
