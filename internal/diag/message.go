package diag

import (
	"errors"
	"fmt"

	"nova/internal/source"
)

// Message is the snapshot of a diagnostic delivered to a Handler.
type Message struct {
	Code     Code
	Severity Severity
	Loc      source.Location
	Text     string
	Ranges   []source.Range
}

// Escalated reports whether a warning-class code was raised to Error.
func (m Message) Escalated() bool {
	return m.Severity == SevError && m.Code.DefaultSeverity() == SevWarning
}

// Handler consumes emitted messages.
type Handler func(Message)

// ErrFatal matches every *FatalError via errors.Is.
var ErrFatal = errors.New("fatal diagnostic")

// FatalError is returned by Emit for diagnostics of Fatal severity.
type FatalError struct {
	Message Message
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error %s: %s", e.Message.Code.ID(), e.Message.Text)
}

func (e *FatalError) Is(target error) bool {
	return target == ErrFatal
}
