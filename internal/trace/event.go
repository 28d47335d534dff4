package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event; lower is coarser.
type Scope uint8

const (
	ScopeSession Scope = iota + 1 // один вызов драйвера
	ScopePhase                    // register, lex, cache
	ScopeFile                     // один файл
	ScopeDetail                   // всё остальное
)

func (s Scope) String() string {
	switch s {
	case ScopeSession:
		return "session"
	case ScopePhase:
		return "phase"
	case ScopeFile:
		return "file"
	case ScopeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string
	Detail   string
	Elapsed  time.Duration // only on KindSpanEnd
	Extra    map[string]string
}
