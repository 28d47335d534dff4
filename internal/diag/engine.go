package diag

import (
	"errors"
	"io"
	"os"

	"nova/internal/source"
)

// DefaultErrorLimit is the error count at which ShouldStop turns true.
const DefaultErrorLimit = 20

// Engine routes diagnostics of one compilation session.
type Engine struct {
	sm      *source.Manager
	handler Handler
	printer *printer

	errors   uint32
	warnings uint32

	warningsAsErrors bool
	suppressWarnings bool
	errorLimit       uint32

	pending []*Builder
}

// NewEngine creates an engine bound to sm with the built-in stderr handler.
// sm may be nil; locations are then never resolved.
func NewEngine(sm *source.Manager) *Engine {
	return &Engine{
		sm:         sm,
		printer:    newPrinter(os.Stderr, ColorAuto),
		errorLimit: DefaultErrorLimit,
	}
}

// SourceManager returns the manager used for location rendering.
func (e *Engine) SourceManager() *source.Manager { return e.sm }

// Report starts a diagnostic at loc. The returned builder is pending until
// Emit, Engine.Flush or the end of Engine.Diagnose.
func (e *Engine) Report(code Code, loc source.Location) *Builder {
	sev := code.DefaultSeverity()
	if sev == SevWarning && e.warningsAsErrors {
		sev = SevError
	}
	b := &Builder{
		engine: e,
		msg: Message{
			Code:     code,
			Severity: sev,
			Loc:      loc,
		},
	}
	e.pending = append(e.pending, b)
	return b
}

// ReportNoLoc starts a diagnostic without a location.
func (e *Engine) ReportNoLoc(code Code) *Builder {
	return e.Report(code, source.Invalid())
}

// Diagnose runs fn against a fresh builder and emits it when fn returns,
// also when fn panics. Emitting inside fn is allowed; delivery still
// happens once.
func (e *Engine) Diagnose(code Code, loc source.Location, fn func(*Builder)) (err error) {
	b := e.Report(code, loc)
	defer func() {
		if emitErr := b.Emit(); err == nil {
			err = emitErr
		}
	}()
	if fn != nil {
		fn(b)
	}
	return nil
}

// Flush emits every builder that is still pending, in report order.
// Fatal errors are joined.
func (e *Engine) Flush() error {
	var errs []error
	for len(e.pending) > 0 {
		b := e.pending[0]
		if err := b.Emit(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PendingCount returns the number of reported but undelivered diagnostics.
func (e *Engine) PendingCount() int { return len(e.pending) }

// Emit delivers a finished message. A custom handler receives it as is;
// otherwise the built-in handler prints it and updates the counters.
// Fatal messages yield a *FatalError.
func (e *Engine) Emit(msg Message) error {
	if e.handler != nil {
		e.handler(msg)
	} else {
		e.handle(msg)
	}
	if msg.Severity == SevFatal {
		return &FatalError{Message: msg}
	}
	return nil
}

// handle is the built-in handler.
func (e *Engine) handle(msg Message) {
	switch msg.Severity {
	case SevWarning:
		if e.warningsAsErrors {
			e.errors++
			e.printer.print(e.sm, msg, labelFromWarning)
			return
		}
		if e.suppressWarnings {
			return
		}
		e.warnings++
	case SevError:
		e.errors++
	}
	label := msg.Severity.Label()
	if msg.Escalated() {
		label = labelFromWarning
	}
	e.printer.print(e.sm, msg, label)
}

func (e *Engine) forget(b *Builder) {
	for i, p := range e.pending {
		if p == b {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return
		}
	}
}

func (e *Engine) replace(old, nb *Builder) {
	for i, p := range e.pending {
		if p == old {
			e.pending[i] = nb
			return
		}
	}
}

// ShouldStop reports whether the error limit has been reached.
func (e *Engine) ShouldStop() bool { return e.errors >= e.errorLimit }

// HasErrors reports whether any error was counted.
func (e *Engine) HasErrors() bool { return e.errors > 0 }

// ErrorCount returns the number of counted errors.
func (e *Engine) ErrorCount() uint32 { return e.errors }

// WarningCount returns the number of counted warnings.
func (e *Engine) WarningCount() uint32 { return e.warnings }

// ResetCounts clears both counters.
func (e *Engine) ResetCounts() {
	e.errors = 0
	e.warnings = 0
}

// SetWarningsAsErrors toggles escalation of warnings. It affects later Report
// calls and the built-in handler.
func (e *Engine) SetWarningsAsErrors(v bool) { e.warningsAsErrors = v }

// SetSuppressWarnings toggles dropping of warnings in the built-in handler.
func (e *Engine) SetSuppressWarnings(v bool) { e.suppressWarnings = v }

// WarningsAsErrors reports whether warnings are escalated.
func (e *Engine) WarningsAsErrors() bool { return e.warningsAsErrors }

// SuppressWarnings reports whether plain warnings are dropped.
func (e *Engine) SuppressWarnings() bool { return e.suppressWarnings }

// SetErrorLimit changes the ShouldStop threshold.
func (e *Engine) SetErrorLimit(n uint32) { e.errorLimit = n }

// ErrorLimit returns the ShouldStop threshold.
func (e *Engine) ErrorLimit() uint32 { return e.errorLimit }

// SetHandler installs a custom handler; nil restores the built-in one.
// Custom handlers are responsible for their own counting.
func (e *Engine) SetHandler(h Handler) { e.handler = h }

// SetOutput redirects the built-in handler.
func (e *Engine) SetOutput(w io.Writer) {
	e.printer = newPrinter(w, e.printer.mode)
}

// SetColor selects the colour mode of the built-in handler.
func (e *Engine) SetColor(mode ColorMode) {
	e.printer = newPrinter(e.printer.out, mode)
}

// Apply copies cfg into the engine.
func (e *Engine) Apply(cfg Config) error {
	mode, err := ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}
	e.warningsAsErrors = cfg.WarningsAsErrors
	e.suppressWarnings = cfg.SuppressWarnings
	e.errorLimit = cfg.ErrorLimit
	e.SetColor(mode)
	return nil
}
