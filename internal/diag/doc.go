// Package diag is the diagnostic engine shared by every compiler phase.
//
// # Data model
//
// Message is the transient record handed to a Handler:
//
//   - Code – entry of the fixed catalog (codes.go) with a default severity, a
//     stable alphanumeric id ("E0100") and a descriptive format string. The
//     format string is metadata only; the text is whatever the reporter streamed.
//   - Severity – Note, Warning, Error or Fatal.
//   - Loc – primary source.Location (may be invalid).
//   - Text – the assembled message.
//   - Ranges – extra source ranges to highlight.
//
// # Emitting diagnostics
//
// Engine.Report returns a pending Builder seeded with the code's default
// severity (Warning is escalated to Error under warnings-as-errors). Text,
// integers and ranges are streamed into it, then Emit delivers it exactly once;
// a second Emit is a no-op. Go has no destructors, so the scoped form
//
//	err := engine.Diagnose(diag.ErrUndefinedVariable, loc, func(b *diag.Builder) {
//		b.Str("undefined variable '").Str(name).Str("'")
//	})
//
// delivers the message when the callback returns, whether or not it emitted,
// and Engine.Flush delivers every builder that is still pending.
//
// # Severity policy
//
// The built-in handler prints "<Severity> <ID>: <file>:<text> at <line>:<col>"
// and keeps the error / warning counters; ShouldStop reports whether the error
// limit (default 20) was reached. The engine never stops on its own: drivers
// poll ShouldStop between phases.
//
// Fatal diagnostics are returned as *FatalError (errors.Is(err, ErrFatal))
// from Emit; the hosting driver decides whether to abort.
//
// # Concurrency
//
// An Engine is session state and is not safe for concurrent use.
package diag
