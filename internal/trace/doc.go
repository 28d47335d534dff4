// Package trace records span and point events of the nova front-end.
//
// Tracing answers "where did the time go" for multi-file tokenize runs: the
// driver opens a session span, one phase span per stage and one file span per
// lexed file.
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a fatal error
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelPhase: session and phase boundaries
//   - LevelFile: plus per-file events
//   - LevelDebug: everything
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "lex", 0)
//	defer span.End("")
package trace
