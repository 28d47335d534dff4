package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "phase", "file", "debug", "PHASE"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeSession, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeFile, false},
		{LevelFile, ScopeFile, true},
		{LevelFile, ScopeDetail, false},
		{LevelDebug, ScopeDetail, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelFile, FormatNDJSON)

	root := Begin(tr, ScopeSession, "tokenize", 0)
	file := Begin(tr, ScopeFile, "lex", root.ID()).WithExtra("tokens", "12")
	Point(tr, ScopeDetail, "ignored", "", root.ID())
	file.End("a.nv")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "lex" || ev.Detail != "a.nv" || ev.Extra["tokens"] != "12" || ev.Seq != 3 {
		t.Fatalf("event = %+v", ev)
	}
	if ev.ParentID != root.ID() {
		t.Fatalf("parent = %d, want %d", ev.ParentID, root.ID())
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	s := Begin(tr, ScopePhase, "lex", 0).WithExtra("b", "2").WithExtra("a", "1")
	s.End("done")
	out := buf.String()
	if !strings.Contains(out, "→ lex") || !strings.Contains(out, "← lex (done) {a=1, b=2}") {
		t.Fatalf("output:\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestStreamTracerReportsWriteError(t *testing.T) {
	tr := NewStreamTracer(failingWriter{}, LevelPhase, FormatText)
	Begin(tr, ScopePhase, "lex", 0).End("")
	if err := tr.Flush(); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Flush = %v", err)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeDetail, name, "", 0)
	}
	snap := r.Snapshot()
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Fatalf("snapshot = %s", got)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestMultiTracer(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	Begin(m, ScopePhase, "lex", 0).End("")
	if len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("ring=%d stream=%q", len(ring.Snapshot()), buf.String())
	}
	if m.Ring() != ring {
		t.Fatal("Ring() lost the ring tracer")
	}
}

func TestNopAndDisabledSpans(t *testing.T) {
	s := Begin(Nop, ScopeSession, "x", 0)
	if s.ID() != 0 || s.End("") != 0 {
		t.Fatal("nop span must be inert")
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("tracer = %T", tr)
	}
	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(9)}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("expected Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("tracer lost")
	}
	s := Begin(r, ScopeSession, "s", 0)
	ctx = WithSpan(ctx, s)
	if SpanFromContext(ctx) != s.ID() {
		t.Fatal("span lost")
	}
}
