package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nova/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	b.Add(Message{Code: NoteMovedHere, Severity: SevNote})
	if b.HasErrors() {
		t.Fatal("note counted as error")
	}
	b.Add(Message{Code: ErrUseAfterMove, Severity: SevError})
	if b.Add(Message{Code: ErrDoubleMove, Severity: SevError}) {
		t.Fatal("bag accepted past limit")
	}
	if b.Len() != 2 || !b.HasErrors() {
		t.Fatalf("len=%d", b.Len())
	}
	b.Reset()
	if b.Len() != 0 || b.HasErrors() {
		t.Fatal("reset failed")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	at := func(off uint32) source.Location { return source.NewLocation(1, off) }
	b := NewBag(0)
	b.Add(Message{Code: WarnUnusedVariable, Severity: SevWarning, Loc: at(9), Text: "w"})
	b.Add(Message{Code: NoteDeclaredHere, Severity: SevNote, Loc: at(2), Text: "n"})
	b.Add(Message{Code: ErrRedefinition, Severity: SevError, Loc: at(2), Text: "e"})
	b.Add(Message{Code: WarnUnusedVariable, Severity: SevWarning, Loc: at(9), Text: "w"})

	b.Dedup()
	b.Sort()
	want := []Code{ErrRedefinition, NoteDeclaredHere, WarnUnusedVariable}
	if diff := cmp.Diff(want, b.Codes()); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
}

func TestFormatShort(t *testing.T) {
	sm := source.NewManager()
	id := sm.AddFile("b.nv", []byte("a\nb\n"))
	msgs := []Message{
		{Code: WarnUnusedVariable, Severity: SevWarning, Loc: source.NewLocation(id, 2), Text: "unused\nvariable"},
		{Code: ErrInvalidCharacter, Severity: SevError, Loc: source.NewLocation(id, 0), Text: "bad"},
		{Code: NoteConsiderBorrowing, Severity: SevNote, Text: "borrow"},
	}
	want := "note N0953 <none>:0:0 borrow\n" +
		"error E0100 b.nv:1:1 bad\n" +
		"warning W0900 b.nv:2:1 unused variable"
	if diff := cmp.Diff(want, FormatShort(msgs, sm)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if FormatShort(nil, sm) != "" {
		t.Fatal("expected empty output")
	}
}
