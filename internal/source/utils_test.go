package source

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildLineStarts(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []uint32
	}{
		{"empty", "", []uint32{0}},
		{"single line", "abc", []uint32{0}},
		{"trailing newline", "abc\n", []uint32{0, 4}},
		{"two lines", "let x = 10\nx = x + 1;\n", []uint32{0, 11, 22}},
		{"blank lines", "\n\n", []uint32{0, 1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := buildLineStarts([]byte(tc.content))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("line starts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToLineCol(t *testing.T) {
	starts := buildLineStarts([]byte("ab\ncd\n\nef"))
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tc := range cases {
		if got := toLineCol(starts, tc.off); got != tc.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !changed {
		t.Fatal("expected CRLF replacement")
	}
	if string(out) != "a\nb\rc\n" {
		t.Fatalf("unexpected output %q", out)
	}

	same, changed := normalizeCRLF([]byte("plain\n"))
	if changed || string(same) != "plain\n" {
		t.Fatalf("content without CR must be untouched, got %q changed=%v", same, changed)
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(out) != "x" {
		t.Fatalf("expected BOM stripped, got %q had=%v", out, had)
	}
	out, had = removeBOM([]byte("xy"))
	if had || string(out) != "xy" {
		t.Fatalf("short content must be untouched, got %q had=%v", out, had)
	}
}
