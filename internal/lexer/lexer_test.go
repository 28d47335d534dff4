package lexer_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nova/internal/lexer"
	"nova/internal/source"
	"nova/internal/token"
)

type lexed struct {
	Kind token.Kind
	Text string
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *source.Manager, *token.IdentTable) {
	sm := source.NewManager()
	id := sm.AddFile("test.nova", []byte(input))
	idents := token.NewIdentTable()
	return lexer.New(sm, idents, id), sm, idents
}

// lexAll собирает все токены кроме EOF вместе с их текстом
func lexAll(t *testing.T, input string) []lexed {
	t.Helper()
	lx, sm, _ := makeTestLexer(input)
	var out []lexed
	for i := 0; ; i++ {
		if i > len(input)+1 {
			t.Fatalf("lexer did not reach EOF for %q", input)
		}
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, lexed{tok.Kind, sm.Text(tok.Range())})
	}
}

func expectTokens(t *testing.T, input string, want []lexed) {
	t.Helper()
	got := lexAll(t, input)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens for %q mismatch (-want +got):\n%s", input, diff)
	}
}

func TestFuncMain(t *testing.T) {
	expectTokens(t, "func main", []lexed{
		{token.KwFunc, "func"},
		{token.Identifier, "main"},
	})
}

func TestBasicTokenization(t *testing.T) {
	expectTokens(t, "func main() { let x = 42; }", []lexed{
		{token.KwFunc, "func"},
		{token.Identifier, "main"},
		{token.LParen, "("},
		{token.RParen, ")"},
		{token.LBrace, "{"},
		{token.KwLet, "let"},
		{token.Identifier, "x"},
		{token.Equal, "="},
		{token.NumericConstant, "42"},
		{token.Semi, ";"},
		{token.RBrace, "}"},
	})
}

func TestMaximalMunch(t *testing.T) {
	cases := []struct {
		in   string
		want []lexed
	}{
		{"<=", []lexed{{token.LessEqual, "<="}}},
		{"&&", []lexed{{token.AmpAmp, "&&"}}},
		{"< =", []lexed{{token.Less, "<"}, {token.Equal, "="}}},
		{"a->b", []lexed{{token.Identifier, "a"}, {token.Arrow, "->"}, {token.Identifier, "b"}}},
		{"===", []lexed{{token.EqualEqual, "=="}, {token.Equal, "="}}},
		{"x::y", []lexed{{token.Identifier, "x"}, {token.ColonColon, "::"}, {token.Identifier, "y"}}},
		{"a||b|c", []lexed{
			{token.Identifier, "a"}, {token.PipePipe, "||"}, {token.Identifier, "b"},
			{token.Pipe, "|"}, {token.Identifier, "c"},
		}},
		{"!=!", []lexed{{token.ExclaimEqual, "!="}, {token.Exclaim, "!"}}},
		{"a/b", []lexed{{token.Identifier, "a"}, {token.Slash, "/"}, {token.Identifier, "b"}}},
		{"a<<b", []lexed{{token.Identifier, "a"}, {token.LessLess, "<<"}, {token.Identifier, "b"}}},
		{"!x", []lexed{{token.Exclaim, "!"}, {token.Identifier, "x"}}},
		{"a>>b", []lexed{{token.Identifier, "a"}, {token.GreaterGreater, ">>"}, {token.Identifier, "b"}}},
		{"x+=1", []lexed{{token.Identifier, "x"}, {token.PlusEqual, "+="}, {token.NumericConstant, "1"}}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			expectTokens(t, tc.in, tc.want)
		})
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		want []lexed
	}{
		{"42 3.14", []lexed{{token.NumericConstant, "42"}, {token.FloatingConstant, "3.14"}}},
		{"0", []lexed{{token.NumericConstant, "0"}}},
		{"007", []lexed{{token.NumericConstant, "007"}}},
		{"0.5", []lexed{{token.FloatingConstant, "0.5"}}},
		{"0xFFg", []lexed{{token.NumericConstant, "0xFF"}, {token.Identifier, "g"}}},
		{"0o78", []lexed{{token.NumericConstant, "0o7"}, {token.NumericConstant, "8"}}},
		{"0b1012", []lexed{{token.NumericConstant, "0b101"}, {token.NumericConstant, "2"}}},
		{"0x1.5", []lexed{{token.NumericConstant, "0x1"}, {token.Period, "."}, {token.NumericConstant, "5"}}},
		{"1e10", []lexed{{token.FloatingConstant, "1e10"}}},
		{"1.5E-3", []lexed{{token.FloatingConstant, "1.5E-3"}}},
		{"2e+", []lexed{{token.FloatingConstant, "2e+"}}},
		{"1.", []lexed{{token.FloatingConstant, "1."}}},
		{"1e", []lexed{{token.FloatingConstant, "1e"}}},
		{"12abc", []lexed{{token.NumericConstant, "12"}, {token.Identifier, "abc"}}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			expectTokens(t, tc.in, tc.want)
		})
	}
}

func TestStringsAndChars(t *testing.T) {
	cases := []struct {
		in   string
		want []lexed
	}{
		{`"hello" x`, []lexed{{token.StringLiteral, `"hello"`}, {token.Identifier, "x"}}},
		{`"a\"b"`, []lexed{{token.StringLiteral, `"a\"b"`}}},
		{`"\q"`, []lexed{{token.StringLiteral, `"\q"`}}},
		{`"\\" y`, []lexed{{token.StringLiteral, `"\\"`}, {token.Identifier, "y"}}},
		{`"open`, []lexed{{token.StringLiteral, `"open`}}},
		{`"trail\`, []lexed{{token.StringLiteral, `"trail\`}}},
		{`'a'`, []lexed{{token.CharConstant, `'a'`}}},
		{`'\n' '\''`, []lexed{{token.CharConstant, `'\n'`}, {token.CharConstant, `'\''`}}},
		{`'ሴ'`, []lexed{{token.CharConstant, `'ሴ'`}}},
		{`'x`, []lexed{{token.CharConstant, `'x`}}},
		{"\"multi\nline\"", []lexed{{token.StringLiteral, "\"multi\nline\""}}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			expectTokens(t, tc.in, tc.want)
		})
	}
}

func TestComments(t *testing.T) {
	cases := []struct {
		in   string
		want []lexed
	}{
		{"// comment\nx", []lexed{{token.Identifier, "x"}}},
		{"a // tail", []lexed{{token.Identifier, "a"}}},
		{"a /* b */ c", []lexed{{token.Identifier, "a"}, {token.Identifier, "c"}}},
		{"/* /* */ x */", []lexed{{token.Identifier, "x"}, {token.Star, "*"}, {token.Slash, "/"}}},
		{"a /* never closed", []lexed{{token.Identifier, "a"}}},
		{"a/**/b", []lexed{{token.Identifier, "a"}, {token.Identifier, "b"}}},
		{"/", []lexed{{token.Slash, "/"}}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			expectTokens(t, tc.in, tc.want)
		})
	}
}

func TestUnknownRunsCollapse(t *testing.T) {
	expectTokens(t, "a $$#@ b", []lexed{
		{token.Identifier, "a"},
		{token.Unknown, "$$#@"},
		{token.Identifier, "b"},
	})
	// не-ASCII байты тоже уходят в один Unknown до пробела
	expectTokens(t, "é+1 2", []lexed{
		{token.Unknown, "é+1"},
		{token.NumericConstant, "2"},
	})
}

func TestFlags(t *testing.T) {
	lx, _, _ := makeTestLexer("// comment\nx")
	tok := lx.Next()
	if tok.Kind != token.Identifier || !tok.AtStartOfLine() {
		t.Fatalf("expected identifier at start of line, got %v flags=%b", tok.Kind, tok.Flags)
	}

	lx, _, _ = makeTestLexer("a b\n  c/*x*/d")
	want := []token.Flags{token.StartOfLine, token.LeadingSpace, token.StartOfLine, token.LeadingSpace}
	for i, w := range want {
		tok := lx.Next()
		if tok.Flags != w {
			t.Errorf("token %d (%v): flags %b, want %b", i, tok.Kind, tok.Flags, w)
		}
	}

	lx, _, _ = makeTestLexer("a/*\n*/b")
	lx.Next()
	if tok := lx.Next(); !tok.AtStartOfLine() {
		t.Fatal("newline inside a block comment must mark start of line")
	}

	lx, _, _ = makeTestLexer("ab")
	lx.Next()
	if tok := lx.Next(); tok.Kind != token.EOF || tok.Flags != 0 {
		t.Fatalf("EOF right after a token must carry no flags, got %b", tok.Flags)
	}
}

func TestLocations(t *testing.T) {
	lx, sm, _ := makeTestLexer("let x = 10\nx = x + 1;\n")
	var toks []token.Token
	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
		toks = append(toks, tok)
	}
	if len(toks) != 10 {
		t.Fatalf("got %d tokens", len(toks))
	}
	second := toks[4]
	if lc := sm.LineColumn(second.Loc); lc != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("first token of line 2 at %+v", lc)
	}
	if got := sm.FormatLocation(toks[7].Loc); got != "test.nova:2:7" {
		t.Fatalf("FormatLocation = %q", got)
	}
}

func TestIdentifiersAreInterned(t *testing.T) {
	lx, _, idents := makeTestLexer("foo bar foo let")
	a, b, c, kw := lx.Next(), lx.Next(), lx.Next(), lx.Next()
	if a.Ident == nil || a.Ident != c.Ident {
		t.Fatal("equal spellings must share one record")
	}
	if a.Ident == b.Ident {
		t.Fatal("different spellings must not share a record")
	}
	if kw.Kind != token.KwLet || kw.Ident == nil || !kw.Ident.IsKeyword {
		t.Fatalf("keyword token = %+v", kw)
	}
	if got := len(idents.Identifiers()); got != 2 {
		t.Fatalf("interned %d identifiers, want 2", got)
	}
}

func TestSharedTableAcrossFiles(t *testing.T) {
	sm := source.NewManager()
	idents := token.NewIdentTable()
	f1 := sm.AddFile("a.nova", []byte("shared"))
	f2 := sm.AddFile("b.nova", []byte("  shared"))
	t1 := lexer.New(sm, idents, f1).Next()
	t2 := lexer.New(sm, idents, f2).Next()
	if t1.Ident != t2.Ident {
		t.Fatal("lexers sharing a table must intern to the same record")
	}
	if t1.Loc.File() != f1 || t2.Loc.File() != f2 || t2.Loc.Offset() != 2 {
		t.Fatalf("locations %v %v", t1.Loc, t2.Loc)
	}
}

func TestEOFIsSticky(t *testing.T) {
	input := "x  "
	lx, _, _ := makeTestLexer(input)
	lx.Next()
	for i := 0; i < 5; i++ {
		tok := lx.Next()
		if tok.Kind != token.EOF {
			t.Fatalf("call %d: got %v, want eof", i, tok.Kind)
		}
		if tok.Loc.Offset() != uint32(len(input)) || tok.Len != 0 {
			t.Fatalf("eof at %d len %d", tok.Loc.Offset(), tok.Len)
		}
		if lx.Offset() != uint32(len(input)) {
			t.Fatalf("cursor moved to %d", lx.Offset())
		}
	}
}

func TestLexOutParam(t *testing.T) {
	lx, _, _ := makeTestLexer("a")
	tok := token.Token{Kind: token.Unknown, Flags: token.LeadingSpace}
	lx.Lex(&tok)
	if tok.Kind != token.Identifier || tok.Flags != token.StartOfLine {
		t.Fatalf("Lex must overwrite the whole token, got %+v", tok)
	}
}

func TestUnknownFileLexesAsEmpty(t *testing.T) {
	lx := lexer.New(source.NewManager(), token.NewIdentTable(), 9)
	tok := lx.Next()
	if tok.Kind != token.EOF || tok.Loc.IsValid() {
		t.Fatalf("unknown file: %+v", tok)
	}
}

func TestAllEndsWithEOF(t *testing.T) {
	lx, _, _ := makeTestLexer(strings.Repeat("a + ", 100))
	toks := lx.All()
	if len(toks) != 201 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("All returned %d tokens", len(toks))
	}
}
