package token

import (
	"fmt"
	"sort"
)

// Kind represents the category of a source token.
type Kind uint8

const (
	// Keywords
	KwFunc Kind = iota // func
	KwLet              // let
	KwMut              // mut
	KwClass            // class
	KwTrait            // trait
	KwImpl             // impl
	KwIf               // if
	KwElse             // else
	KwMatch            // match
	KwWhile            // while
	KwFor              // for
	KwReturn           // return
	KwPub              // pub
	KwPriv             // priv
	KwMod              // mod
	KwUse              // use
	KwUnsafe           // unsafe
	KwTrue             // true
	KwFalse            // false

	// Type keywords
	KwI8   // i8
	KwI16  // i16
	KwI32  // i32
	KwI64  // i64
	KwU8   // u8
	KwU16  // u16
	KwU32  // u32
	KwU64  // u64
	KwF32  // f32
	KwF64  // f64
	KwBool // bool
	KwStr  // str
	KwChar // char

	// Punctuation
	Plus           // +
	Minus          // -
	Star           // *
	Slash          // /
	Percent        // %
	PlusEqual      // +=
	MinusEqual     // -=
	StarEqual      // *=
	SlashEqual     // /=
	PercentEqual   // %=
	Equal          // =
	EqualEqual     // ==
	Exclaim        // !
	ExclaimEqual   // !=
	Less           // <
	LessEqual      // <=
	LessLess       // <<
	Greater        // >
	GreaterEqual   // >=
	GreaterGreater // >>
	Amp            // &
	AmpAmp         // &&
	Pipe           // |
	PipePipe       // ||
	Caret          // ^
	Tilde          // ~
	Question       // ?
	Arrow          // ->
	FatArrow       // =>
	Period         // .
	ColonColon     // ::
	Comma          // ,
	Semi           // ;
	Colon          // :
	LParen         // (
	RParen         // )
	LBrace         // {
	RBrace         // }
	LSquare        // [
	RSquare        // ]

	// Literals
	NumericConstant
	FloatingConstant
	StringLiteral
	CharConstant

	// Identifier is any non-keyword identifier.
	Identifier

	// EOF marks the end of the source input.
	EOF
	// Unknown is a run of bytes no other rule accepts.
	Unknown

	kindCount
)

const (
	firstKeyword     = KwFunc
	lastKeyword      = KwChar
	firstTypeKeyword = KwI8
	firstPunct       = Plus
	lastPunct        = RSquare
)

// kindInfo is the single source of truth for per-kind attributes.
// Spelling is set only for punctuation.
type kindInfo struct {
	name     string
	spelling string
}

var catalog = [kindCount]kindInfo{
	KwFunc:   {name: "func"},
	KwLet:    {name: "let"},
	KwMut:    {name: "mut"},
	KwClass:  {name: "class"},
	KwTrait:  {name: "trait"},
	KwImpl:   {name: "impl"},
	KwIf:     {name: "if"},
	KwElse:   {name: "else"},
	KwMatch:  {name: "match"},
	KwWhile:  {name: "while"},
	KwFor:    {name: "for"},
	KwReturn: {name: "return"},
	KwPub:    {name: "pub"},
	KwPriv:   {name: "priv"},
	KwMod:    {name: "mod"},
	KwUse:    {name: "use"},
	KwUnsafe: {name: "unsafe"},
	KwTrue:   {name: "true"},
	KwFalse:  {name: "false"},

	KwI8:   {name: "i8"},
	KwI16:  {name: "i16"},
	KwI32:  {name: "i32"},
	KwI64:  {name: "i64"},
	KwU8:   {name: "u8"},
	KwU16:  {name: "u16"},
	KwU32:  {name: "u32"},
	KwU64:  {name: "u64"},
	KwF32:  {name: "f32"},
	KwF64:  {name: "f64"},
	KwBool: {name: "bool"},
	KwStr:  {name: "str"},
	KwChar: {name: "char"},

	Plus:           {"plus", "+"},
	Minus:          {"minus", "-"},
	Star:           {"star", "*"},
	Slash:          {"slash", "/"},
	Percent:        {"percent", "%"},
	PlusEqual:      {"plusequal", "+="},
	MinusEqual:     {"minusequal", "-="},
	StarEqual:      {"starequal", "*="},
	SlashEqual:     {"slashequal", "/="},
	PercentEqual:   {"percentequal", "%="},
	Equal:          {"equal", "="},
	EqualEqual:     {"equalequal", "=="},
	Exclaim:        {"exclaim", "!"},
	ExclaimEqual:   {"exclaimequal", "!="},
	Less:           {"less", "<"},
	LessEqual:      {"lessequal", "<="},
	LessLess:       {"lessless", "<<"},
	Greater:        {"greater", ">"},
	GreaterEqual:   {"greaterequal", ">="},
	GreaterGreater: {"greatergreater", ">>"},
	Amp:            {"amp", "&"},
	AmpAmp:         {"ampamp", "&&"},
	Pipe:           {"pipe", "|"},
	PipePipe:       {"pipepipe", "||"},
	Caret:          {"caret", "^"},
	Tilde:          {"tilde", "~"},
	Question:       {"question", "?"},
	Arrow:          {"arrow", "->"},
	FatArrow:       {"fatarrow", "=>"},
	Period:         {"period", "."},
	ColonColon:     {"coloncolon", "::"},
	Comma:          {"comma", ","},
	Semi:           {"semi", ";"},
	Colon:          {"colon", ":"},
	LParen:         {"l_paren", "("},
	RParen:         {"r_paren", ")"},
	LBrace:         {"l_brace", "{"},
	RBrace:         {"r_brace", "}"},
	LSquare:        {"l_square", "["},
	RSquare:        {"r_square", "]"},

	NumericConstant:  {name: "numeric_constant"},
	FloatingConstant: {name: "floating_constant"},
	StringLiteral:    {name: "string_literal"},
	CharConstant:     {name: "char_constant"},
	Identifier:       {name: "identifier"},
	EOF:              {name: "eof"},
	Unknown:          {name: "unknown"},
}

// Derived tables, filled once from catalog.
var (
	keywordKinds []Kind
	punctByFirst [256][]Kind // кандидаты по первому байту, длинные первыми
	punctBySpell map[string]Kind
)

func init() {
	punctBySpell = make(map[string]Kind, int(lastPunct-firstPunct)+1)
	for k := Kind(0); k < kindCount; k++ {
		info := catalog[k]
		if info.name == "" {
			panic(fmt.Errorf("token: kind %d has no name", k))
		}
		isPunct := k >= firstPunct && k <= lastPunct
		if isPunct != (info.spelling != "") {
			panic(fmt.Errorf("token: kind %q spelling out of sync with punctuation range", info.name))
		}
		switch {
		case k >= firstKeyword && k <= lastKeyword:
			keywordKinds = append(keywordKinds, k)
		case isPunct:
			if len(info.spelling) > 2 {
				panic(fmt.Errorf("token: punctuation %q longer than two bytes", info.spelling))
			}
			if _, dup := punctBySpell[info.spelling]; dup {
				panic(fmt.Errorf("token: duplicate punctuation %q", info.spelling))
			}
			punctBySpell[info.spelling] = k
			first := info.spelling[0]
			punctByFirst[first] = append(punctByFirst[first], k)
		}
	}
	for i := range punctByFirst {
		cands := punctByFirst[i]
		sort.SliceStable(cands, func(a, b int) bool {
			return len(catalog[cands[a]].spelling) > len(catalog[cands[b]].spelling)
		})
	}
}

// Name returns the display name: the spelling for keywords, the catalog name
// ("lessequal", "numeric_constant", ...) otherwise.
func (k Kind) Name() string {
	if k >= kindCount {
		return ""
	}
	return catalog[k].name
}

// Spelling returns the literal text of a punctuation kind, or "".
func (k Kind) Spelling() string {
	if k >= kindCount {
		return ""
	}
	return catalog[k].spelling
}

func (k Kind) String() string {
	if n := k.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsKeyword reports whether k is a keyword or type keyword.
func (k Kind) IsKeyword() bool { return k >= firstKeyword && k <= lastKeyword }

// IsTypeKeyword reports whether k names a builtin type.
func (k Kind) IsTypeKeyword() bool { return k >= firstTypeKeyword && k <= lastKeyword }

// IsPunct reports whether k is punctuation.
func (k Kind) IsPunct() bool { return k >= firstPunct && k <= lastPunct }

// IsLiteral reports whether k is a numeric, floating, string or char literal.
func (k Kind) IsLiteral() bool { return k >= NumericConstant && k <= CharConstant }

// Count returns the number of kinds in the catalog.
func Count() int { return int(kindCount) }

// Keywords returns every keyword kind in catalog order.
func Keywords() []Kind {
	out := make([]Kind, len(keywordKinds))
	copy(out, keywordKinds)
	return out
}

// LookupPunct returns the punctuation kind spelled s.
func LookupPunct(s string) (Kind, bool) {
	k, ok := punctBySpell[s]
	return k, ok
}

// MatchPunct performs a maximal-munch match of punctuation at the start of b:
// two-byte spellings are tried before one-byte ones. It returns Unknown, 0
// when nothing matches.
func MatchPunct(b []byte) (Kind, int) {
	if len(b) == 0 {
		return Unknown, 0
	}
	for _, k := range punctByFirst[b[0]] {
		sp := catalog[k].spelling
		if len(sp) == 2 {
			if len(b) >= 2 && b[1] == sp[1] {
				return k, 2
			}
			continue
		}
		return k, 1
	}
	return Unknown, 0
}
