// Package token defines the lexical token kinds, the Token value and the
// identifier table shared by every lexer of a compilation session.
// Invariants:
//   - The kind catalog is declared once (kinds.go); names, spellings, the keyword
//     list and the punctuation matcher are all derived from it at init and checked
//     to stay in sync.
//   - Token does not copy source text; its spelling is recovered from the
//     source.Manager through Token.Range().
//   - Every distinct identifier spelling maps to exactly one *IdentInfo for the
//     lifetime of its IdentTable, so identifiers compare by pointer.
//   - Type names (i32, f64, bool, ...) are keywords of their own kinds.
package token
