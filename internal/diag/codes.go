package diag

import (
	"fmt"
	"strconv"
)

// Code identifies one entry of the diagnostic catalog.
type Code uint16

const (
	// Лексические
	ErrInvalidCharacter Code = iota
	ErrUnterminatedString
	ErrUnterminatedChar
	ErrInvalidEscapeSequence
	ErrEmptyCharLiteral
	ErrInvalidNumberLiteral

	// Синтаксические
	ErrExpectedToken
	ErrExpectedExpression
	ErrExpectedType
	ErrExpectedIdentifier
	ErrExpectedSemicolon
	ErrExpectedClosingParen
	ErrExpectedClosingBrace
	ErrExpectedClosingBracket
	ErrUnexpectedToken
	ErrInvalidDeclaration

	// Типы
	ErrTypeMismatch
	ErrUnknownType
	ErrCannotInferType
	ErrIncompatibleTypes
	ErrInvalidCast
	ErrNoImplicitConversion

	// Семантические
	ErrUndefinedVariable
	ErrUndefinedFunction
	ErrUndefinedType
	ErrRedefinition
	ErrWrongArgumentCount
	ErrWrongArgumentType
	ErrNotCallable
	ErrNotIndexable
	ErrInvalidOperand
	ErrMissingReturn
	ErrUnreachableCode

	// Владение и заимствования
	ErrUseAfterMove
	ErrDoubleMove
	ErrBorrowOfMovedValue
	ErrCannotBorrowAsMutable
	ErrCannotMoveBorrowed
	ErrMutableBorrowConflict
	ErrDanglingReference
	ErrLifetimeMismatch
	ErrAssignToImmutable

	// Предупреждения
	WarnUnusedVariable
	WarnUnusedFunction
	WarnUnusedImport
	WarnUnreachableCode
	WarnShadowingVariable
	WarnImplicitConversion
	WarnDeprecated

	// Заметки
	NoteDeclaredHere
	NotePreviousBorrowHere
	NoteMovedHere
	NoteConsiderBorrowing

	// Фатальные
	FatalCannotOpenFile
	FatalFileTooLarge
	FatalTooManyErrors

	codeCount
)

type codeInfo struct {
	sev    Severity
	id     string // стабильный код: буква + 4 цифры
	format string
}

var catalog = [codeCount]codeInfo{
	ErrInvalidCharacter:      {SevError, "E0100", "invalid character '%0'"},
	ErrUnterminatedString:    {SevError, "E0101", "unterminated string literal"},
	ErrUnterminatedChar:      {SevError, "E0102", "unterminated character literal"},
	ErrInvalidEscapeSequence: {SevError, "E0103", "invalid escape sequence '\\%0'"},
	ErrEmptyCharLiteral:      {SevError, "E0104", "empty character literal"},
	ErrInvalidNumberLiteral:  {SevError, "E0105", "invalid number literal '%0'"},

	ErrExpectedToken:          {SevError, "E0200", "expected '%0'"},
	ErrExpectedExpression:     {SevError, "E0201", "expected expression"},
	ErrExpectedType:           {SevError, "E0202", "expected type"},
	ErrExpectedIdentifier:     {SevError, "E0203", "expected identifier"},
	ErrExpectedSemicolon:      {SevError, "E0204", "expected ';'"},
	ErrExpectedClosingParen:   {SevError, "E0205", "expected ')'"},
	ErrExpectedClosingBrace:   {SevError, "E0206", "expected '}'"},
	ErrExpectedClosingBracket: {SevError, "E0207", "expected ']'"},
	ErrUnexpectedToken:        {SevError, "E0208", "unexpected token '%0'"},
	ErrInvalidDeclaration:     {SevError, "E0209", "invalid declaration"},

	ErrTypeMismatch:         {SevError, "E0300", "type mismatch: expected '%0', found '%1'"},
	ErrUnknownType:          {SevError, "E0301", "unknown type '%0'"},
	ErrCannotInferType:      {SevError, "E0302", "cannot infer type of '%0'"},
	ErrIncompatibleTypes:    {SevError, "E0303", "incompatible types '%0' and '%1'"},
	ErrInvalidCast:          {SevError, "E0304", "invalid cast from '%0' to '%1'"},
	ErrNoImplicitConversion: {SevError, "E0305", "no implicit conversion from '%0' to '%1'"},

	ErrUndefinedVariable:  {SevError, "E0400", "undefined variable '%0'"},
	ErrUndefinedFunction:  {SevError, "E0401", "undefined function '%0'"},
	ErrUndefinedType:      {SevError, "E0402", "undefined type '%0'"},
	ErrRedefinition:       {SevError, "E0403", "redefinition of '%0'"},
	ErrWrongArgumentCount: {SevError, "E0404", "expected %0 arguments, found %1"},
	ErrWrongArgumentType:  {SevError, "E0405", "argument %0 has wrong type"},
	ErrNotCallable:        {SevError, "E0406", "'%0' is not callable"},
	ErrNotIndexable:       {SevError, "E0407", "'%0' is not indexable"},
	ErrInvalidOperand:     {SevError, "E0408", "invalid operand for '%0'"},
	ErrMissingReturn:      {SevError, "E0409", "missing return in function '%0'"},
	ErrUnreachableCode:    {SevError, "E0410", "unreachable code"},

	ErrUseAfterMove:          {SevError, "E0500", "use of moved value '%0'"},
	ErrDoubleMove:            {SevError, "E0501", "value '%0' moved twice"},
	ErrBorrowOfMovedValue:    {SevError, "E0502", "borrow of moved value '%0'"},
	ErrCannotBorrowAsMutable: {SevError, "E0503", "cannot borrow '%0' as mutable"},
	ErrCannotMoveBorrowed:    {SevError, "E0504", "cannot move out of borrowed '%0'"},
	ErrMutableBorrowConflict: {SevError, "E0505", "'%0' is already borrowed"},
	ErrDanglingReference:     {SevError, "E0506", "reference to '%0' outlives its value"},
	ErrLifetimeMismatch:      {SevError, "E0507", "lifetime mismatch"},
	ErrAssignToImmutable:     {SevError, "E0508", "cannot assign twice to immutable variable '%0'"},

	WarnUnusedVariable:     {SevWarning, "W0900", "unused variable '%0'"},
	WarnUnusedFunction:     {SevWarning, "W0901", "unused function '%0'"},
	WarnUnusedImport:       {SevWarning, "W0902", "unused import '%0'"},
	WarnUnreachableCode:    {SevWarning, "W0903", "unreachable code"},
	WarnShadowingVariable:  {SevWarning, "W0904", "'%0' shadows an outer variable"},
	WarnImplicitConversion: {SevWarning, "W0905", "implicit conversion from '%0' to '%1'"},
	WarnDeprecated:         {SevWarning, "W0906", "'%0' is deprecated"},

	NoteDeclaredHere:       {SevNote, "N0950", "'%0' declared here"},
	NotePreviousBorrowHere: {SevNote, "N0951", "previous borrow here"},
	NoteMovedHere:          {SevNote, "N0952", "value moved here"},
	NoteConsiderBorrowing:  {SevNote, "N0953", "consider borrowing here"},

	FatalCannotOpenFile: {SevFatal, "F0990", "cannot open file '%0'"},
	FatalFileTooLarge:   {SevFatal, "F0991", "file '%0' is too large"},
	FatalTooManyErrors:  {SevFatal, "F0992", "too many errors emitted, stopping now"},
}

// Производные таблицы.
var (
	codeNumbers [codeCount]uint16
	codesByID   map[string]Code
)

func init() {
	codesByID = make(map[string]Code, codeCount)
	for c := Code(0); c < codeCount; c++ {
		info := catalog[c]
		if info.id == "" || info.format == "" {
			panic(fmt.Errorf("diag: code %d missing from catalog", c))
		}
		n, ok := parseCodeNumber(info.id)
		if !ok {
			panic(fmt.Errorf("diag: malformed code id %q", info.id))
		}
		if _, dup := codesByID[info.id]; dup {
			panic(fmt.Errorf("diag: duplicate code id %q", info.id))
		}
		codeNumbers[c] = n
		codesByID[info.id] = c
	}
}

// parseCodeNumber reads the four digits after the one-letter prefix.
func parseCodeNumber(id string) (uint16, bool) {
	if len(id) != 5 {
		return 0, false
	}
	n, err := strconv.ParseUint(id[1:], 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

// DefaultSeverity returns the catalog severity; unknown codes are Fatal.
func (c Code) DefaultSeverity() Severity {
	if c >= codeCount {
		return SevFatal
	}
	return catalog[c].sev
}

// ID returns the stable alphanumeric code such as "E0100".
func (c Code) ID() string {
	if c >= codeCount {
		return "E????"
	}
	return catalog[c].id
}

// Format returns the descriptive format string.
func (c Code) Format() string {
	if c >= codeCount {
		return "<unknown diagnostic>"
	}
	return catalog[c].format
}

// Number returns the numeric part of ID, 0 for unknown codes.
func (c Code) Number() uint16 {
	if c >= codeCount {
		return 0
	}
	return codeNumbers[c]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Format())
}

// LookupCode finds the code with the given stable id.
func LookupCode(id string) (Code, bool) {
	c, ok := codesByID[id]
	return c, ok
}

// CodeCount returns the number of catalog entries.
func CodeCount() int { return int(codeCount) }
