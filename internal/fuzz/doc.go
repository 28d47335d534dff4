// Package fuzztests houses Go fuzz harnesses for the nova front-end
// (source -> lexer -> token check). The goal is to guard against panics and
// broken token-stream invariants on arbitrary input.
//
// Назначение: загрузить байты в Manager, прогнать лексер и проверку токенов,
// сверить инварианты через testkit.
//
// Не делает: генерацию корпусов, запись файлов.
package fuzztests
