package source

import (
	"path/filepath"
	"slices"
	"sort"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены (true, если хотя бы одна).
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// buildLineStarts scans content once and records the offset following every '\n'.
// The first line always starts at 0.
func buildLineStarts(content []byte) []uint32 {
	out := make([]uint32, 1, 1+len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i+1))
		}
	}
	return out
}

// toLineCol finds the greatest line start <= off by binary search.
func toLineCol(lineStarts []uint32, off uint32) LineCol {
	if len(lineStarts) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	// sort.Search отдаёт первый start > off, нужная строка - предыдущая
	idx := sort.Search(len(lineStarts), func(i int) bool {
		return lineStarts[i] > off
	}) - 1
	if idx < 0 {
		return LineCol{}
	}
	return LineCol{Line: uint32(idx + 1), Col: off - lineStarts[idx] + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
