package diag

import (
	"fmt"
	"sort"
	"strings"

	"nova/internal/source"
)

type shortEntry struct {
	severity string
	code     string
	path     string
	line     uint32
	col      uint32
	text     string
}

// FormatShort renders messages one per line as
// "<severity> <ID> <path>:<line>:<col> <text>", sorted deterministically.
// Messages without a resolvable location use "<none>:0:0". Newlines inside
// the text are folded to spaces so every entry stays on one line.
func FormatShort(msgs []Message, sm *source.Manager) string {
	if len(msgs) == 0 {
		return ""
	}
	entries := make([]shortEntry, 0, len(msgs))
	for _, m := range msgs {
		e := shortEntry{
			severity: m.Severity.String(),
			code:     m.Code.ID(),
			path:     "<none>",
			text:     strings.Join(strings.Fields(m.Text), " "),
		}
		if sm != nil && m.Loc.IsValid() {
			if f := sm.File(m.Loc.File()); f != nil {
				lc := sm.LineColumn(m.Loc)
				e.path, e.line, e.col = f.Name, lc.Line, lc.Col
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.path != b.path {
			return a.path < b.path
		}
		if a.line != b.line {
			return a.line < b.line
		}
		if a.col != b.col {
			return a.col < b.col
		}
		if a.severity != b.severity {
			return a.severity < b.severity
		}
		return a.code < b.code
	})

	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", e.severity, e.code, e.path, e.line, e.col, e.text)
		if i < len(entries)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
