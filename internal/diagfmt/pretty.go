package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"nova/internal/diag"
	"nova/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	gutter *color.Color
	marker *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevNote:    color.New(color.FgCyan, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevFatal:   color.New(color.FgHiRed, color.Bold),
		},
		gutter: color.New(color.FgBlue),
		marker: color.New(color.FgGreen, color.Bold),
	}
	all := []*color.Color{p.gutter, p.marker}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого сообщения печатает:
// <path>:<line>:<col>: <severity> <ID>: <text>
// затем строки контекста и строку с маркерами: '^' под позицией, '~' под
// дополнительными диапазонами той же строки. Сообщения без позиции
// печатаются одной строкой.
func Pretty(w io.Writer, msgs []diag.Message, sm *source.Manager, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, m := range msgs {
		prettyOne(w, m, sm, opts, pal)
	}
}

func prettyOne(w io.Writer, m diag.Message, sm *source.Manager, opts PrettyOpts, pal palette) {
	text := m.Text
	if opts.Width > 0 && runewidth.StringWidth(text) > int(opts.Width) {
		text = runewidth.Truncate(text, int(opts.Width), "...")
	}
	head := pal.sev[m.Severity].Sprintf("%s %s", m.Severity, m.Code.ID())

	var f *source.File
	if sm != nil && m.Loc.IsValid() {
		f = sm.File(m.Loc.File())
	}
	if f == nil {
		fmt.Fprintf(w, "%s: %s\n", head, text)
		return
	}

	lc := sm.LineColumn(m.Loc)
	path := formatPath(f.Name, opts.PathMode, opts.BaseDir)
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, lc.Line, lc.Col, head, text)

	first := lc.Line
	if opts.Context > 0 {
		if back := uint32(opts.Context); back < first {
			first -= back
		} else {
			first = 1
		}
	}
	gw := len(fmt.Sprint(lc.Line))
	for n := first; n <= lc.Line; n++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gw, n), expandTabs(sm.Line(f.ID, n)))
	}

	line := sm.Line(f.ID, lc.Line)
	marks := markerLine(sm, line, f.ID, lc, m.Ranges)
	fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*s |", gw, ""), pal.marker.Sprint(marks))
}

// markerLine строит строку маркеров в колонках отображения.
func markerLine(sm *source.Manager, line string, id source.FileID, at source.LineCol, ranges []source.Range) string {
	width := displayWidth(line, len(line)) + 1
	marks := make([]byte, width)
	for i := range marks {
		marks[i] = ' '
	}
	for _, r := range ranges {
		if r.Begin.File() != id {
			continue
		}
		b, e := sm.Resolve(r)
		if b.Line != at.Line {
			continue
		}
		from := displayWidth(line, int(b.Col)-1)
		to := width
		if e.Line == at.Line {
			to = max(displayWidth(line, int(e.Col)-1), from+1)
		}
		for i := from; i < to && i < width; i++ {
			marks[i] = '~'
		}
	}
	caret := displayWidth(line, int(at.Col)-1)
	if caret < width {
		marks[caret] = '^'
	}
	return strings.TrimRight(string(marks), " ")
}

// displayWidth returns the terminal width of line[:n], tabs counted as 4.
func displayWidth(line string, n int) int {
	if n > len(line) {
		n = len(line)
	}
	if n < 0 {
		n = 0
	}
	return runewidth.StringWidth(expandTabs(line[:n]))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
