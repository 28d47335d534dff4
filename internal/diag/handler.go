package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"nova/internal/source"
)

const labelFromWarning = "Error (from warning)"

// ColorMode controls ANSI colouring of the built-in handler.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

func (m ColorMode) String() string {
	switch m {
	case ColorOn:
		return "on"
	case ColorOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseColorMode accepts "auto", "on", "off" and the empty string (auto).
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "on", "always":
		return ColorOn, nil
	case "off", "never":
		return ColorOff, nil
	}
	return ColorAuto, fmt.Errorf("diag: unknown color mode %q", s)
}

type printer struct {
	out  io.Writer
	mode ColorMode

	note    *color.Color
	warning *color.Color
	error   *color.Color
	fatal   *color.Color
}

func newPrinter(out io.Writer, mode ColorMode) *printer {
	p := &printer{
		out:     out,
		mode:    mode,
		note:    color.New(color.FgCyan, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		error:   color.New(color.FgRed, color.Bold),
		fatal:   color.New(color.FgHiRed, color.Bold),
	}
	enable := useColor(out, mode)
	for _, c := range []*color.Color{p.note, p.warning, p.error, p.fatal} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func useColor(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits int
}

func (p *printer) paint(sev Severity, label string) *color.Color {
	if label == labelFromWarning {
		return p.error
	}
	switch sev {
	case SevNote:
		return p.note
	case SevWarning:
		return p.warning
	case SevFatal:
		return p.fatal
	default:
		return p.error
	}
}

// print writes "<label> <ID>: <body>\n".
func (p *printer) print(sm *source.Manager, msg Message, label string) {
	if p.out == nil {
		return
	}
	head := p.paint(msg.Severity, label).Sprintf("%s %s", label, msg.Code.ID())
	fmt.Fprintf(p.out, "%s: %s\n", head, FormatMessage(sm, msg))
}

// FormatMessage renders the body of a message the way the built-in handler
// does: "<file>:<text> at <line>:<col>" when the location resolves, the bare
// text otherwise.
func FormatMessage(sm *source.Manager, msg Message) string {
	if sm == nil || !msg.Loc.IsValid() {
		return msg.Text
	}
	f := sm.File(msg.Loc.File())
	if f == nil {
		return msg.Text
	}
	lc := sm.LineColumn(msg.Loc)
	return fmt.Sprintf("%s:%s at %d:%d", f.Name, msg.Text, lc.Line, lc.Col)
}
