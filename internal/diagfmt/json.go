package diagfmt

import (
	"encoding/json"
	"io"

	"nova/internal/diag"
	"nova/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string         `json:"severity"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Location *LocationJSON  `json:"location,omitempty"`
	Ranges   []LocationJSON `json:"ranges,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// makeLocation возвращает nil для невалидных позиций и неизвестных файлов.
func makeLocation(r source.Range, sm *source.Manager, opts JSONOpts) *LocationJSON {
	if sm == nil || !r.Begin.IsValid() {
		return nil
	}
	f := sm.File(r.Begin.File())
	if f == nil {
		return nil
	}
	end := r.End
	if !end.IsValid() {
		end = r.Begin
	}
	loc := &LocationJSON{
		File:      formatPath(f.Name, opts.PathMode, opts.BaseDir),
		StartByte: r.Begin.Offset(),
		EndByte:   end.Offset(),
	}
	if opts.IncludePositions {
		startPos, endPos := sm.Resolve(source.Range{Begin: r.Begin, End: end})
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(msgs []diag.Message, sm *source.Manager, opts JSONOpts) DiagnosticsOutput {
	n := len(msgs)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, n)
	for _, m := range msgs[:n] {
		d := DiagnosticJSON{
			Severity: m.Severity.String(),
			Code:     m.Code.ID(),
			Message:  m.Text,
			Location: makeLocation(source.PointRange(m.Loc), sm, opts),
		}
		if opts.IncludeRanges {
			for _, r := range m.Ranges {
				if loc := makeLocation(r, sm, opts); loc != nil {
					d.Ranges = append(d.Ranges, *loc)
				}
			}
		}
		diagnostics = append(diagnostics, d)
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, msgs []diag.Message, sm *source.Manager, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(msgs, sm, opts))
}
