package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"nova/internal/source"
	"nova/internal/token"
)

type TokenOutput struct {
	Kind   string       `json:"kind"`
	Text   string       `json:"text,omitempty"`
	Offset uint32       `json:"offset"`
	Len    uint32       `json:"len"`
	Line   uint32       `json:"line,omitempty"`
	Col    uint32       `json:"col,omitempty"`
	Flags  []string     `json:"flags,omitempty"`
	Ident  *IdentOutput `json:"ident,omitempty"`
}

type IdentOutput struct {
	Name    string `json:"name"`
	Keyword bool   `json:"keyword,omitempty"`
}

func flagList(f token.Flags) []string {
	var out []string
	if f&token.StartOfLine != 0 {
		out = append(out, "start_of_line")
	}
	if f&token.LeadingSpace != 0 {
		out = append(out, "leading_space")
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, sm *source.Manager) error {
	for i, tok := range tokens {
		startPos, endPos := sm.Resolve(tok.Range())

		if _, err := fmt.Fprintf(w, "%3d: %-18s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if text := sm.Text(tok.Range()); text != "" {
			fmt.Fprintf(w, " %q", text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if fl := tok.Flags.String(); fl != "" {
			fmt.Fprintf(w, " [%s]", fl)
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// BuildTokensOutput converts tokens for JSON output, stopping after EOF.
func BuildTokensOutput(tokens []token.Token, sm *source.Manager) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:   tok.Kind.String(),
			Offset: tok.Loc.Offset(),
			Len:    tok.Len,
			Flags:  flagList(tok.Flags),
		}
		if sm != nil {
			out.Text = sm.Text(tok.Range())
			if tok.Loc.IsValid() {
				lc := sm.LineColumn(tok.Loc)
				out.Line, out.Col = lc.Line, lc.Col
			}
		}
		if tok.Ident != nil {
			out.Ident = &IdentOutput{Name: tok.Ident.Name, Keyword: tok.Ident.IsKeyword}
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, sm *source.Manager) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, sm))
}
