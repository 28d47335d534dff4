package driver

import (
	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
	"nova/internal/trace"
)

// Options configures a tokenize session.
type Options struct {
	Jobs        int         // параллелизм, <= 0 означает GOMAXPROCS
	Cache       *TokenCache // nil отключает кэш
	Check       bool        // прогонять CheckTokens по результату
	Diagnostics diag.Config
	Tracer      trace.Tracer // nil означает trace.Nop
}

// DefaultOptions returns options with checking enabled and default diagnostics.
func DefaultOptions() Options {
	return Options{
		Check:       true,
		Diagnostics: diag.DefaultConfig(),
	}
}

// Session owns the source manager and diagnostic engine of one run.
// It is not safe for concurrent use; TokenizeFiles parallelises internally.
type Session struct {
	Sources *source.Manager
	Idents  *token.IdentTable
	Diags   *diag.Engine

	opts   Options
	tracer trace.Tracer
}

// NewSession creates a session; the diagnostic config must be valid.
// A zero Diagnostics config is replaced by diag.DefaultConfig.
func NewSession(opts Options) (*Session, error) {
	if opts.Diagnostics == (diag.Config{}) {
		opts.Diagnostics = diag.DefaultConfig()
	}
	sm := source.NewManager()
	eng := diag.NewEngine(sm)
	if err := eng.Apply(opts.Diagnostics); err != nil {
		return nil, err
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	return &Session{
		Sources: sm,
		Idents:  token.NewIdentTable(),
		Diags:   eng,
		opts:    opts,
		tracer:  tr,
	}, nil
}

// FileResult is the outcome of tokenizing one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	// Idents is the table the identifier tokens point into.
	Idents      *token.IdentTable
	Diagnostics []diag.Message
	Cached      bool
}

// Errors returns how many diagnostics of the file are errors.
func (r *FileResult) Errors() int {
	n := 0
	for _, m := range r.Diagnostics {
		if m.Severity >= diag.SevError {
			n++
		}
	}
	return n
}
