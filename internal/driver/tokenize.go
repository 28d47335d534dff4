package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"nova/internal/diag"
	"nova/internal/lexer"
	"nova/internal/source"
	"nova/internal/token"
	"nova/internal/trace"
)

// SourceExt is the extension TokenizeDir looks for.
const SourceExt = ".nv"

// register загружает файл в Manager; ошибка загрузки превращается в
// Fatal-диагностику, которую возвращает Emit.
func (s *Session) register(path string) (source.FileID, error) {
	id, err := s.Sources.Load(path)
	if err == nil {
		return id, nil
	}
	code := diag.FatalCannotOpenFile
	if errors.Is(err, source.ErrFileTooLarge) {
		code = diag.FatalFileTooLarge
	}
	emitErr := s.Diags.ReportNoLoc(code).Str(fmt.Sprintf("cannot load '%s': %v", path, err)).Emit()
	if emitErr == nil {
		// фатальный код всегда возвращает ошибку; страховка для custom handler-а без fatal
		emitErr = err
	}
	return 0, emitErr
}

// TokenizeFile loads and lexes one file with the session identifier table.
// Diagnostics of the check pass are replayed like in TokenizeFiles; on a
// Fatal error the result is still returned.
func (s *Session) TokenizeFile(ctx context.Context, path string) (*FileResult, error) {
	root := trace.Begin(s.tracer, trace.ScopeSession, "tokenize", trace.SpanFromContext(ctx))
	defer root.End(path)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := s.register(path)
	if err != nil {
		return nil, err
	}
	res := s.lexFile(id, path, s.Idents, root.ID())
	if s.opts.Check {
		res.Diagnostics = s.checkIsolated(res.Tokens)
	}
	return &res, s.replay([]FileResult{res})
}

// TokenizeFiles registers every path sequentially, lexes them in parallel
// with one identifier table per file, then replays the per-file
// diagnostics into the session engine in input order. Replay stops with a
// Fatal error once the engine reaches its error limit.
func (s *Session) TokenizeFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	root := trace.Begin(s.tracer, trace.ScopeSession, "tokenize", trace.SpanFromContext(ctx)).
		WithExtra("files", strconv.Itoa(len(paths)))
	defer root.End("")

	reg := trace.Begin(s.tracer, trace.ScopePhase, "register", root.ID())
	ids := make([]source.FileID, len(paths))
	for i, path := range paths {
		id, err := s.register(path)
		if err != nil {
			reg.End("failed")
			return nil, err
		}
		ids[i] = id
	}
	reg.End("")

	jobs := s.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	lex := trace.Begin(s.tracer, trace.ScopePhase, "lex", root.ID())
	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			idents := token.NewIdentTable()
			res := s.lexFile(ids[i], path, idents, lex.ID())
			if s.opts.Check {
				res.Diagnostics = s.checkIsolated(res.Tokens)
			}
			// индекс i уникален, мьютекс не нужен
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		lex.End("cancelled")
		return nil, err
	}
	lex.End("")

	return results, s.replay(results)
}

// checkIsolated прогоняет проверку на отдельном Engine с Bag-обработчиком:
// сессионный Engine не потокобезопасен.
func (s *Session) checkIsolated(toks []token.Token) []diag.Message {
	eng := diag.NewEngine(s.Sources)
	// конфиг уже проверен в NewSession
	_ = eng.Apply(s.opts.Diagnostics)
	bag := diag.NewBag(0)
	eng.SetHandler(bag.Handler())
	CheckTokens(eng, s.Sources, toks)
	return bag.Items()
}

// replay переносит сообщения в сессионный Engine. Лимит ошибок и
// подавление предупреждений считаются здесь же: custom handler (например
// Bag) не ведёт счётчики Engine.
func (s *Session) replay(results []FileResult) error {
	limit := s.Diags.ErrorLimit()
	var errs uint32
	for i := range results {
		for _, m := range results[i].Diagnostics {
			countsAsError := m.Severity >= diag.SevError
			if m.Severity == diag.SevWarning {
				switch {
				case s.Diags.WarningsAsErrors():
					countsAsError = true
				case s.Diags.SuppressWarnings():
					continue
				}
			}
			if err := s.Diags.Emit(m); err != nil {
				return err
			}
			if countsAsError {
				errs++
			}
			if s.Diags.ShouldStop() || errs >= limit {
				return s.Diags.ReportNoLoc(diag.FatalTooManyErrors).
					Str("too many errors emitted, stopping now").Emit()
			}
		}
	}
	return nil
}

// lexFile lexes one registered file, consulting the cache first.
func (s *Session) lexFile(id source.FileID, path string, idents *token.IdentTable, parent uint64) FileResult {
	span := trace.Begin(s.tracer, trace.ScopeFile, "lex-file", parent)
	res := FileResult{Path: path, FileID: id, Idents: idents}
	f := s.Sources.File(id)

	if toks, ok, err := s.opts.Cache.Get(f, idents); err != nil {
		trace.Point(s.tracer, trace.ScopeFile, "cache-error", err.Error(), span.ID())
	} else if ok {
		res.Tokens, res.Cached = toks, true
	}
	if !res.Cached {
		res.Tokens = lexer.New(s.Sources, idents, id).All()
		if err := s.opts.Cache.Put(f, res.Tokens); err != nil {
			trace.Point(s.tracer, trace.ScopeFile, "cache-error", err.Error(), span.ID())
		}
	}

	span.WithExtra("tokens", strconv.Itoa(len(res.Tokens))).
		WithExtra("cached", strconv.FormatBool(res.Cached)).
		End(path)
	return res
}

// listSourceFiles возвращает отсортированный список всех *.nv файлов в директории
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir tokenizes every *.nv file under dir.
func (s *Session) TokenizeDir(ctx context.Context, dir string) ([]FileResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return s.TokenizeFiles(ctx, files)
}
