package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"nova/internal/diag"
	"nova/internal/diagfmt"
	"nova/internal/driver"
	"nova/internal/trace"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.nv|dir ...",
		Short: "Tokenize nova source files",
		Long:  `Tokenize breaks nova source files into tokens and reports lexical diagnostics`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTokenize,
	}
	f := cmd.Flags()
	f.String("format", "pretty", "token output format (pretty|json|none)")
	f.String("diag-format", "plain", "diagnostic output format (plain|pretty|short|json)")
	f.Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	f.Bool("cache", false, "use the on-disk token cache")
	f.String("cache-dir", "", "token cache directory (default: $XDG_CACHE_HOME/nova)")
	f.Bool("no-check", false, "skip lexical checks")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	diagFormat, _ := cmd.Flags().GetString("diag-format")
	jobs, _ := cmd.Flags().GetInt("jobs")
	useCache, _ := cmd.Flags().GetBool("cache")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	noCheck, _ := cmd.Flags().GetBool("no-check")

	switch format {
	case "pretty", "json", "none":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	switch diagFormat {
	case "plain", "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown diag-format: %s", diagFormat)
	}

	cfg, err := loadDiagConfig(cmd)
	if err != nil {
		return err
	}
	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.DefaultOptions()
	opts.Diagnostics = cfg
	opts.Jobs = jobs
	opts.Check = !noCheck
	opts.Tracer = tracer
	if useCache || cacheDir != "" {
		if opts.Cache, err = driver.OpenTokenCache(cacheDir); err != nil {
			return fmt.Errorf("failed to open token cache: %w", err)
		}
	}

	s, err := driver.NewSession(opts)
	if err != nil {
		return err
	}
	s.Diags.SetOutput(cmd.ErrOrStderr())

	var bag *diag.Bag
	if diagFormat != "plain" {
		bag = diag.NewBag(0)
		s.Diags.SetHandler(bag.Handler())
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	results, runErr := tokenizeArgs(ctx, s, args)

	if bag != nil {
		if err := renderDiagnostics(cmd.ErrOrStderr(), bag, s, diagFormat, cfg.Color); err != nil {
			return err
		}
	}
	if runErr != nil {
		if errors.Is(runErr, diag.ErrFatal) {
			dumpRing(cmd, tracer)
		}
		return runErr
	}

	if err := printTokens(cmd.OutOrStdout(), s, results, format); err != nil {
		return err
	}

	errs := int(s.Diags.ErrorCount())
	if bag != nil {
		errs = 0
		for _, m := range bag.Items() {
			if m.Severity >= diag.SevError {
				errs++
			}
		}
	}
	if errs > 0 {
		return fmt.Errorf("tokenize: %d error(s)", errs)
	}
	return nil
}

func tokenizeArgs(ctx context.Context, s *driver.Session, args []string) ([]driver.FileResult, error) {
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err == nil && info.IsDir() {
			return s.TokenizeDir(ctx, args[0])
		}
		res, err := s.TokenizeFile(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return []driver.FileResult{*res}, nil
	}
	return s.TokenizeFiles(ctx, args)
}

func renderDiagnostics(w io.Writer, bag *diag.Bag, s *driver.Session, format, color string) error {
	bag.Sort()
	switch format {
	case "short":
		if out := diag.FormatShort(bag.Items(), s.Sources); out != "" {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		return nil
	case "json":
		return diagfmt.JSON(w, bag.Items(), s.Sources, diagfmt.JSONOpts{IncludePositions: true, IncludeRanges: true})
	default:
		diagfmt.Pretty(w, bag.Items(), s.Sources, diagfmt.PrettyOpts{
			Color:   useColor(color, os.Stderr),
			Context: 1,
		})
		return nil
	}
}

func printTokens(w io.Writer, s *driver.Session, results []driver.FileResult, format string) error {
	for i, res := range results {
		switch format {
		case "none":
			continue
		case "json":
			if err := diagfmt.FormatTokensJSON(w, res.Tokens, s.Sources); err != nil {
				return err
			}
		default:
			if len(results) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "== %s\n", res.Path)
			}
			if err := diagfmt.FormatTokensPretty(w, res.Tokens, s.Sources); err != nil {
				return err
			}
		}
	}
	return nil
}
