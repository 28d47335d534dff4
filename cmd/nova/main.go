package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nova/internal/version"
)

// newRootCmd builds the command tree; tests build their own copy.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "nova",
		Short:        "nova language front-end tools",
		Long:         `nova tokenizes source files and reports lexical diagnostics`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "", "colorize output (auto|on|off); overrides the config file")
	pf.String("config", "", "path to nova.toml (default: ./nova.toml if present)")
	pf.Bool("werror", false, "treat warnings as errors")
	pf.Uint32("error-limit", 0, "stop after this many errors (0 keeps the config value)")
	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|phase|file|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for ring mode")

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// main registers subcommands and runs the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits int
}
