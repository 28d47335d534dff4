package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nova/internal/diag"
)

const defaultConfigName = "nova.toml"

// loadDiagConfig reads --config (or ./nova.toml when present) and applies
// the command-line overrides on top.
func loadDiagConfig(cmd *cobra.Command) (diag.Config, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return diag.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg := diag.DefaultConfig()
	switch {
	case path != "":
		if cfg, err = diag.LoadConfig(path); err != nil {
			return diag.Config{}, err
		}
	default:
		if _, statErr := os.Stat(defaultConfigName); statErr == nil {
			if cfg, err = diag.LoadConfig(defaultConfigName); err != nil {
				return diag.Config{}, err
			}
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return diag.Config{}, statErr
		}
	}

	if werror, _ := flags.GetBool("werror"); werror {
		cfg.WarningsAsErrors = true
	}
	if limit, _ := flags.GetUint32("error-limit"); limit > 0 {
		cfg.ErrorLimit = limit
	}
	if color, _ := flags.GetString("color"); color != "" {
		if _, err := diag.ParseColorMode(color); err != nil {
			return diag.Config{}, err
		}
		cfg.Color = color
	}
	return cfg, nil
}

// useColor resolves a colour mode for f the way the diagnostic handler does.
func useColor(mode string, f *os.File) bool {
	m, err := diag.ParseColorMode(mode)
	if err != nil {
		return false
	}
	switch m {
	case diag.ColorOn:
		return true
	case diag.ColorOff:
		return false
	}
	return os.Getenv("NO_COLOR") == "" && isTerminal(f)
}
