package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the [diagnostics] table of a nova.toml file.
type Config struct {
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	SuppressWarnings bool   `toml:"suppress_warnings"`
	ErrorLimit       uint32 `toml:"error_limit"`
	Color            string `toml:"color"`
}

type configFile struct {
	Diagnostics Config `toml:"diagnostics"`
}

// DefaultConfig returns the settings of a fresh engine.
func DefaultConfig() Config {
	return Config{
		ErrorLimit: DefaultErrorLimit,
		Color:      ColorAuto.String(),
	}
}

// LoadConfig reads path; keys absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	file := configFile{Diagnostics: DefaultConfig()}
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, fmt.Errorf("diag: failed to parse %s: %w", path, err)
	}
	return finishConfig(path, file.Diagnostics, meta)
}

// ParseConfig is LoadConfig over an in-memory document.
func ParseConfig(data string) (Config, error) {
	file := configFile{Diagnostics: DefaultConfig()}
	meta, err := toml.Decode(data, &file)
	if err != nil {
		return Config{}, fmt.Errorf("diag: failed to parse config: %w", err)
	}
	return finishConfig("config", file.Diagnostics, meta)
}

func finishConfig(name string, cfg Config, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("diag: %s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if _, err := ParseColorMode(cfg.Color); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
