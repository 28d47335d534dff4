package diagfmt

import (
	"path/filepath"
)

const autoPathLimit = 40

func formatPath(name string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(name); err == nil {
			return filepath.ToSlash(abs)
		}
		return name
	case PathModeRelative:
		if baseDir == "" {
			return name
		}
		abs, err := filepath.Abs(name)
		if err != nil {
			return name
		}
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
		return name
	case PathModeBasename:
		return filepath.Base(name)
	default:
		if filepath.IsAbs(name) && len(name) > autoPathLimit {
			return filepath.Base(name)
		}
		return name
	}
}
