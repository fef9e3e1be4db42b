package paths

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "treemv"

	// EnvStateDir overrides the state directory (log files)
	EnvStateDir = "TREEMV_STATE_DIR"

	// Separator is the only separator used in tree paths
	Separator = "/"
)

// Normalize converts raw input into a canonical root-relative path.
// The second result reports whether raw carried a trailing separator,
// which is how snapshots and specifications mark directories.
// The root itself normalizes to "".
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, Separator)
	}

	dir := strings.HasSuffix(raw, Separator)
	for strings.HasPrefix(raw, "./") {
		raw = raw[2:]
	}
	if raw == "" || raw == "." {
		return "", dir
	}

	cleaned := path.Clean(raw)
	if cleaned == "." {
		return "", dir
	}
	// An absolute path keeps its leading separator so callers can reject it.
	return cleaned, dir
}

// Escapes reports whether a canonical path is absolute or climbs above its root.
func Escapes(p string) bool {
	return strings.HasPrefix(p, Separator) ||
		p == ".." ||
		strings.HasPrefix(p, "../")
}

// Join joins two canonical paths, treating "" as the root.
func Join(dir, rel string) string {
	switch {
	case dir == "":
		return rel
	case rel == "":
		return dir
	default:
		return dir + Separator + rel
	}
}

// IsUnder reports whether p lies strictly below dir. Everything but the
// root itself lies below the root.
func IsUnder(p, dir string) bool {
	if dir == "" {
		return p != ""
	}
	return len(p) > len(dir) && strings.HasPrefix(p, dir) && p[len(dir)] == '/'
}

// Ancestors returns every proper ancestor of p, outermost first.
func Ancestors(p string) []string {
	var out []string
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			out = append(out, p[:i])
		}
	}
	return out
}

// Base returns the last segment of a canonical path.
func Base(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// StateDir returns the directory treemv writes its log file to.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	// Pick up XDG_* changes made after process start.
	xdg.Reload()
	return filepath.Join(xdg.StateHome, AppDirName)
}
