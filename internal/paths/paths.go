// Package paths resolves workspace locations and provides the filesystem
// path helpers used by the storage layer: absolute/relative detection per
// host platform, display-relative paths, and filename sanitizing.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Workspace directory and file names. A workspace is a base directory with
// include/ and occlude/ trees holding the same three files.
const (
	DefaultDirName   = ".giantt"
	IncludeDirName   = "include"
	OccludeDirName   = "occlude"
	ItemsFileName    = "items.txt"
	LogsFileName     = "logs.jsonl"
	MetadataFileName = "metadata.json"
)

// EnvDataDir overrides the workspace location.
const EnvDataDir = "GIANTT_DATA_DIR"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "GIANTT_CONFIG_DIR"

// platformDir holds platform lookups that can be overridden in tests.
var platformDir = struct {
	homeDir func() (string, error)
	getwd   func() (string, error)
}{
	homeDir: os.UserHomeDir,
	getwd:   os.Getwd,
}

// ResolveDataDir returns the workspace base directory following the
// precedence chain: flag > config value > GIANTT_DATA_DIR env >
// $(CWD)/.giantt if it exists > ~/.giantt.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, DefaultDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > GIANTT_CONFIG_DIR env > ~/.config/giantt.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "giantt"), nil
}

// WorkspaceFile returns the path of one workspace file, selected by name and
// the occlude flag.
func WorkspaceFile(baseDir, name string, occlude bool) string {
	sub := IncludeDirName
	if occlude {
		sub = OccludeDirName
	}
	return filepath.Join(baseDir, sub, name)
}

// IsAbs reports whether the path is absolute under the host platform's
// conventions, including drive-letter and UNC forms on Windows.
func IsAbs(path string) bool {
	return filepath.IsAbs(path)
}

// Normalize converts separators to the host platform's and cleans the path.
func Normalize(path string) string {
	return filepath.Clean(filepath.FromSlash(path))
}

// ResolveRelative resolves an include path against the directory of the file
// that referenced it. Absolute paths pass through unchanged.
func ResolveRelative(fromFile, path string) string {
	if IsAbs(path) {
		return Normalize(path)
	}
	return filepath.Join(filepath.Dir(fromFile), Normalize(path))
}

// DisplayRel returns path relative to base for display purposes, falling
// back to the absolute path when no relative form exists (different volumes,
// for instance).
func DisplayRel(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

// reservedFilenameChars are stripped by SanitizeFilename. The set covers the
// union of POSIX and Windows reserved characters.
const reservedFilenameChars = `<>:"/\|?*`

// SanitizeFilename strips reserved characters and control bytes from an
// arbitrary string so it is safe as a filename on any supported platform,
// preserving everything else.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(reservedFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if runtime.GOOS == "windows" {
		out = strings.TrimRight(out, ". ")
	}
	return out
}
