package config

import (
	"os"
	"path/filepath"
)

// IconCandidates lists where the calendar icon is looked for, in order:
// the working directory, then next to the executable and its resources dir.
func IconCandidates(exeDir string) []string {
	candidates := []string{"calendar_icon.ico", "calendar_icon.png"}
	if exeDir != "" {
		candidates = append(candidates,
			filepath.Join(exeDir, "calendar_icon.ico"),
			filepath.Join(exeDir, "resources", "calendar_icon.ico"),
		)
	}
	return candidates
}

// FindIcon returns the first existing icon candidate, or ""
func FindIcon(exeDir string) string {
	for _, path := range IconCandidates(exeDir) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ExecutableDir returns the directory of the running binary, or ""
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}
