// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveConfigPath resolves the config file location from user input.
//
// Lookup order:
//   - explicit path (from the --config flag), with ~ expansion
//   - HANKTUI_CONFIG environment variable
//   - ~/.config/hanktui/config.yaml
//
// The returned path may not exist yet; callers decide whether to create it.
func ResolveConfigPath(explicit string) string {
	if explicit != "" {
		return ExpandHome(explicit)
	}
	if env := os.Getenv("HANKTUI_CONFIG"); env != "" {
		return ExpandHome(env)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "hanktui", "config.yaml")
}

// ExpandHome replaces a leading ~ or ~/ with the user's home directory.
// Paths without a tilde prefix are cleaned and returned unchanged.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Clean(path)
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return filepath.Clean(path)
}
