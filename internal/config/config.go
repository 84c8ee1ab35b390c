// Package config locates the user vocabulary resource
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// VocabularyFileName is looked up inside the config root.
const VocabularyFileName = "vocabularies.yaml"

// Source names where a setting was taken from.
type Source string

const (
	SourceFlag    Source = "CLI --vocab"
	SourceEnv     Source = "REFORMATTER_VOCAB"
	SourceConfig  Source = "config root"
	SourceBuiltin Source = "builtin"
)

// GetConfigRoot returns the directory holding user configuration
func GetConfigRoot() string {
	// Check environment variable first
	if dir := os.Getenv("REFORMATTER_CONFIG_DIR"); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", "reformatter")
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "reformatter")
		}
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "reformatter")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "reformatter")
		}
	}

	return filepath.Join(os.TempDir(), "reformatter")
}

// VocabularyFile decides which extra vocabulary resource to load on top of
// the builtin ones. An explicit flag wins, then REFORMATTER_VOCAB, then a
// vocabularies.yaml in the config root if one exists. An empty path means
// builtin only.
func VocabularyFile(flagValue string) (string, Source) {
	if flagValue != "" {
		return flagValue, SourceFlag
	}
	if env := os.Getenv("REFORMATTER_VOCAB"); env != "" {
		return env, SourceEnv
	}
	candidate := filepath.Join(GetConfigRoot(), VocabularyFileName)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, SourceConfig
	}
	return "", SourceBuiltin
}
