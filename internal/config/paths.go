package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the promptctl data directory. PROMPTCTL_HOME overrides the
// default, which is the user config base: on Linux typically
// $XDG_CONFIG_HOME/promptctl, on macOS ~/Library/Application
// Support/promptctl. Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	if p := strings.TrimSpace(os.Getenv("PROMPTCTL_HOME")); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "promptctl"), nil
}

// PromptsDir is where active prompts live, one markdown file per prompt.
func PromptsDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prompts"), nil
}

// ArchiveDir holds archived prompts.
func ArchiveDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "archive"), nil
}

// FoldersDir holds one subdirectory per user folder.
func FoldersDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "folders"), nil
}

// IndexPath is the JSON search index location.
func IndexPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".index.json"), nil
}

// FilePath is the YAML config file location.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
