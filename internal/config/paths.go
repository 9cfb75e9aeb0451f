package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoBasePath is returned when no base path is configured.
	ErrNoBasePath = errors.New("no base path configured")
	// ErrNoBazelPath is returned when no bazel binary is configured.
	ErrNoBazelPath = errors.New("no bazel path configured")
)

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths, including "~user" forms, are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Validate checks that the fields required to run a check are set.
func Validate(cfg *Config) error {
	if cfg.BasePath == "" {
		return ErrNoBasePath
	}
	if cfg.Bazel.Path == "" {
		return ErrNoBazelPath
	}
	return nil
}
