package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetHome returns the scheme finder home directory, where the session
// database, reports and config live by default.
// Priority order:
//  1. SCHEMEFINDER_HOME environment variable (if set)
//  2. .schemefinder under the current working directory
//
// The directory is created if it doesn't exist.
func GetHome() (string, error) {
	if home := os.Getenv("SCHEMEFINDER_HOME"); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create home directory: %w", err)
		}
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	home := filepath.Join(cwd, ".schemefinder")
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create home directory: %w", err)
	}
	return home, nil
}
