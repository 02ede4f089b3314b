package config

import (
	"os"
	"path/filepath"
)

// RootPath returns the directory holding the config file and local data.
// It uses $TASKMANAGER_PATH if set, otherwise defaults to ~/.taskmanager.
func RootPath() string {
	if v := os.Getenv("TASKMANAGER_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".taskmanager")
	}
	return filepath.Join(home, ".taskmanager")
}

// ConfigPath returns the default config file path.
func ConfigPath() string {
	return filepath.Join(RootPath(), "config.yaml")
}
