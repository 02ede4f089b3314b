package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned by Load when the config file does not exist.
// The returned config is still usable and holds the defaults.
var ErrNoConfig = errors.New("config file not found")

// Load reads a YAML config file and applies defaults. A missing file yields
// the default configuration together with an error wrapping ErrNoConfig.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ApplyDefaults(&cfg)
			return &cfg, fmt.Errorf("%w: %s", ErrNoConfig, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverSQLite
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Driver {
		case DriverSQLite:
			cfg.Storage.Path = filepath.Join(RootPath(), "taskmanager.db")
		case DriverFile:
			cfg.Storage.Path = filepath.Join(RootPath(), "data")
		}
	}
	if cfg.Storage.Driver == DriverRedis && cfg.Storage.RedisAddr == "" {
		cfg.Storage.RedisAddr = "127.0.0.1:6379"
	}
	if cfg.App.Name == "" {
		cfg.App.Name = "Task Manager"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.App.Description == "" {
		cfg.App.Description = "Adjust your preferences here."
	}
	if cfg.App.LogFile == "" {
		cfg.App.LogFile = filepath.Join(RootPath(), "taskmanager.log")
	}
}
