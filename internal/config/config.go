package config

import (
	"fmt"

	"taskmanager/internal/models"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	App     AppConfig     `yaml:"app"`
}

// ServerConfig configures the HTTP presentation.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// AppConfig holds the metadata shown on the settings screen.
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	LogFile     string `yaml:"log_file"`
}

// Info returns the settings screen metadata.
func (c AppConfig) Info() models.AppInfo {
	return models.AppInfo{
		Name:        c.Name,
		Version:     c.Version,
		Description: c.Description,
		Actions:     models.DefaultActions(),
	}
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for driver %q", c.Storage.Driver)
		}
	case DriverRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	return nil
}
