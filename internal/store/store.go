package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"taskmanager/internal/config"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Store defines the interface for key-value persistence. Each key holds one
// opaque value that is always replaced as a whole.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Lifecycle
	Close() error
}

// Open creates the backend selected by the storage configuration.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		return NewSQLiteStore(cfg.Path)
	case config.DriverFile:
		return NewFileStore(cfg.Path)
	case config.DriverRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Unavailable returns a Store standing in for a backend that could not be
// opened. Reads and writes fail with err, so callers keep running on their
// in-memory state and report the failure like any other storage error.
func Unavailable(err error) Store {
	return unavailableStore{err: err}
}

type unavailableStore struct {
	err error
}

func (s unavailableStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("storage unavailable: %w", s.err)
}

func (s unavailableStore) Set(ctx context.Context, key string, value []byte) error {
	return fmt.Errorf("storage unavailable: %w", s.err)
}

func (s unavailableStore) Delete(ctx context.Context, key string) error {
	return fmt.Errorf("storage unavailable: %w", s.err)
}

func (s unavailableStore) Close() error {
	return nil
}
