package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"taskmanager/internal/config"
	"taskmanager/internal/store"
	"taskmanager/internal/tasks"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// newRootCommand returns the top-level CLI command.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "taskmanager",
		Usage: "A small to-do list with a web and a terminal interface",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
				Sources: cli.EnvVars("TASKMANAGER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "storage-driver",
				Usage:   "Storage backend: sqlite, file or redis",
				Sources: cli.EnvVars("TASKMANAGER_STORAGE_DRIVER"),
			},
			&cli.StringFlag{
				Name:    "storage-path",
				Usage:   "Database file (sqlite) or data directory (file)",
				Sources: cli.EnvVars("TASKMANAGER_STORAGE_PATH"),
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address for the redis storage driver",
				Sources: cli.EnvVars("TASKMANAGER_REDIS_ADDR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("TASKMANAGER_DEBUG"),
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newTUICommand(),
		},
	}
}

// configureLogging installs the default slog logger writing to w.
func configureLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		if !errors.Is(err, config.ErrNoConfig) {
			return nil, err
		}
		slog.Debug("config not found, using defaults", "path", path)
	}

	// CLI flags override config
	if cmd.IsSet("storage-driver") {
		cfg.Storage.Driver = cmd.String("storage-driver")
		if !cmd.IsSet("storage-path") {
			cfg.Storage.Path = ""
		}
	}
	if cmd.IsSet("storage-path") {
		cfg.Storage.Path = cmd.String("storage-path")
	}
	if cmd.IsSet("redis-addr") {
		cfg.Storage.RedisAddr = cmd.String("redis-addr")
	}
	if cmd.IsSet("addr") {
		cfg.Server.Addr = cmd.String("addr")
	}
	config.ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// app bundles the task list with the store backing it.
type app struct {
	cfg  *config.Config
	kv   store.Store
	list *tasks.List
}

// openApp opens the configured store and loads the task list. Neither step
// is fatal: a store that cannot be opened is replaced by one that fails every
// read and write, and a failed load is kept in the list's LoadErr. Either way
// the application stays usable with an in-memory list and warns about it.
func openApp(ctx context.Context, cfg *config.Config) *app {
	kv, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		err = fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
		slog.Error("storage unavailable, changes will not be saved", "error", err)
		kv = store.Unavailable(err)
	}

	list := tasks.NewList(kv, tasks.WithLogger(slog.Default()))
	loadErr := list.Load(ctx)
	slog.Info("tasks loaded", "driver", cfg.Storage.Driver, "count", list.Len(), "error", loadErr)

	return &app{cfg: cfg, kv: kv, list: list}
}

func (a *app) Close() error {
	return a.kv.Close()
}
