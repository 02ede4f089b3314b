package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"taskmanager/internal/tui"
)

// newTUICommand returns the tui subcommand.
func newTUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal interface",
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	// Logs would corrupt the screen, so they go to a file once the config
	// says where.
	configureLogging(io.Discard, false)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.App.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	configureLogging(logFile, cmd.Bool("debug"))

	a := openApp(ctx, cfg)
	defer a.Close()

	return tui.Run(ctx, a.list, cfg.App.Info(), a.list.LoadErr())
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
