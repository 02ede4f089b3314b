package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("TASKMANAGER_PATH", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config")
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Server.Addr)
	}
	if cfg.App.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", cfg.App.Version)
	}
}

func TestLoad_DefaultPathsUnderRoot(t *testing.T) {
	root := t.TempDir()
	t.Setenv("TASKMANAGER_PATH", root)

	cfg := Default()
	if want := filepath.Join(root, "taskmanager.db"); cfg.Storage.Path != want {
		t.Errorf("expected %q, got %q", want, cfg.Storage.Path)
	}
	if want := filepath.Join(root, "config.yaml"); ConfigPath() != want {
		t.Errorf("expected %q, got %q", want, ConfigPath())
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
storage:
  driver: file
  path: /tmp/tasks
app:
  name: My Tasks
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("expected addr override, got %q", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != DriverFile || cfg.Storage.Path != "/tmp/tasks" {
		t.Errorf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.App.Name != "My Tasks" {
		t.Errorf("expected name override, got %q", cfg.App.Name)
	}
	if cfg.App.Version != "1.0.0" {
		t.Errorf("expected default version, got %q", cfg.App.Version)
	}
}

func TestLoad_FileDriverDefaultPath(t *testing.T) {
	root := t.TempDir()
	t.Setenv("TASKMANAGER_PATH", root)
	path := writeConfig(t, "storage:\n  driver: file\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := filepath.Join(root, "data"); cfg.Storage.Path != want {
		t.Errorf("expected %q, got %q", want, cfg.Storage.Path)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "postgres" }, wantErr: true},
		{name: "file driver without path", mutate: func(c *Config) {
			c.Storage.Driver = DriverFile
			c.Storage.Path = ""
		}, wantErr: true},
		{name: "redis driver without addr", mutate: func(c *Config) {
			c.Storage.Driver = DriverRedis
			c.Storage.RedisAddr = ""
		}, wantErr: true},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TASKMANAGER_PATH", t.TempDir())
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAppConfigInfo(t *testing.T) {
	info := AppConfig{Name: "Task Manager", Version: "1.0.0"}.Info()
	if len(info.Actions) != 3 {
		t.Fatalf("expected 3 settings actions, got %d", len(info.Actions))
	}
	if info.Name != "Task Manager" || info.Version != "1.0.0" {
		t.Errorf("unexpected info: %+v", info)
	}
}
