package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func TestFileStore_GetNotFound(t *testing.T) {
	store, _ := setupFileStore(t)

	_, err := store.Get(context.Background(), "@tasks")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_SetThenGet(t *testing.T) {
	store, dir := setupFileStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "@tasks", []byte(`{"version":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	store.Set(ctx, "@tasks", []byte(`{"version":1,"tasks":[]}`))

	got, err := store.Get(ctx, "@tasks")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"version":1,"tasks":[]}` {
		t.Errorf("unexpected value %q", got)
	}

	// Only the value file and the lock file remain; temp files are cleaned up.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected 2 files, got %v", names)
	}
}

func TestFileStore_EscapesKeys(t *testing.T) {
	store, dir := setupFileStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "../escape/attempt", []byte("x")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape")); !os.IsNotExist(err) {
		t.Errorf("expected key to stay inside the store directory")
	}

	got, err := store.Get(ctx, "../escape/attempt")
	if err != nil || string(got) != "x" {
		t.Errorf("expected x, got %q (%v)", got, err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	store, _ := setupFileStore(t)
	ctx := context.Background()

	store.Set(ctx, "@tasks", []byte("x"))
	if err := store.Delete(ctx, "@tasks"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "@tasks"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "@tasks"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestFileStore_SharedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shared")
	ctx := context.Background()

	a, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	defer a.Close()
	b, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	defer b.Close()

	if err := a.Set(ctx, "@tasks", []byte("from a")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := b.Get(ctx, "@tasks")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "from a" {
		t.Errorf("expected %q, got %q", "from a", got)
	}
}

func TestNewFileStore_RequiresDir(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
