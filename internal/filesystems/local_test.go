package filesystems_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/railwayapp/henvdall/internal/filesystems"
)

func TestLocalFS_CopyFile_PreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".env")
	dst := filepath.Join(dir, ".env.bak")

	if err := os.WriteFile(src, []byte("SECRET=abc\n"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	lfs := filesystems.NewLocalFS()
	if err := lfs.CopyFile(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "SECRET=abc\n" {
		t.Errorf("expected backup content to match, got '%s'", string(content))
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestLocalFS_CopyFile_OverwritesExistingBackup(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".env")
	dst := filepath.Join(dir, ".env.bak")

	if err := os.WriteFile(src, []byte("NEW=1\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := os.WriteFile(dst, []byte("OLD=1\nOLDER=2\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if err := filesystems.NewLocalFS().CopyFile(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, _ := os.ReadFile(dst)
	if string(content) != "NEW=1\n" {
		t.Errorf("expected backup to be replaced, got '%s'", string(content))
	}
}

func TestLocalFS_AppendFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	lfs := filesystems.NewLocalFS()

	if err := lfs.AppendFile(path, []byte("A=1\n")); err != nil {
		t.Fatalf("unexpected error creating file: %v", err)
	}
	if err := lfs.AppendFile(path, []byte("B=2\n")); err != nil {
		t.Fatalf("unexpected error appending: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "A=1\nB=2\n" {
		t.Errorf("expected 'A=1\\nB=2\\n', got '%s'", string(content))
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	lfs := filesystems.NewLocalFS()

	exists, err := filesystems.Exists(lfs, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected missing file to not exist")
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	exists, err = filesystems.Exists(lfs, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}
