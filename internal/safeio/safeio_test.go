package safeio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestNew_RejectsNonDirectory(t *testing.T) {
	root := t.TempDir()
	f := writeFile(t, root, "file.txt", "x")
	if _, err := New(f); err == nil {
		t.Fatal("expected error for file root")
	}
}

func TestReadFile_WithinRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dir/a.txt", "hello")

	fsys, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := fsys.ReadFile("dir/a.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("content = %q, want %q", b, "hello")
	}
}

func TestResolve_RejectsTraversal(t *testing.T) {
	outer := t.TempDir()
	root := filepath.Join(outer, "repo")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, outer, "secret.txt", "nope")

	fsys, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := fsys.ReadFile("../secret.txt"); err == nil {
		t.Fatal("expected traversal error")
	}
}

func TestResolve_RejectsSymlinkEscape(t *testing.T) {
	outer := t.TempDir()
	root := filepath.Join(outer, "repo")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	target := writeFile(t, outer, "secret.txt", "nope")
	link := filepath.Join(root, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	fsys, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = fsys.ReadFile("link.txt")
	if err == nil {
		t.Fatal("expected symlink escape to be rejected")
	}
	if !strings.Contains(err.Error(), "outside root") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatAndReadDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dir/a.txt", "a")

	fsys, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fi, err := fsys.Stat("dir/a.txt")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if fi.Size() != 1 {
		t.Fatalf("size = %d, want 1", fi.Size())
	}
	entries, err := fsys.ReadDir("dir")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.txt" {
		t.Fatalf("entries = %v", entries)
	}
}
