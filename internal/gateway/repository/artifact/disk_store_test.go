package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDiskStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewDiskStore(filepath.Join(t.TempDir(), "output"))
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if err := s.Put(ctx, "task-1", []byte("<html>doc</html>")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "<html>doc</html>" {
		t.Fatalf("doc = %q", got)
	}

	if err := s.Delete(ctx, "task-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "task-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: %v, want ErrNotFound", err)
	}
	// Deleting again is not an error.
	if err := s.Delete(ctx, "task-1"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestDiskStore_RejectsHostileIDs(t *testing.T) {
	ctx := context.Background()
	s, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	for _, id := range []string{"", "../escape", "a/b", "a.b"} {
		if err := s.Put(ctx, id, []byte("x")); err == nil {
			t.Errorf("Put(%q) accepted", id)
		}
	}
}

func TestDiskStore_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if err := s.Put(ctx, "old", []byte("o")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "fresh", []byte("f")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "old.html"), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed, err := s.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := s.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Error("old doc survived the sweep")
	}
	if _, err := s.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh doc swept: %v", err)
	}
}
