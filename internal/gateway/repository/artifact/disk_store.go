package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// idPattern rejects task ids that could escape the output directory.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// DiskStore keeps one HTML file per task under a single output directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the output directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("artifact: output dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: creating output dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the output directory.
func (s *DiskStore) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

func (s *DiskStore) path(taskID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("artifact: store is nil")
	}
	if !idPattern.MatchString(taskID) {
		return "", fmt.Errorf("artifact: invalid task id %q", taskID)
	}
	return filepath.Join(s.dir, taskID+".html"), nil
}

func (s *DiskStore) Put(_ context.Context, taskID string, doc []byte) error {
	p, err := s.path(taskID)
	if err != nil {
		return err
	}
	return os.WriteFile(p, doc, 0o644)
}

func (s *DiskStore) Get(_ context.Context, taskID string) ([]byte, error) {
	p, err := s.path(taskID)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *DiskStore) Delete(_ context.Context, taskID string) error {
	p, err := s.path(taskID)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// DeleteOlderThan removes documents whose modification time predates cutoff.
func (s *DiskStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	if s == nil {
		return 0, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
