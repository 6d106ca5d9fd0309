package flatten

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"flattenrepo/internal/safeio"
)

// Reason explains why a file was included or skipped.
type Reason string

const (
	ReasonOK       Reason = "ok"
	ReasonBinary   Reason = "binary"
	ReasonTooLarge Reason = "too_large"
	ReasonIgnored  Reason = "ignored"
)

// Decision is the render decision for one file. Include is true exactly when
// Reason is ReasonOK.
type Decision struct {
	Include bool
	Reason  Reason
}

// FileRecord describes one discovered regular file. Records are created once
// during classification and never mutated afterwards.
type FileRecord struct {
	// AbsPath is the absolute path on disk.
	AbsPath string
	// Rel is the repo-relative path using forward slashes.
	Rel string
	// Size in bytes; 0 when stat failed.
	Size int64
	Decision Decision
}

// sniffLen is how many leading bytes the binary heuristic inspects.
const sniffLen = 8192

// Collect walks the tree below fsys's root and classifies every regular
// file. Symlinks and other non-regular entries are excluded. The result is
// ordered by full lexicographic relative path. An inaccessible root or an
// empty tree is a whole-run error; per-file stat or read failures are not.
func Collect(fsys *safeio.SafeFS, cfg Config) ([]FileRecord, error) {
	root := fsys.Root()
	var records []FileRecord

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable subtree: skip, keep going.
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		records = append(records, classify(fsys, filepath.ToSlash(rel), path, cfg))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no files discovered under %s", root)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Rel < records[j].Rel })
	return records, nil
}

// classify assigns the render decision for a single file. Decision order:
// VCS metadata, size threshold, binary heuristic, ok.
func classify(fsys *safeio.SafeFS, rel, abs string, cfg Config) FileRecord {
	var size int64
	if fi, err := fsys.Stat(rel); err == nil {
		size = fi.Size()
	}
	rec := FileRecord{AbsPath: abs, Rel: rel, Size: size}

	switch {
	case underVCSDir(rel):
		rec.Decision = Decision{Reason: ReasonIgnored}
	case size > cfg.MaxBytes:
		rec.Decision = Decision{Reason: ReasonTooLarge}
	case looksBinary(fsys, rel, cfg):
		rec.Decision = Decision{Reason: ReasonBinary}
	default:
		rec.Decision = Decision{Include: true, Reason: ReasonOK}
	}
	return rec
}

// underVCSDir reports whether rel has a ".git" path segment.
func underVCSDir(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".git" {
			return true
		}
	}
	return false
}

// looksBinary applies the binary heuristic: configured extension, a NUL byte
// in the first 8192 bytes, or an invalid UTF-8 prefix. Unreadable files are
// conservatively treated as binary.
func looksBinary(fsys *safeio.SafeFS, rel string, cfg Config) bool {
	ext := strings.ToLower(filepath.Ext(rel))
	if cfg.BinaryExts[ext] {
		return true
	}

	f, err := fsys.OpenFile(rel)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}
	chunk := buf[:n]
	for _, b := range chunk {
		if b == 0 {
			return true
		}
	}
	return !utf8.Valid(chunk)
}
