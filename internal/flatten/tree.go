package flatten

import (
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"flattenrepo/internal/safeio"
)

// TreeText renders a directory listing for the artifact. The external tree
// utility is preferred; when it is missing or fails, an ASCII tree is built
// directly.
func TreeText(fsys *safeio.SafeFS) string {
	cmd := exec.Command("tree", "-a", ".")
	cmd.Dir = fsys.Root()
	out, err := cmd.Output()
	if err == nil {
		return string(out)
	}
	return fallbackTree(fsys)
}

// fallbackTree builds the listing with box-drawing connectors. At each level
// files sort before directories, case-insensitively by name, and the VCS
// metadata directory is excluded.
func fallbackTree(fsys *safeio.SafeFS) string {
	var lines []string
	lines = append(lines, filepath.Base(fsys.Root()))
	lines = walkTree(fsys, ".", "", lines)
	return strings.Join(lines, "\n")
}

func walkTree(fsys *safeio.SafeFS, dir, prefix string, lines []string) []string {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return append(lines, fmt.Sprintf("%s[error reading %s: %v]", prefix, dir, err))
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Name() != ".git" {
			kept = append(kept, e)
		}
	}
	sortTreeEntries(kept)

	for i, e := range kept {
		last := i == len(kept)-1
		branch := "├── "
		if last {
			branch = "└── "
		}
		lines = append(lines, prefix+branch+e.Name())
		if e.IsDir() {
			extension := "│   "
			if last {
				extension = "    "
			}
			lines = walkTree(fsys, filepath.Join(dir, e.Name()), prefix+extension, lines)
		}
	}
	return lines
}

// sortTreeEntries orders files before directories, then case-folded by name.
// This exact tie-break is load-bearing for reproducible output.
func sortTreeEntries(entries []fs.DirEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return !di
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})
}
