package flatten

import (
	"strings"
	"testing"
)

func TestFallbackTree_SortsFilesBeforeDirsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	write(t, root, "Zeta.txt", []byte("z"))
	write(t, root, "alpha.txt", []byte("a"))
	write(t, root, "Beta/inner.txt", []byte("i"))
	write(t, root, "app/main.go", []byte("m"))
	write(t, root, ".git/HEAD", []byte("ref"))

	out := fallbackTree(mustFS(t, root))
	lines := strings.Split(out, "\n")

	// Root name, then files case-folded, then directories case-folded.
	want := []string{
		"├── alpha.txt",
		"├── Zeta.txt",
		"├── app",
		"│   └── main.go",
		"└── Beta",
		"    └── inner.txt",
	}
	if len(lines) != len(want)+1 {
		t.Fatalf("lines = %q", lines)
	}
	for i, w := range want {
		if lines[i+1] != w {
			t.Fatalf("line %d = %q, want %q\nfull:\n%s", i+1, lines[i+1], w, out)
		}
	}
	if strings.Contains(out, ".git") {
		t.Fatal("VCS metadata directory listed")
	}
}

func TestFallbackTree_ConnectorsForNesting(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a/one.txt", []byte("1"))
	write(t, root, "a/two.txt", []byte("2"))
	write(t, root, "b/three.txt", []byte("3"))

	out := fallbackTree(mustFS(t, root))
	for _, want := range []string{
		"├── a",
		"│   ├── one.txt",
		"│   └── two.txt",
		"└── b",
		"    └── three.txt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
