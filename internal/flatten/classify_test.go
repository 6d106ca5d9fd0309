package flatten

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flattenrepo/internal/safeio"
)

func write(t *testing.T, root, rel string, content []byte) string {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func mustFS(t *testing.T, root string) *safeio.SafeFS {
	t.Helper()
	fsys, err := safeio.New(root)
	if err != nil {
		t.Fatalf("safeio.New: %v", err)
	}
	return fsys
}

func collect(t *testing.T, root string, cfg Config) []FileRecord {
	t.Helper()
	records, err := Collect(mustFS(t, root), cfg)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return records
}

func byRel(records []FileRecord, rel string) (FileRecord, bool) {
	for _, r := range records {
		if r.Rel == rel {
			return r, true
		}
	}
	return FileRecord{}, false
}

func TestCollect_Scenario(t *testing.T) {
	root := t.TempDir()
	write(t, root, "README.md", []byte(strings.Repeat("m", 100)))
	write(t, root, "main.txt", []byte(strings.Repeat("t", 200)))
	write(t, root, "logo.png", make([]byte, 500))

	cfg := DefaultConfig()
	cfg.MaxBytes = 1024
	records := collect(t, root, cfg)

	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	wantReasons := map[string]Reason{
		"README.md": ReasonOK,
		"main.txt":  ReasonOK,
		"logo.png":  ReasonBinary,
	}
	for rel, want := range wantReasons {
		rec, ok := byRel(records, rel)
		if !ok {
			t.Fatalf("missing record for %s", rel)
		}
		if rec.Decision.Reason != want {
			t.Errorf("%s reason = %s, want %s", rel, rec.Decision.Reason, want)
		}
		if rec.Decision.Include != (want == ReasonOK) {
			t.Errorf("%s include = %v, inconsistent with reason %s", rel, rec.Decision.Include, want)
		}
	}
}

func TestCollect_SizeThresholdBoundary(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.MaxBytes = 64

	write(t, root, "exact.txt", []byte(strings.Repeat("a", 64)))
	write(t, root, "over.txt", []byte(strings.Repeat("a", 65)))

	records := collect(t, root, cfg)

	exact, _ := byRel(records, "exact.txt")
	if exact.Decision.Reason != ReasonOK {
		t.Errorf("file of exactly MaxBytes: reason = %s, want ok", exact.Decision.Reason)
	}
	over, _ := byRel(records, "over.txt")
	if over.Decision.Reason != ReasonTooLarge {
		t.Errorf("file of MaxBytes+1: reason = %s, want too_large", over.Decision.Reason)
	}
}

func TestCollect_NULMeansBinaryRegardlessOfExtension(t *testing.T) {
	root := t.TempDir()
	write(t, root, "data.txt", []byte("hello\x00world"))

	records := collect(t, root, DefaultConfig())
	rec, _ := byRel(records, "data.txt")
	if rec.Decision.Reason != ReasonBinary {
		t.Fatalf("reason = %s, want binary", rec.Decision.Reason)
	}
}

func TestCollect_InvalidUTF8IsBinary(t *testing.T) {
	root := t.TempDir()
	write(t, root, "latin1.txt", []byte{0xe9, 0x20, 0x62, 0x6f, 0x6e})

	records := collect(t, root, DefaultConfig())
	rec, _ := byRel(records, "latin1.txt")
	if rec.Decision.Reason != ReasonBinary {
		t.Fatalf("reason = %s, want binary", rec.Decision.Reason)
	}
}

func TestCollect_VCSMetadataIgnoredEvenWhenHuge(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".git/objects/pack/big.pack", make([]byte, 4096))
	write(t, root, "src/.git/config", []byte("[core]"))
	write(t, root, "ok.txt", []byte("fine"))

	cfg := DefaultConfig()
	cfg.MaxBytes = 128
	records := collect(t, root, cfg)

	for _, rel := range []string{".git/objects/pack/big.pack", "src/.git/config"} {
		rec, ok := byRel(records, rel)
		if !ok {
			t.Fatalf("missing record for %s", rel)
		}
		if rec.Decision.Reason != ReasonIgnored {
			t.Errorf("%s reason = %s, want ignored", rel, rec.Decision.Reason)
		}
	}
}

func TestCollect_ExcludesSymlinks(t *testing.T) {
	root := t.TempDir()
	target := write(t, root, "real.txt", []byte("x"))
	if err := os.Symlink(target, filepath.Join(root, "alias.txt")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	records := collect(t, root, DefaultConfig())
	if _, ok := byRel(records, "alias.txt"); ok {
		t.Fatal("symlink was classified")
	}
	if _, ok := byRel(records, "real.txt"); !ok {
		t.Fatal("regular file missing")
	}
}

func TestCollect_OrderAndDeterminism(t *testing.T) {
	root := t.TempDir()
	write(t, root, "b.txt", []byte("b"))
	write(t, root, "a/z.txt", []byte("z"))
	write(t, root, "a/a.txt", []byte("a"))
	write(t, root, "A.txt", []byte("A"))

	cfg := DefaultConfig()
	first := collect(t, root, cfg)
	second := collect(t, root, cfg)

	var rels []string
	for _, r := range first {
		rels = append(rels, r.Rel)
	}
	want := []string{"A.txt", "a/a.txt", "a/z.txt", "b.txt"}
	if len(rels) != len(want) {
		t.Fatalf("rels = %v, want %v", rels, want)
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Fatalf("order: got %v, want %v", rels, want)
		}
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run not deterministic at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCollect_ReasonCountsSumToTotal(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt", []byte("a"))
	write(t, root, "big.txt", []byte(strings.Repeat("b", 2048)))
	write(t, root, "img.png", make([]byte, 10))
	write(t, root, ".git/HEAD", []byte("ref: refs/heads/main"))

	cfg := DefaultConfig()
	cfg.MaxBytes = 1024
	records := collect(t, root, cfg)

	counts := map[Reason]int{}
	for _, r := range records {
		counts[r.Decision.Reason]++
	}
	total := counts[ReasonOK] + counts[ReasonBinary] + counts[ReasonTooLarge] + counts[ReasonIgnored]
	if total != len(records) {
		t.Fatalf("per-reason sum %d != total %d", total, len(records))
	}
	if counts[ReasonOK] != 1 || counts[ReasonTooLarge] != 1 || counts[ReasonBinary] != 1 || counts[ReasonIgnored] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestCollect_EmptyRootFails(t *testing.T) {
	root := t.TempDir()
	if _, err := Collect(mustFS(t, root), DefaultConfig()); err == nil {
		t.Fatal("expected error for empty tree")
	}
}
