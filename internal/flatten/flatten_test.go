package flatten

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_EndToEnd(t *testing.T) {
	root := t.TempDir()
	write(t, root, "README.md", []byte("# Demo\n\nSome *markdown*.\n"))
	write(t, root, "main.txt", []byte(strings.Repeat("text ", 40)))
	write(t, root, "logo.png", make([]byte, 500))
	write(t, root, ".git/HEAD", []byte("ref: refs/heads/main"))

	cfg := DefaultConfig()
	cfg.MaxBytes = 1024

	a, err := Run(root, "0123456789abcdef", "https://github.com/owner/demo.git", cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if a.Title != "demo" {
		t.Errorf("Title = %q, want demo", a.Title)
	}
	if a.HeadShort != "01234567" {
		t.Errorf("HeadShort = %q", a.HeadShort)
	}
	if a.Stats.TotalFiles != 4 || a.Stats.Rendered != 2 || a.Stats.Skipped != 1 {
		t.Errorf("stats = %+v", a.Stats)
	}
	if len(a.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(a.Sections))
	}
	if got := strings.Count(a.ExportText, "<document index="); got != 2 {
		t.Errorf("export entries = %d, want 2", got)
	}
	// Skip list for binaries has the png.
	found := false
	for _, g := range a.SkipGroups {
		if g.Title == "Skipped binaries" {
			found = true
			if len(g.Items) != 1 || g.Items[0].Rel != "logo.png" {
				t.Errorf("binary skip group = %+v", g)
			}
		}
	}
	if !found {
		t.Error("binary skip group missing")
	}
	if a.HTML == "" || !strings.Contains(a.HTML, "<!DOCTYPE html>") {
		t.Error("artifact HTML missing")
	}
}

func TestRun_RepeatedRunsAreIdentical(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.go", []byte("package a\n"))
	write(t, root, "b/readme.md", []byte("# b\n"))

	cfg := DefaultConfig()
	first, err := Run(root, HeadUnknown, "src", cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(root, HeadUnknown, "src", cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first.ExportText != second.ExportText {
		t.Error("export text differs across runs")
	}
	if first.Stats != second.Stats {
		t.Errorf("stats differ: %+v vs %+v", first.Stats, second.Stats)
	}
	if len(first.Sections) != len(second.Sections) {
		t.Fatal("section counts differ")
	}
	for i := range first.Sections {
		if first.Sections[i].Rel != second.Sections[i].Rel {
			t.Fatal("TOC order differs across runs")
		}
	}
}

func TestRun_InaccessibleRootFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := Run(missing, HeadUnknown, "src", DefaultConfig()); err == nil {
		t.Fatal("expected whole-run error, got artifact")
	}
}

func TestRun_EmptyTreeFails(t *testing.T) {
	if _, err := Run(t.TempDir(), HeadUnknown, "src", DefaultConfig()); err == nil {
		t.Fatal("expected whole-run error for empty root")
	}
}
