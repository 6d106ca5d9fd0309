package flatten

import (
	"fmt"
	"html/template"
	"strings"
)

// Stats aggregates the classification outcome. Ignored files count toward
// TotalFiles but not toward Skipped.
type Stats struct {
	TotalFiles int
	Rendered   int
	Skipped    int
	TotalBytes int64
}

// SkipItem is one entry of a collapsible skip list.
type SkipItem struct {
	Rel       string
	SizeHuman string
}

// SkipGroup is one collapsible list of files skipped for the same reason.
type SkipGroup struct {
	Title string
	Items []SkipItem
}

// Artifact is the final output of one run: the composed HTML document plus
// the pieces it was assembled from. Built once, then immutable.
type Artifact struct {
	Title      string
	Source     string
	HeadShort  string
	StyleCSS   template.CSS
	TreeText   string
	Sections   []RenderedSection
	SkipGroups []SkipGroup
	Stats      Stats
	ExportText string
	HTML       string
}

// Assemble composes the classifier output, rendered sections, directory
// tree, stats and export text into the two-view HTML artifact. Once
// classification produced records, assembly completes with whatever it was
// given; it does not re-validate the tree.
func Assemble(source, headRev, styleCSS, treeText, exportText string, records []FileRecord, sections []RenderedSection) (*Artifact, error) {
	a := &Artifact{
		Title:      TitleFromSource(source),
		Source:     source,
		HeadShort:  truncate(headRev, 8),
		StyleCSS:   template.CSS(styleCSS),
		TreeText:   treeText,
		Sections:   sections,
		SkipGroups: buildSkipGroups(records),
		Stats:      buildStats(records),
		ExportText: exportText,
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, a); err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}
	a.HTML = b.String()
	return a, nil
}

func buildStats(records []FileRecord) Stats {
	var s Stats
	for _, rec := range records {
		s.TotalFiles++
		switch rec.Decision.Reason {
		case ReasonOK:
			s.Rendered++
			s.TotalBytes += rec.Size
		case ReasonBinary, ReasonTooLarge:
			s.Skipped++
		}
	}
	return s
}

func buildSkipGroups(records []FileRecord) []SkipGroup {
	titles := []struct {
		reason Reason
		title  string
	}{
		{ReasonBinary, "Skipped binaries"},
		{ReasonTooLarge, "Skipped large files"},
		{ReasonIgnored, "Ignored files"},
	}

	var groups []SkipGroup
	for _, t := range titles {
		var items []SkipItem
		for _, rec := range records {
			if rec.Decision.Reason == t.reason {
				items = append(items, SkipItem{Rel: rec.Rel, SizeHuman: BytesHuman(rec.Size)})
			}
		}
		if len(items) > 0 {
			groups = append(groups, SkipGroup{Title: t.title, Items: items})
		}
	}
	return groups
}

// BytesHuman formats a byte count with 1024-based units: an integer for
// plain bytes, one decimal place from KiB upward.
func BytesHuman(n int64) string {
	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	f := float64(n)
	i := 0
	for f >= 1024.0 && i < len(units)-1 {
		f /= 1024.0
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d %s", n, units[i])
	}
	return fmt.Sprintf("%.1f %s", f, units[i])
}

// TitleFromSource keeps the last path segment of the source identifier
// and drops a trailing .git. The identifier is display-only and never
// parsed further.
func TitleFromSource(source string) string {
	source = strings.TrimRight(strings.TrimSpace(source), "/")
	if source == "" {
		return "Repository"
	}
	seg := source
	if idx := strings.LastIndex(source, "/"); idx >= 0 {
		seg = source[idx+1:]
	}
	seg = strings.TrimSuffix(seg, ".git")
	if seg == "" {
		return "Repository"
	}
	return seg
}

// sourceLabel is the short owner/repo form shown in the navbar.
func sourceLabel(source string) string {
	parts := strings.Split(source, "/")
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], "/")
	}
	return source
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
