// Package flatten converts a materialized source tree into a single
// self-contained HTML document with a human-browsable view and an embedded
// plain-text export for model ingestion.
package flatten

import (
	"fmt"

	"flattenrepo/internal/safeio"
)

// HeadUnknown is the sentinel head revision used when the caller could not
// resolve one.
const HeadUnknown = "(unknown)"

// Run executes the whole pipeline against root: classify every file, render
// the included ones, build the directory tree and export text, and assemble
// the final artifact. source is a display-only identifier (typically the
// repository URL); headRev is the head revision id or HeadUnknown.
//
// The pipeline is synchronous and keeps no state across invocations. An
// inaccessible root or an empty tree fails the run; any per-file trouble is
// absorbed into the artifact instead.
func Run(root, headRev, source string, cfg Config) (*Artifact, error) {
	fsys, err := safeio.New(root)
	if err != nil {
		return nil, fmt.Errorf("opening root: %w", err)
	}

	records, err := Collect(fsys, cfg)
	if err != nil {
		return nil, err
	}

	renderer := NewRenderer(cfg)
	css, err := renderer.StyleCSS()
	if err != nil {
		return nil, err
	}

	var sections []RenderedSection
	for _, rec := range records {
		if !rec.Decision.Include {
			continue
		}
		sections = append(sections, renderer.Render(fsys, rec))
	}

	treeText := TreeText(fsys)
	exportText := BuildExport(fsys, records)

	return Assemble(source, headRev, css, treeText, exportText, records, sections)
}
