package flatten

import (
	"fmt"
	"strings"
)

// BuildExport emits the included files as an indexed, tag-delimited plain
// text container for model ingestion. Entries are numbered from 1 in
// traversal order and carry the file text verbatim; no markup escaping is
// applied here. An unreadable file becomes an entry holding a failure notice
// instead of aborting generation.
func BuildExport(fsys fileReader, records []FileRecord) string {
	var b strings.Builder
	b.WriteString("<documents>\n")

	index := 0
	for _, rec := range records {
		if !rec.Decision.Include {
			continue
		}
		index++
		fmt.Fprintf(&b, "<document index=\"%d\">\n", index)
		fmt.Fprintf(&b, "<source>%s</source>\n", rec.Rel)
		b.WriteString("<document_content>\n")
		if text, err := fsys.ReadFile(rec.Rel); err != nil {
			fmt.Fprintf(&b, "Failed to read: %s\n", err)
		} else {
			b.Write(text)
			b.WriteByte('\n')
		}
		b.WriteString("</document_content>\n")
		b.WriteString("</document>\n")
	}

	b.WriteString("</documents>")
	return b.String()
}
