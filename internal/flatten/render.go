package flatten

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// styleName is the chroma style shared by every section of a run.
const styleName = "monokai"

// RenderedSection is the display form of one included file.
type RenderedSection struct {
	// Rel is the repo-relative path of the rendered file.
	Rel string
	// Size in bytes, as classified.
	Size int64
	// Anchor is the slug used for in-page navigation.
	Anchor string
	// Icon keyed by the file's lowercased extension.
	Icon string
	// Body is the rendered markup: highlighted code or markdown HTML. Both
	// renderers escape their own output, so Body is safe to embed as-is.
	Body template.HTML
	// RawText is the file's source text, kept for the copy-to-clipboard
	// button. Empty when rendering failed.
	RawText string
	// Markdown marks bodies produced by the markdown engine; they are
	// wrapped differently from code bodies.
	Markdown bool
	// Failed marks sections whose body is an inline error marker.
	Failed bool
}

// Renderer converts file text into markup. One renderer serves a whole run;
// the highlight style sheet is computed once and shared by all sections.
type Renderer struct {
	cfg       Config
	md        goldmark.Markdown
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewRenderer builds a renderer for one pipeline invocation.
func NewRenderer(cfg Config) *Renderer {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Renderer{
		cfg: cfg,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		style:     style,
	}
}

// StyleCSS returns the highlight style sheet, computed once per run.
func (r *Renderer) StyleCSS() (string, error) {
	var buf bytes.Buffer
	if err := r.formatter.WriteCSS(&buf, r.style); err != nil {
		return "", fmt.Errorf("writing style css: %w", err)
	}
	return buf.String(), nil
}

// Render produces the section body for one included record. Read or render
// failures never abort the run; they yield an inline error marker instead.
func (r *Renderer) Render(fsys fileReader, rec FileRecord) RenderedSection {
	ext := strings.ToLower(filepath.Ext(rec.Rel))
	sec := RenderedSection{
		Rel:    rec.Rel,
		Size:   rec.Size,
		Anchor: Slugify(rec.Rel),
		Icon:   FileIcon(ext),
	}

	raw, err := fsys.ReadFile(rec.Rel)
	if err != nil {
		return sec.fail(err)
	}
	text := string(raw)

	if r.cfg.MarkdownExts[ext] {
		body, err := r.renderMarkdown(text)
		if err != nil {
			return sec.fail(err)
		}
		sec.Body = body
		sec.RawText = text
		sec.Markdown = true
		return sec
	}

	body, err := r.highlight(text, rec.Rel)
	if err != nil {
		return sec.fail(err)
	}
	sec.Body = body
	sec.RawText = text
	return sec
}

func (s RenderedSection) fail(err error) RenderedSection {
	s.Failed = true
	marker := fmt.Sprintf("Failed to render: %s", err)
	s.Body = template.HTML("<pre class=\"error\">" + template.HTMLEscapeString(marker) + "</pre>")
	return s
}

func (r *Renderer) renderMarkdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// highlight runs the lexer selected by filename over text. Unrecognized
// filenames fall back to the plain-text lexer, never an error.
func (r *Renderer) highlight(text, filename string) (template.HTML, error) {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", filename, err)
	}
	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, it); err != nil {
		return "", fmt.Errorf("highlight %s: %w", filename, err)
	}
	return template.HTML(buf.String()), nil
}

// Slugify derives an anchor slug from a relative path: alphanumerics, dash
// and underscore survive, every other character becomes a dash.
func Slugify(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, ch := range path {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
			b.WriteRune(ch)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// fileReader is the read capability the renderer and export generator need.
// *safeio.SafeFS satisfies it.
type fileReader interface {
	ReadFile(path string) ([]byte, error)
}
