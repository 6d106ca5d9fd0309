package flatten

// DefaultMaxBytes is the default per-file size threshold: files larger than
// this are listed but not rendered.
const DefaultMaxBytes int64 = 50 * 1024

// Config carries the classification knobs for one pipeline invocation.
// It is passed by value and never mutated, so concurrent invocations with
// different thresholds cannot interfere.
type Config struct {
	// MaxBytes is the inclusive per-file size threshold in bytes.
	MaxBytes int64
	// BinaryExts maps lowercased extensions (with dot) that are classified
	// binary without sniffing content.
	BinaryExts map[string]bool
	// MarkdownExts maps lowercased extensions rendered as markdown instead
	// of highlighted code.
	MarkdownExts map[string]bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MaxBytes:     DefaultMaxBytes,
		BinaryExts:   defaultBinaryExts(),
		MarkdownExts: defaultMarkdownExts(),
	}
}

func defaultBinaryExts() map[string]bool {
	exts := []string{
		".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".svg", ".ico",
		".pdf", ".zip", ".tar", ".gz", ".bz2", ".xz", ".7z", ".rar",
		".mp3", ".mp4", ".mov", ".avi", ".mkv", ".wav", ".ogg", ".flac",
		".ttf", ".otf", ".eot", ".woff", ".woff2",
		".so", ".dll", ".dylib", ".class", ".jar", ".exe", ".bin",
	}
	m := make(map[string]bool, len(exts))
	for _, e := range exts {
		m[e] = true
	}
	return m
}

func defaultMarkdownExts() map[string]bool {
	return map[string]bool{
		".md":       true,
		".markdown": true,
		".mdown":    true,
		".mkd":      true,
		".mkdn":     true,
	}
}
