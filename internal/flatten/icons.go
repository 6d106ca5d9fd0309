package flatten

import "strings"

// fileIcons maps lowercased extensions to the icon shown in the TOC and
// section headers.
var fileIcons = map[string]string{
	".py":         "🐍",
	".js":         "🟨",
	".ts":         "🔵",
	".jsx":        "⚛️",
	".tsx":        "⚛️",
	".html":       "🌐",
	".css":        "🎨",
	".scss":       "🎨",
	".sass":       "🎨",
	".json":       "📋",
	".xml":        "📋",
	".yaml":       "📋",
	".yml":        "📋",
	".md":         "📝",
	".txt":        "📄",
	".pdf":        "📕",
	".doc":        "📘",
	".docx":       "📘",
	".xls":        "📊",
	".xlsx":       "📊",
	".csv":        "📊",
	".sql":        "🗄️",
	".sh":         "⚡",
	".bat":        "⚡",
	".ps1":        "⚡",
	".php":        "🐘",
	".rb":         "💎",
	".go":         "🐹",
	".rs":         "🦀",
	".cpp":        "⚙️",
	".c":          "⚙️",
	".h":          "⚙️",
	".java":       "☕",
	".kt":         "🟣",
	".swift":      "🐦",
	".dart":       "🎯",
	".vue":        "💚",
	".svelte":     "🧡",
	".dockerfile": "🐳",
	".gitignore":  "📋",
	".env":        "🔐",
	".lock":       "🔒",
	".log":        "📜",
}

const genericIcon = "📄"

// FileIcon returns the icon for a lowercased extension, falling back to a
// generic document icon for unknown extensions.
func FileIcon(ext string) string {
	if icon, ok := fileIcons[strings.ToLower(ext)]; ok {
		return icon
	}
	return genericIcon
}
