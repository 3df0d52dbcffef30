package language

import (
	"path/filepath"
	"sort"
	"strings"
)

// Unknown is the tag returned for extensions with no mapping.
const Unknown = "unknown"

// byExtension is the process-wide extension table. It is never mutated after
// init, so lookups are safe from any goroutine.
var byExtension = map[string]string{
	".cs":    "CSharp",
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".jsx":   "JavaScript",
	".java":  "Java",
	".go":    "Go",
	".rs":    "Rust",
	".cpp":   "C++",
	".c":     "C",
	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
}

// Classify returns the language tag for a file path based on its extension.
// Unmapped or missing extensions yield Unknown; Classify never fails.
func Classify(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if tag, ok := byExtension[ext]; ok {
		return tag
	}
	return Unknown
}

// Extensions returns the extensions mapped to the given tag, matched
// case-insensitively. The result is sorted for stable output.
func Extensions(tag string) []string {
	var exts []string
	for ext, t := range byExtension {
		if strings.EqualFold(t, tag) {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Tags returns all known language tags, sorted and deduplicated.
func Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range byExtension {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}
