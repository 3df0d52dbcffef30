package review

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs are directories that never contain reviewable source.
var skipDirs = map[string]bool{
	"node_modules":  true,
	"vendor":        true,
	"venv":          true,
	".venv":         true,
	"env":           true,
	"build":         true,
	"dist":          true,
	"target":        true,
	"bin":           true,
	"obj":           true,
	".git":          true,
	".svn":          true,
	"__pycache__":   true,
	".pytest_cache": true,
}

// normalizeExts lower-cases each extension and ensures a leading dot.
func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m[ext] = true
	}
	return m
}

// MatchFiles enumerates files under dir whose extension is in exts
// (case-insensitive). With recursive false only the directory's immediate
// children are considered; with recursive true all subdirectories are
// descended, skipping common dependency/build/VCS directories. An empty
// filter matches nothing. Enumeration order is the filesystem's lexical
// walk order; callers must not assume any other sorting.
func MatchFiles(dir string, exts []string, recursive bool) ([]string, error) {
	match := normalizeExts(exts)
	var files []string

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if match[strings.ToLower(filepath.Ext(e.Name()))] {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if match[strings.ToLower(filepath.Ext(d.Name()))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	return files, nil
}
