package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Placeholder names recognized by Render.
const (
	PlaceholderFilename = "{filename}"
	PlaceholderLanguage = "{language}"
	PlaceholderCode     = "{code}"
)

// NotFoundError reports that an explicitly requested template file could not
// be loaded.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Resolve returns the template text for a language tag.
//
// Precedence, highest first: overridePath if non-empty (a load failure is a
// NotFoundError), then dir/<lower(lang)>.txt if readable, then the built-in
// default. Storage is treated as read-only; Resolve may re-read on every
// call.
func Resolve(lang, overridePath, dir string) (string, error) {
	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return "", &NotFoundError{Path: overridePath, Err: err}
		}
		return string(data), nil
	}

	if dir != "" {
		path := filepath.Join(dir, strings.ToLower(lang)+".txt")
		if data, err := os.ReadFile(path); err == nil {
			return string(data), nil
		}
	}

	return defaultTemplate, nil
}

// Render substitutes the three placeholders into a template. The replacer
// makes a single pass over the template, so placeholder-looking substrings
// inside the replacement values are left alone.
func Render(tmpl, filename, lang, source string) string {
	r := strings.NewReplacer(
		PlaceholderFilename, filename,
		PlaceholderLanguage, lang,
		PlaceholderCode, source,
	)
	return r.Replace(tmpl)
}
