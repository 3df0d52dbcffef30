package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dshills/critic/internal/review"
)

const (
	blockWidth = 60
	wrapWidth  = 100
)

// TextWriter outputs a human-readable block per result.
type TextWriter struct {
	w        io.Writer
	plain    bool
	renderer *glamour.TermRenderer
}

func (t *TextWriter) WriteResult(res review.Result) error {
	ew := &errWriter{w: t.w}

	ew.println("")
	ew.println(strings.Repeat("=", blockWidth))
	ew.printf("File: %s\n", res.File)
	ew.printf("Language: %s\n", res.Language)
	ew.println(strings.Repeat("-", blockWidth))
	if res.Failed() {
		ew.printf("Error: %s\n", res.Err.Error())
	} else {
		ew.println(t.render(res.Review))
	}
	ew.println(strings.Repeat("=", blockWidth))

	return ew.err
}

func (t *TextWriter) Close() error { return nil }

// render passes markdown review bodies through glamour for terminals. Any
// renderer failure falls back to the raw text.
func (t *TextWriter) render(body string) string {
	if t.plain {
		return strings.TrimRight(body, "\n")
	}
	if t.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			t.plain = true
			return strings.TrimRight(body, "\n")
		}
		t.renderer = r
	}
	rendered, err := t.renderer.Render(body)
	if err != nil {
		return strings.TrimRight(body, "\n")
	}
	return strings.TrimRight(rendered, "\n")
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
