package output

import (
	"fmt"
	"io"

	"github.com/dshills/critic/internal/review"
)

// Writer renders review results in one output format.
type Writer interface {
	// WriteResult emits a single result. Text mode writes a complete block
	// immediately; JSON mode buffers until Close.
	WriteResult(res review.Result) error
	// Close flushes anything buffered. Must be called once after the last
	// result.
	Close() error
}

// NewWriter returns a Writer for the specified format targeting w. plain
// disables terminal markdown rendering in text mode.
func NewWriter(format string, w io.Writer, plain bool) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{w: w, plain: plain}, nil
	case "json":
		return &JSONWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
