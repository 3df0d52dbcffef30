package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/critic/internal/review"
)

// record is the structured per-file form: exactly one of review/error is
// non-null.
type record struct {
	File     string  `json:"file"`
	Language string  `json:"language"`
	Review   *string `json:"review"`
	Error    *string `json:"error"`
}

// JSONWriter buffers results and emits one JSON array on Close.
type JSONWriter struct {
	w       io.Writer
	records []record
}

func (j *JSONWriter) WriteResult(res review.Result) error {
	rec := record{
		File:     res.File,
		Language: res.Language,
	}
	if res.Failed() {
		msg := res.Err.Error()
		rec.Error = &msg
	} else {
		body := res.Review
		rec.Review = &body
	}
	j.records = append(j.records, rec)
	return nil
}

func (j *JSONWriter) Close() error {
	records := j.records
	if records == nil {
		records = []record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := j.w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(j.w)
	return err
}
