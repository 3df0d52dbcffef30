package review

// Result is the outcome of reviewing one file. Exactly one of Review and
// Err is set on a completed result.
type Result struct {
	File     string
	Language string
	Review   string
	Err      *Error
}

// Failed reports whether the result carries an error instead of a review.
func (r Result) Failed() bool { return r.Err != nil }
