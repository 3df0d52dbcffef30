// Package review runs the per-file review pipeline and batch orchestration.
//
// The Engine classifies a file's language, resolves and renders its
// instruction template, submits the payload to the configured backend, and
// produces one Result per file. A Result carries either review text or an
// error, never both. Directory targets yield a lazy sequence of Results in
// enumeration order so callers can emit each one as it completes; a failure
// on one file never aborts the batch.
package review
