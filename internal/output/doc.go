// Package output renders review results in the supported output formats.
//
// Text mode writes a delimited human-readable block per result as soon as
// it arrives, rendering markdown review bodies for terminals. JSON mode
// buffers every result and serializes a single well-formed array on Close,
// since downstream tooling expects one structured document rather than a
// stream of objects.
package output
