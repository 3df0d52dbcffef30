// Package prompt resolves and renders review instruction templates.
//
// Resolution follows a fixed precedence: an explicit template file supplied
// by the caller, then a per-language template in the prompt directory
// (<lower-cased tag>.txt), then the built-in default. Rendering substitutes
// the {filename}, {language}, and {code} placeholders in a single pass;
// replacement values are never re-scanned, so source code that happens to
// contain a placeholder-looking substring is passed through verbatim.
package prompt
