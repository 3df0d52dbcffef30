// Package redact strips secret-looking values from source text before it is
// sent to any review backend.
//
// Detection is regex-heuristic: API keys, cloud credentials, bearer tokens,
// JWTs, private key headers, and assignments of password/token-named
// variables. Matches are replaced with a fixed placeholder so reviews never
// echo live credentials.
package redact
