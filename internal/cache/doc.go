// Package cache provides a file-based cache for backend review responses.
//
// Cache entries are keyed by a SHA-256 hash of the model identifier and the
// fully rendered instruction payload. Each entry stores the raw response
// string along with a creation timestamp and a TTL (in seconds). Expired
// entries are skipped on read and removed during cache-clear operations.
//
// The default cache directory is $XDG_CACHE_HOME/critic (or the
// OS-appropriate equivalent). Payloads reach the cache only after secret
// redaction has run, so nothing redacted ever lands on disk.
package cache
