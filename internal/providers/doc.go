// Package providers implements the Backend interface for each supported
// review backend.
//
// Two variants exist: Ollama (a locally reachable inference server) and
// Anthropic (the hosted API). Both send a rendered instruction payload,
// request low-randomness sampling and a bounded output length, and map
// backend-specific failures onto shared error types so callers never branch
// on backend identity. Calls are never retried; a failure is reported once
// and the caller decides what to do with it.
//
// Use [New] to obtain a Backend by name.
package providers
