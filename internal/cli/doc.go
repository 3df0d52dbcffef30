// Package cli wires together the Cobra command tree for the critic binary.
//
// It defines the root command and all subcommands (review, prompts, config,
// models, cache, version), binds flags, reads configuration, invokes the
// review engine, and returns deterministic exit codes for CI gating.
package cli
