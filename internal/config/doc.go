// Package config loads and merges critic configuration.
//
// Effective configuration is built in layers: compiled-in defaults, then the
// JSON config file in the platform config directory, then CRITIC_* environment
// variables, then CLI flag overrides. Later layers win field by field.
package config
