package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Config represents the critic configuration.
type Config struct {
	Backend        string        `json:"backend"`
	Model          string        `json:"model,omitempty"`
	Format         string        `json:"format"`
	Extensions     []string      `json:"extensions"`
	PromptDir      string        `json:"promptDir,omitempty"`
	MaxTokens      int           `json:"maxTokens,omitempty"`
	ContextSize    int           `json:"ctxSize"`
	TimeoutSeconds int           `json:"timeoutSeconds"`
	Temperature    float64       `json:"temperature"`
	Cache          CacheConfig   `json:"cache"`
	Privacy        PrivacyConfig `json:"privacy"`
}

// CacheConfig controls response caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls secret redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Per-backend default models, matching the defaults each backend was built
// around.
const (
	DefaultOllamaModel    = "deepseek-coder-v2:16b"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
)

// DefaultModel returns the default model identifier for a backend.
func DefaultModel(backend string) string {
	switch backend {
	case "anthropic", "claude":
		return DefaultAnthropicModel
	default:
		return DefaultOllamaModel
	}
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Backend:        "ollama",
		Format:         "text",
		Extensions:     []string{".cs", ".py", ".ts", ".js"},
		ContextSize:    8192,
		TimeoutSeconds: 120,
		Temperature:    0.3,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for critic.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "critic"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "critic"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "critic"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "critic"), nil
	default:
		return filepath.Join(home, ".config", "critic"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultPromptDir returns the directory searched for per-language
// templates when none is configured.
func DefaultPromptDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prompts"), nil
}

// LoadFile loads config from the config file. A missing file is an error
// (checkable with os.IsNotExist); callers editing the config fall back to
// Default() so a fresh install never persists a zeroed struct.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by layering: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	// Unmarshalling the file over the defaults makes absent keys keep their
	// default and present keys win, including explicit false.
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	if cfg.PromptDir == "" {
		if dir, err := DefaultPromptDir(); err == nil {
			cfg.PromptDir = dir
		}
	}

	return cfg, nil
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("CRITIC_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("CRITIC_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CRITIC_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CRITIC_PROMPT_DIR"); v != "" {
		cfg.PromptDir = v
	}
	if v := os.Getenv("CRITIC_EXTENSIONS"); v != "" {
		cfg.Extensions = splitList(v)
	}
	if v := os.Getenv("CRITIC_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("CRITIC_CTX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ContextSize = n
		}
	}
	if v := os.Getenv("CRITIC_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["backend"]; ok && v != "" {
		cfg.Backend = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["extensions"]; ok && v != "" {
		cfg.Extensions = splitList(v)
	}
	if v, ok := overrides["promptDir"]; ok && v != "" {
		cfg.PromptDir = v
	}
	if v, ok := overrides["maxTokens"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
	if v, ok := overrides["ctxSize"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ContextSize = n
		}
	}
	if v, ok := overrides["timeout"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "backend":
		cfg.Backend = value
	case "model":
		cfg.Model = value
	case "format":
		cfg.Format = value
	case "extensions":
		cfg.Extensions = splitList(value)
	case "promptDir":
		cfg.PromptDir = value
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "ctxSize":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("ctxSize must be an integer: %w", err)
		}
		cfg.ContextSize = n
	case "timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
