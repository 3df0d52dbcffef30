package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Backend != "ollama" {
		t.Errorf("Default backend = %q, want %q", cfg.Backend, "ollama")
	}
	if cfg.Format != "text" {
		t.Errorf("Default format = %q, want %q", cfg.Format, "text")
	}
	if cfg.ContextSize != 8192 {
		t.Errorf("Default ctxSize = %d, want 8192", cfg.ContextSize)
	}
	if cfg.TimeoutSeconds != 120 {
		t.Errorf("Default timeout = %d, want 120", cfg.TimeoutSeconds)
	}
	if cfg.Temperature != 0.3 {
		t.Errorf("Default temperature = %v, want 0.3", cfg.Temperature)
	}
	if len(cfg.Extensions) != 4 {
		t.Errorf("Default extensions = %v, want 4 entries", cfg.Extensions)
	}
	if !cfg.Cache.Enabled {
		t.Error("Default cache should be enabled")
	}
	if !cfg.Privacy.RedactSecrets {
		t.Error("Default redactSecrets should be true")
	}
}

func TestDefaultModel(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"ollama", DefaultOllamaModel},
		{"local", DefaultOllamaModel},
		{"anthropic", DefaultAnthropicModel},
		{"claude", DefaultAnthropicModel},
	}
	for _, tt := range tests {
		if got := DefaultModel(tt.backend); got != tt.want {
			t.Errorf("DefaultModel(%q) = %q, want %q", tt.backend, got, tt.want)
		}
	}
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("CRITIC_BACKEND", "anthropic")
	t.Setenv("CRITIC_MODEL", "claude-haiku-4-5")
	t.Setenv("CRITIC_FORMAT", "json")
	t.Setenv("CRITIC_EXTENSIONS", ".go, .rs")
	t.Setenv("CRITIC_MAX_TOKENS", "1024")
	t.Setenv("CRITIC_TIMEOUT", "30")

	cfg := Default()
	mergeEnv(&cfg)

	if cfg.Backend != "anthropic" {
		t.Errorf("Backend = %q, want %q", cfg.Backend, "anthropic")
	}
	if cfg.Model != "claude-haiku-4-5" {
		t.Errorf("Model = %q, want %q", cfg.Model, "claude-haiku-4-5")
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != ".go" || cfg.Extensions[1] != ".rs" {
		t.Errorf("Extensions = %v, want [.go .rs]", cfg.Extensions)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d, want 1024", cfg.MaxTokens)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
}

func TestMergeEnv_InvalidNumberIgnored(t *testing.T) {
	t.Setenv("CRITIC_MAX_TOKENS", "not-a-number")
	cfg := Default()
	mergeEnv(&cfg)
	if cfg.MaxTokens != 0 {
		t.Errorf("MaxTokens = %d, invalid env value should be ignored", cfg.MaxTokens)
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	overrides := map[string]string{
		"backend":    "anthropic",
		"model":      "claude-opus-4-6",
		"format":     "json",
		"extensions": ".go",
		"maxTokens":  "2048",
		"timeout":    "60",
	}
	mergeOverrides(&cfg, overrides)

	if cfg.Backend != "anthropic" {
		t.Errorf("Backend = %q, want %q", cfg.Backend, "anthropic")
	}
	if cfg.Model != "claude-opus-4-6" {
		t.Errorf("Model = %q, want %q", cfg.Model, "claude-opus-4-6")
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".go" {
		t.Errorf("Extensions = %v, want [.go]", cfg.Extensions)
	}
	if cfg.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d, want 2048", cfg.MaxTokens)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.TimeoutSeconds)
	}
}

func TestMergeOverrides_NilAndEmpty(t *testing.T) {
	cfg := Default()
	mergeOverrides(&cfg, nil)
	if cfg.Backend != "ollama" {
		t.Errorf("nil overrides changed backend to %q", cfg.Backend)
	}

	mergeOverrides(&cfg, map[string]string{"backend": ""})
	if cfg.Backend != "ollama" {
		t.Errorf("empty override changed backend to %q", cfg.Backend)
	}
}

func TestLoad_FileLayering(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := os.MkdirAll(filepath.Join(dir, "critic"), 0o755); err != nil {
		t.Fatal(err)
	}
	file := `{"backend":"anthropic","model":"claude-sonnet-4-6","extensions":[".go"],"cache":{"enabled":false}}`
	if err := os.WriteFile(filepath.Join(dir, "critic", "config.json"), []byte(file), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Backend != "anthropic" {
		t.Errorf("Backend = %q, want %q", cfg.Backend, "anthropic")
	}
	if cfg.Model != "claude-sonnet-4-6" {
		t.Errorf("Model = %q, want %q", cfg.Model, "claude-sonnet-4-6")
	}
	if len(cfg.Extensions) != 1 {
		t.Errorf("Extensions = %v, want [.go]", cfg.Extensions)
	}
	if cfg.Cache.Enabled {
		t.Error("file explicitly disables the cache; Load kept it on")
	}
	// Fields absent from the file keep their defaults
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want default text", cfg.Format)
	}
	if cfg.ContextSize != 8192 {
		t.Errorf("ContextSize = %d, want default 8192", cfg.ContextSize)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := LoadFile(); !os.IsNotExist(err) {
		t.Errorf("LoadFile with no config file: err = %v, want os.IsNotExist", err)
	}
}

func TestSetOnFreshInstall_KeepsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// The edit path on a machine with no config file: fall back to
	// defaults, change one key, persist.
	cfg, err := LoadFile()
	if err != nil {
		cfg = Default()
	}
	if err := SetField(&cfg, "backend", "anthropic"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Backend != "anthropic" {
		t.Errorf("Backend = %q, want anthropic", loaded.Backend)
	}
	if loaded.Format != "text" {
		t.Errorf("Format = %q, want default text", loaded.Format)
	}
	if loaded.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want default 0.3", loaded.Temperature)
	}
	if len(loaded.Extensions) != 4 {
		t.Errorf("Extensions = %v, default filter lost", loaded.Extensions)
	}
	if !loaded.Cache.Enabled {
		t.Error("default cache setting lost")
	}
	if !loaded.Privacy.RedactSecrets {
		t.Error("secret redaction silently disabled")
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()

	if err := SetField(&cfg, "backend", "anthropic"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if cfg.Backend != "anthropic" {
		t.Errorf("Backend = %q, want anthropic", cfg.Backend)
	}

	if err := SetField(&cfg, "maxTokens", "512"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if cfg.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", cfg.MaxTokens)
	}

	if err := SetField(&cfg, "maxTokens", "abc"); err == nil {
		t.Error("SetField with non-integer maxTokens should fail")
	}
	if err := SetField(&cfg, "bogus", "x"); err == nil {
		t.Error("SetField with unknown key should fail")
	}
}

func TestLoad_UsesOverrides(t *testing.T) {
	// Point the config dir somewhere empty so no developer config leaks in.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(map[string]string{"backend": "anthropic", "format": "json"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Backend != "anthropic" {
		t.Errorf("Backend = %q, want anthropic", cfg.Backend)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.PromptDir == "" {
		t.Error("Load should fill in a default prompt dir")
	}
}
