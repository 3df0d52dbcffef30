package promptgen

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const pythonSample = `import json
from fastapi import FastAPI

MAX_RETRIES = 3

class ReviewServer:
    def handle(self):
        try:
            pass
        except ValueError:
            raise RuntimeError("bad")

    def _internal(self):
        """Docstring."""
        pass

async def run_server(port: int) -> None:
    pass
`

func TestAnalyze_Python(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "server.py"), pythonSample)

	a, err := Analyze(dir, "python", true)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if a.Language != "Python" {
		t.Errorf("Language = %q, want Python", a.Language)
	}
	if a.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1", a.FileCount)
	}
	if !contains(a.Naming.Classes, "ReviewServer") {
		t.Errorf("Classes = %v, want ReviewServer", a.Naming.Classes)
	}
	if !contains(a.Naming.Functions, "run_server") || contains(a.Naming.Functions, "_internal") {
		t.Errorf("Functions = %v, want run_server without _internal", a.Naming.Functions)
	}
	if !contains(a.Naming.PrivateFields, "_internal") {
		t.Errorf("PrivateFields = %v, want _internal", a.Naming.PrivateFields)
	}
	if !contains(a.Naming.Constants, "MAX_RETRIES") {
		t.Errorf("Constants = %v, want MAX_RETRIES", a.Naming.Constants)
	}
	if a.Imports["fastapi"] == 0 || a.Imports["json"] == 0 {
		t.Errorf("Imports = %v, want fastapi and json counted", a.Imports)
	}
	if !contains(a.Frameworks, "FastAPI") {
		t.Errorf("Frameworks = %v, want FastAPI", a.Frameworks)
	}
	if !contains(a.Patterns.ErrorHandling, "try/except blocks") {
		t.Errorf("ErrorHandling = %v, want try/except blocks", a.Patterns.ErrorHandling)
	}
	if !contains(a.Patterns.Async, "async/await") {
		t.Errorf("Async = %v, want async/await", a.Patterns.Async)
	}
	if !a.Quality.UsesTypeHints || !a.Quality.UsesDocstrings {
		t.Errorf("Quality = %+v, want type hints and docstrings detected", a.Quality)
	}
}

func TestAnalyze_Go(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "server.go"), `package server

import (
	"fmt"
	"sync"
)

type Server struct{}

func (s *Server) Start() error {
	var wg sync.WaitGroup
	go func() { wg.Done() }()
	if err := fmt.Errorf("x"); err != nil {
		return err
	}
	return nil
}
`)
	writeFile(t, filepath.Join(dir, "server_test.go"), `package server

import "testing"

func TestStart(t *testing.T) {
	t.Run("ok", func(t *testing.T) {})
}
`)

	a, err := Analyze(dir, "Go", true)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if !contains(a.Naming.Classes, "Server") {
		t.Errorf("Classes = %v, want Server", a.Naming.Classes)
	}
	if !contains(a.Patterns.ErrorHandling, "explicit error checking") {
		t.Errorf("ErrorHandling = %v", a.Patterns.ErrorHandling)
	}
	if !contains(a.Patterns.Async, "goroutines") || !contains(a.Patterns.Async, "sync primitives") {
		t.Errorf("Async = %v", a.Patterns.Async)
	}
	if !contains(a.Patterns.Testing, "standard testing") || !contains(a.Patterns.Testing, "table-driven tests") {
		t.Errorf("Testing = %v", a.Patterns.Testing)
	}
}

func TestAnalyze_UnsupportedLanguage(t *testing.T) {
	if _, err := Analyze(t.TempDir(), "cobol", true); err == nil {
		t.Error("Analyze should reject an unsupported language")
	}
}

func TestAnalyze_NoFiles(t *testing.T) {
	if _, err := Analyze(t.TempDir(), "python", true); err == nil {
		t.Error("Analyze should fail when no matching files exist")
	}
}

func TestAnalyze_SkipsDependencyDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "def top(): pass\n")
	writeFile(t, filepath.Join(dir, "venv", "lib.py"), "def vendored(): pass\n")

	a, err := Analyze(dir, "python", true)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if a.FileCount != 1 {
		t.Errorf("FileCount = %d, want venv skipped", a.FileCount)
	}
}

func TestCaseConvention(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{[]string{"ReviewServer", "PromptBuilder"}, "PascalCase"},
		{[]string{"run_server", "load_config"}, "snake_case"},
		{[]string{"handleClick", "parseBody"}, "camelCase"},
		{[]string{"MAX_RETRIES", "TIMEOUT"}, "UPPER_SNAKE_CASE"},
		{[]string{"_buffer", "_count"}, "camelCase"},
		{nil, "unknown"},
	}
	for _, tt := range tests {
		if got := caseConvention(tt.names); got != tt.want {
			t.Errorf("caseConvention(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	for _, want := range []string{"Go", "Python", "TypeScript", "JavaScript", "CSharp", "Rust", "Java"} {
		if !contains(langs, want) {
			t.Errorf("Languages() = %v, missing %s", langs, want)
		}
	}
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}
