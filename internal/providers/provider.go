package providers

import (
	"context"
	"fmt"
	"time"
)

// Request contains the payload sent to a backend for one review.
type Request struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
	ContextSize int
}

// Response contains the generated review text.
type Response struct {
	Content string
}

// Backend is the review-execution abstraction shared by both variants.
type Backend interface {
	Submit(ctx context.Context, req Request) (Response, error)
	Name() string
}

// Config carries construction-time settings for a backend.
type Config struct {
	// BaseURL overrides the local server address (Ollama only).
	BaseURL string
	// APIKey is the credential for the hosted variant. Falls back to the
	// ANTHROPIC_API_KEY environment variable when empty.
	APIKey string
	// Timeout bounds each Submit call. Zero means the per-backend default.
	Timeout time.Duration
}

// New creates a backend by name.
func New(name string, cfg Config) (Backend, error) {
	switch name {
	case "ollama", "local", "lmstudio":
		return NewOllama(cfg), nil
	case "anthropic", "claude":
		return NewAnthropic(cfg)
	default:
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
}
