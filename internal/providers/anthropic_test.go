package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropic_Submit(t *testing.T) {
	var gotReq anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != anthropicAPIVersion {
			t.Errorf("anthropic-version = %q, want %q", r.Header.Get("anthropic-version"), anthropicAPIVersion)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicBlock{{Type: "text", Text: "review text"}},
		})
	}))
	defer server.Close()

	a := &Anthropic{apiKey: "test-key", baseURL: server.URL, client: server.Client()}

	resp, err := a.Submit(context.Background(), Request{
		Prompt:      "review this",
		Model:       "claude-sonnet-4-20250514",
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if resp.Content != "review text" {
		t.Errorf("Content = %q, want %q", resp.Content, "review text")
	}

	if len(gotReq.Messages) != 1 {
		t.Fatalf("Messages len = %d, want 1 (single user-role message)", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "user" {
		t.Errorf("Role = %q, want user", gotReq.Messages[0].Role)
	}
	if gotReq.Messages[0].Content != "review this" {
		t.Errorf("Content = %q, want rendered prompt", gotReq.Messages[0].Content)
	}
	if gotReq.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", gotReq.MaxTokens)
	}
	if gotReq.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", gotReq.Temperature)
	}
}

func TestAnthropic_ZeroTemperatureSent(t *testing.T) {
	var gotRaw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotRaw); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicBlock{{Type: "text", Text: "ok"}},
		})
	}))
	defer server.Close()

	a := &Anthropic{apiKey: "k", baseURL: server.URL, client: server.Client()}
	if _, err := a.Submit(context.Background(), Request{Prompt: "p", Model: "m", Temperature: 0}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	// An explicit 0 must reach the API; omitting it would let the
	// server-side default apply instead.
	raw, ok := gotRaw["temperature"]
	if !ok {
		t.Fatal("temperature absent from payload")
	}
	if string(raw) != "0" {
		t.Errorf("temperature = %s, want 0", raw)
	}
}

func TestAnthropic_MultipleTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicBlock{
				{Type: "text", Text: "part one "},
				{Type: "thinking", Text: "ignored"},
				{Type: "text", Text: "part two"},
			},
		})
	}))
	defer server.Close()

	a := &Anthropic{apiKey: "k", baseURL: server.URL, client: server.Client()}
	resp, err := a.Submit(context.Background(), Request{Prompt: "p", Model: "m"})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if resp.Content != "part one part two" {
		t.Errorf("Content = %q, want concatenated text blocks", resp.Content)
	}
}

func TestAnthropic_AuthRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"error":{"type":"authentication_error"}}`))
	}))
	defer server.Close()

	a := &Anthropic{apiKey: "bad", baseURL: server.URL, client: server.Client()}
	_, err := a.Submit(context.Background(), Request{Prompt: "p", Model: "m"})
	if !IsAuthError(err) {
		t.Errorf("error = %v, want auth classification", err)
	}
}

func TestAnthropic_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(429)
	}))
	defer server.Close()

	a := &Anthropic{apiKey: "k", baseURL: server.URL, client: server.Client()}
	_, err := a.Submit(context.Background(), Request{Prompt: "p", Model: "m"})
	if !IsRateLimited(err) {
		t.Errorf("error = %v, want rate-limit classification", err)
	}
}

func TestNewAnthropic_MissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewAnthropic(Config{})
	if err == nil {
		t.Fatal("NewAnthropic without a key should fail")
	}
	if !IsAuthError(err) {
		t.Errorf("error = %v, want auth classification", err)
	}
}

func TestNewAnthropic_KeyFromConfig(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	a, err := NewAnthropic(Config{APIKey: "flag-key"})
	if err != nil {
		t.Fatalf("NewAnthropic error: %v", err)
	}
	if a.apiKey != "flag-key" {
		t.Errorf("apiKey = %q, want flag-key", a.apiKey)
	}
}

func TestNew_Dispatch(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	tests := []struct {
		name    string
		backend string
		want    string
	}{
		{"ollama", "ollama", "ollama"},
		{"local alias", "local", "ollama"},
		{"anthropic", "anthropic", "anthropic"},
		{"claude alias", "claude", "anthropic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.backend, Config{})
			if err != nil {
				t.Fatalf("New(%q) error: %v", tt.backend, err)
			}
			if b.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", b.Name(), tt.want)
			}
		})
	}

	if _, err := New("copilot", Config{}); err == nil {
		t.Error("New with unknown backend should fail")
	}
}
