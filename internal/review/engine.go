package review

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/dshills/critic/internal/cache"
	"github.com/dshills/critic/internal/language"
	"github.com/dshills/critic/internal/prompt"
	"github.com/dshills/critic/internal/providers"
	"github.com/dshills/critic/internal/redact"
)

// Options configures the per-file pipeline.
type Options struct {
	Extensions    []string
	Recursive     bool
	PromptFile    string
	PromptDir     string
	Model         string
	MaxTokens     int
	ContextSize   int
	Temperature   float64
	RedactSecrets bool

	// Progress, when set, is called before each file's backend call.
	Progress func(file, lang string)
}

// Engine runs the review pipeline against one backend.
type Engine struct {
	backend providers.Backend
	cache   *cache.Cache
	opts    Options
}

// NewEngine creates an Engine. cache may be nil to disable response caching.
func NewEngine(backend providers.Backend, c *cache.Cache, opts Options) *Engine {
	return &Engine{backend: backend, cache: c, opts: opts}
}

// Run resolves target and returns a lazy, finite sequence of Results, one
// per matched file, produced in enumeration order. A file target yields
// exactly one Result and bypasses the extension filter. Only an
// unresolvable target is an error; per-file failures are carried inside
// the Results.
func (e *Engine) Run(ctx context.Context, target string) (iter.Seq[Result], error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("resolving target: %w", err)
	}

	if info.IsDir() {
		files, err := MatchFiles(target, e.opts.Extensions, e.opts.Recursive)
		if err != nil {
			return nil, err
		}
		return func(yield func(Result) bool) {
			for _, f := range files {
				if !yield(e.ReviewFile(ctx, f)) {
					return
				}
			}
		}, nil
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a file or directory: %s", target)
	}
	return func(yield func(Result) bool) {
		yield(e.ReviewFile(ctx, target))
	}, nil
}

// ReviewFile runs the full pipeline for one file: classify, resolve,
// render, submit. Every failure is captured on the Result; ReviewFile
// never returns an inconsistent review/error pair.
func (e *Engine) ReviewFile(ctx context.Context, path string) Result {
	res := Result{File: path, Language: language.Classify(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = &Error{Kind: KindFileUnreadable, Message: fmt.Sprintf("cannot read file: %v", err)}
		return res
	}
	source := string(data)
	if e.opts.RedactSecrets {
		source = redact.Secrets(source)
	}

	tmpl, err := prompt.Resolve(res.Language, e.opts.PromptFile, e.opts.PromptDir)
	if err != nil {
		res.Err = Classify(err)
		return res
	}
	payload := prompt.Render(tmpl, filepath.Base(path), res.Language, source)

	if cached, ok := e.cache.Get(e.opts.Model, payload); ok {
		res.Review = cached
		return res
	}

	if e.opts.Progress != nil {
		e.opts.Progress(path, res.Language)
	}

	resp, err := e.backend.Submit(ctx, providers.Request{
		Prompt:      payload,
		Model:       e.opts.Model,
		MaxTokens:   e.opts.MaxTokens,
		Temperature: e.opts.Temperature,
		ContextSize: e.opts.ContextSize,
	})
	if err != nil {
		res.Err = Classify(err)
		return res
	}

	res.Review = resp.Content
	if err := e.cache.Put(e.opts.Model, payload, resp.Content); err != nil {
		// Cache writes are best-effort; the review itself succeeded.
		fmt.Fprintf(os.Stderr, "warning: caching response: %v\n", err)
	}
	return res
}
