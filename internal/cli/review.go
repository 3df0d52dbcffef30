package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/critic/internal/cache"
	"github.com/dshills/critic/internal/config"
	"github.com/dshills/critic/internal/output"
	"github.com/dshills/critic/internal/providers"
	"github.com/dshills/critic/internal/review"
)

var (
	flagExt         string
	flagRecursive   bool
	flagBackend     string
	flagModel       string
	flagFormat      string
	flagOut         string
	flagPromptFile  string
	flagPromptDir   string
	flagMaxTokens   int
	flagCtxSize     int
	flagTimeout     int
	flagAPIKey      string
	flagNoRedact    bool
	flagNoCache     bool
	flagPlain       bool
	flagFailOnError bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <path>",
	Short: "Review a file or directory",
	Long: `Review a source file, or every matching file in a directory, using the
configured LLM backend. Results stream to stdout as each file completes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runReview(args[0], cfg)
		return nil
	},
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagBackend != "" {
		m["backend"] = flagBackend
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagExt != "" {
		m["extensions"] = flagExt
	}
	if flagPromptDir != "" {
		m["promptDir"] = flagPromptDir
	}
	if flagMaxTokens > 0 {
		m["maxTokens"] = fmt.Sprintf("%d", flagMaxTokens)
	}
	if flagCtxSize > 0 {
		m["ctxSize"] = fmt.Sprintf("%d", flagCtxSize)
	}
	if flagTimeout > 0 {
		m["timeout"] = fmt.Sprintf("%d", flagTimeout)
	}
	return m
}

func runReview(target string, cfg config.Config) {
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel(cfg.Backend)
	}

	backend, err := providers.New(cfg.Backend, providers.Config{
		APIKey:  flagAPIKey,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitUsageError
		}
		return
	}

	c, err := cache.New(cfg.Cache.Enabled && !flagNoCache, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cache unavailable: %v\n", err)
		c = nil
	}

	dest, closeDest, err := openOutput(flagOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	defer closeDest()

	writer, err := output.NewWriter(cfg.Format, dest, plainOutput())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	engine := review.NewEngine(backend, c, review.Options{
		Extensions:    cfg.Extensions,
		Recursive:     flagRecursive,
		PromptFile:    flagPromptFile,
		PromptDir:     cfg.PromptDir,
		Model:         cfg.Model,
		MaxTokens:     cfg.MaxTokens,
		ContextSize:   cfg.ContextSize,
		Temperature:   cfg.Temperature,
		RedactSecrets: cfg.Privacy.RedactSecrets,
		Progress: func(file, lang string) {
			fmt.Fprintf(os.Stderr, "Reviewing %s (%s)...\n", file, lang)
		},
	})

	results, err := engine.Run(context.Background(), target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	var total, failed int
	for res := range results {
		total++
		if res.Failed() {
			failed++
		}
		if err := writer.WriteResult(res); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if total == 0 {
		fmt.Fprintf(os.Stderr, "No files matching %v found in %s\n", cfg.Extensions, target)
		return
	}
	fmt.Fprintf(os.Stderr, "Reviewed %d file(s), %d error(s)\n", total, failed)

	if flagFailOnError && failed > 0 {
		exitCode = ExitFailures
	}
}

// openOutput returns the destination writer for results and a cleanup func.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// plainOutput reports whether markdown rendering should be skipped: when
// asked for, when writing to a file, or when stdout is not a terminal.
func plainOutput() bool {
	if flagPlain || flagOut != "" {
		return true
	}
	return !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func init() {
	reviewCmd.Flags().StringVarP(&flagExt, "ext", "e", "", "File extensions to include (comma-separated, e.g. .go,.py)")
	reviewCmd.Flags().BoolVarP(&flagRecursive, "recursive", "r", false, "Descend into subdirectories")
	reviewCmd.Flags().StringVar(&flagBackend, "backend", "", "LLM backend (ollama, anthropic)")
	reviewCmd.Flags().StringVarP(&flagModel, "model", "m", "", "Model name")
	reviewCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json)")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	reviewCmd.Flags().StringVar(&flagPromptFile, "prompt-file", "", "Custom prompt template file")
	reviewCmd.Flags().StringVar(&flagPromptDir, "prompt-dir", "", "Directory of per-language prompt templates")
	reviewCmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0, "Maximum response tokens")
	reviewCmd.Flags().IntVar(&flagCtxSize, "ctx-size", 0, "Model context window size (local backend)")
	reviewCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds")
	reviewCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key (overrides ANTHROPIC_API_KEY)")
	reviewCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	reviewCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the response cache")
	reviewCmd.Flags().BoolVar(&flagPlain, "plain", false, "Disable terminal markdown rendering")
	reviewCmd.Flags().BoolVar(&flagFailOnError, "fail-on-error", false, "Exit 1 if any file review fails")
}
