package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/critic/internal/config"
	"github.com/dshills/critic/internal/providers"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Backend and model management",
}

type modelInfo struct {
	Backend string
	Models  []string
}

var knownModels = []modelInfo{
	{
		Backend: "ollama",
		Models: []string{
			"deepseek-coder-v2:16b",
			"qwen2.5-coder",
			"codellama",
			"llama3.3",
			"llama3.1",
		},
	},
	{
		Backend: "anthropic",
		Models: []string{
			"claude-sonnet-4-20250514",
			"claude-opus-4-20250514",
			"claude-3-5-haiku-20241022",
		},
	},
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known backends and models",
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range knownModels {
			fmt.Fprintf(os.Stdout, "%s:\n", info.Backend)
			for _, m := range info.Models {
				fmt.Fprintf(os.Stdout, "  - %s\n", m)
			}
			fmt.Fprintln(os.Stdout)
		}
	},
}

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate backend connectivity and credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		if cfg.Model == "" {
			cfg.Model = config.DefaultModel(cfg.Backend)
		}

		fmt.Fprintf(os.Stdout, "Checking %s (%s)...\n", cfg.Backend, cfg.Model)

		backend, err := providers.New(cfg.Backend, providers.Config{
			APIKey:  flagAPIKey,
			Timeout: 30 * time.Second,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
			if providers.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitUsageError
			}
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err = backend.Submit(ctx, providers.Request{
			Prompt:    "Respond with exactly: ok",
			Model:     cfg.Model,
			MaxTokens: 10,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
			if providers.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		fmt.Fprintf(os.Stdout, "OK: %s is configured and responding\n", cfg.Backend)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDoctorCmd)
	modelsDoctorCmd.Flags().StringVar(&flagBackend, "backend", "", "Backend to check (ollama, anthropic)")
	modelsDoctorCmd.Flags().StringVarP(&flagModel, "model", "m", "", "Model to check")
	modelsDoctorCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key (overrides ANTHROPIC_API_KEY)")
}
