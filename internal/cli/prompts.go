package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/critic/internal/config"
	"github.com/dshills/critic/internal/language"
	"github.com/dshills/critic/internal/promptgen"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage review prompt templates",
}

var (
	flagGenLang        string
	flagGenOutput      string
	flagGenName        string
	flagGenJSON        bool
	flagGenNoRecursive bool
)

var promptsGenerateCmd = &cobra.Command{
	Use:   "generate <dir>",
	Short: "Generate a custom prompt template from an existing codebase",
	Long: `Scan a project for naming conventions, frameworks, and idioms, and write
a review template that enforces the same patterns. The template goes into
the prompt directory and is picked up automatically for its language, or
can be passed explicitly with review --prompt-file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analysis, err := promptgen.Analyze(args[0], flagGenLang, !flagGenNoRecursive)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if flagGenJSON {
			data, err := json.MarshalIndent(analysis, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(data))
			return nil
		}

		name := flagGenName
		if name == "" {
			abs, err := filepath.Abs(args[0])
			if err == nil {
				name = filepath.Base(abs)
			} else {
				name = filepath.Base(args[0])
			}
		}
		tmpl := promptgen.Generate(analysis, name)

		outPath := flagGenOutput
		if outPath == "" {
			dir, err := promptDir()
			if err != nil {
				return err
			}
			outPath = filepath.Join(dir, strings.ToLower(analysis.Language)+"-custom.txt")
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("creating prompt directory: %w", err)
		}
		if err := os.WriteFile(outPath, []byte(tmpl), 0o644); err != nil {
			return fmt.Errorf("writing prompt file: %w", err)
		}

		fmt.Fprintf(os.Stdout, "Prompt generated: %s\n", outPath)
		fmt.Fprintf(os.Stdout, "  Files analyzed: %d\n", analysis.FileCount)
		fmt.Fprintf(os.Stdout, "  Types found: %d, functions found: %d\n",
			len(analysis.Naming.Classes), len(analysis.Naming.Functions))
		if len(analysis.Frameworks) > 0 {
			fmt.Fprintf(os.Stdout, "  Frameworks: %s\n", strings.Join(analysis.Frameworks, ", "))
		}
		fmt.Fprintf(os.Stdout, "\nUse it with:\n  critic review yourfile --prompt-file %s\n", outPath)
		return nil
	},
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available prompt templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := promptDir()
		if err != nil {
			return err
		}

		custom := make(map[string]bool)
		if entries, err := os.ReadDir(dir); err == nil {
			for _, e := range entries {
				if !e.IsDir() && filepath.Ext(e.Name()) == ".txt" {
					custom[strings.TrimSuffix(e.Name(), ".txt")] = true
				}
			}
		}

		fmt.Fprintf(os.Stdout, "Prompt directory: %s\n\n", dir)
		for _, tag := range language.Tags() {
			source := "builtin default"
			if custom[strings.ToLower(tag)] {
				source = filepath.Join(dir, strings.ToLower(tag)+".txt")
				delete(custom, strings.ToLower(tag))
			}
			fmt.Fprintf(os.Stdout, "  %-12s %s\n", tag, source)
		}

		if len(custom) > 0 {
			var extra []string
			for name := range custom {
				extra = append(extra, name)
			}
			sort.Strings(extra)
			fmt.Fprintln(os.Stdout, "\nOther templates (use with --prompt-file):")
			for _, name := range extra {
				fmt.Fprintf(os.Stdout, "  %s\n", filepath.Join(dir, name+".txt"))
			}
		}
		return nil
	},
}

var promptsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the prompt template directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := promptDir()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, dir)
		return nil
	},
}

// promptDir resolves the effective template directory, honoring the
// configured and flag-provided locations.
func promptDir() (string, error) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return "", err
	}
	return cfg.PromptDir, nil
}

func init() {
	promptsCmd.AddCommand(promptsGenerateCmd)
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsPathCmd)

	promptsGenerateCmd.Flags().StringVarP(&flagGenLang, "language", "l", "", "Language to analyze (required)")
	promptsGenerateCmd.Flags().StringVarP(&flagGenOutput, "output", "o", "", "Output file (default: <prompt-dir>/<language>-custom.txt)")
	promptsGenerateCmd.Flags().StringVarP(&flagGenName, "name", "n", "", "Project name (default: directory name)")
	promptsGenerateCmd.Flags().BoolVar(&flagGenJSON, "json", false, "Print the raw analysis as JSON instead of a prompt")
	promptsGenerateCmd.Flags().BoolVar(&flagGenNoRecursive, "no-recursive", false, "Don't scan subdirectories")
	promptsGenerateCmd.MarkFlagRequired("language")

	promptsListCmd.Flags().StringVar(&flagPromptDir, "prompt-dir", "", "Directory of per-language prompt templates")
	promptsPathCmd.Flags().StringVar(&flagPromptDir, "prompt-dir", "", "Directory of per-language prompt templates")
}
