package promptgen

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Generate renders an analysis into a review template for the project. The
// output carries the standard {filename}, {language}, and {code}
// placeholders so it can be used directly as a prompt file.
func Generate(a *Analysis, projectName string) string {
	sections := []string{
		header(a, projectName),
		namingSection(a),
		frameworksSection(a),
		practicesSection(a),
		testingSection(a),
		qualitySection(a),
		footer(),
	}
	var kept []string
	for _, s := range sections {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}

func header(a *Analysis, projectName string) string {
	return fmt.Sprintf(`You are an expert %s code reviewer for the %s project.

This prompt was auto-generated by analyzing the existing codebase to extract
coding conventions, patterns, and standards. Review new code to ensure it
matches the established patterns in this project.

File: {filename}
Language: {language}`, a.Language, projectName)
}

func namingSection(a *Analysis) string {
	lines := []string{"## 1. Naming Conventions"}
	appendRole := func(role string, names []string) {
		if len(names) == 0 {
			return
		}
		examples := names
		if len(examples) > 5 {
			examples = examples[:5]
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (e.g., %s)",
			role, caseConvention(names), strings.Join(examples, ", ")))
	}
	appendRole("Classes/Types", a.Naming.Classes)
	appendRole("Functions/Methods", a.Naming.Functions)
	appendRole("Constants", a.Naming.Constants)
	appendRole("Private fields", a.Naming.PrivateFields)
	if len(lines) == 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

// caseConvention names the dominant identifier style in a sample list.
func caseConvention(names []string) string {
	if len(names) == 0 {
		return "unknown"
	}
	counts := make(map[string]int)
	for _, name := range names {
		counts[classifyCase(name)]++
	}
	best, bestCount := "mixed", 0
	for conv, n := range counts {
		if n > bestCount {
			best, bestCount = conv, n
		}
	}
	return best
}

func classifyCase(name string) string {
	trimmed := strings.TrimPrefix(name, "_")
	switch {
	case trimmed == "":
		return "mixed"
	case trimmed == strings.ToUpper(trimmed) && strings.ContainsAny(trimmed, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"):
		return "UPPER_SNAKE_CASE"
	case strings.Contains(trimmed, "_") && trimmed == strings.ToLower(trimmed):
		return "snake_case"
	case !strings.Contains(trimmed, "_") && unicode.IsUpper(rune(trimmed[0])):
		return "PascalCase"
	case !strings.Contains(trimmed, "_") && unicode.IsLower(rune(trimmed[0])):
		return "camelCase"
	default:
		return "mixed"
	}
}

func frameworksSection(a *Analysis) string {
	if len(a.Frameworks) == 0 && len(a.Imports) == 0 {
		return ""
	}
	lines := []string{"## 2. Frameworks & Libraries"}
	if len(a.Frameworks) > 0 {
		lines = append(lines, "", "This project uses:")
		for _, fw := range a.Frameworks {
			lines = append(lines, "- "+fw)
		}
	}
	if len(a.Imports) > 0 {
		lines = append(lines, "", "Common imports/packages:")
		for _, mod := range rankedImports(a.Imports, 10) {
			lines = append(lines, fmt.Sprintf("- %s (used %d times)", mod, a.Imports[mod]))
		}
	}
	return strings.Join(lines, "\n")
}

// rankedImports sorts modules by descending use count, name as tiebreak.
func rankedImports(imports map[string]int, max int) []string {
	mods := make([]string, 0, len(imports))
	for mod := range imports {
		mods = append(mods, mod)
	}
	sort.Slice(mods, func(i, j int) bool {
		if imports[mods[i]] != imports[mods[j]] {
			return imports[mods[i]] > imports[mods[j]]
		}
		return mods[i] < mods[j]
	})
	if len(mods) > max {
		mods = mods[:max]
	}
	return mods
}

func practicesSection(a *Analysis) string {
	lines := []string{"## 3. Code Patterns & Best Practices"}
	appendGroup := func(title string, patterns []string) {
		if len(patterns) == 0 {
			return
		}
		lines = append(lines, "", title+":")
		for _, p := range patterns {
			lines = append(lines, "- Uses "+p)
		}
	}
	appendGroup("Error Handling", a.Patterns.ErrorHandling)
	appendGroup("Async/Concurrency Patterns", a.Patterns.Async)
	appendGroup("Documentation", a.Patterns.Documentation)

	var common []string
	for _, feat := range sortedKeys(a.Features) {
		if a.Features[feat] > 3 {
			common = append(common, feat)
		}
	}
	appendGroup("Common Patterns", common)

	if len(lines) == 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func testingSection(a *Analysis) string {
	if len(a.Patterns.Testing) == 0 {
		return ""
	}
	lines := []string{"## 4. Testing Standards", "", "This project follows these testing patterns:"}
	for _, p := range a.Patterns.Testing {
		lines = append(lines, "- "+p)
	}
	return strings.Join(lines, "\n")
}

func qualitySection(a *Analysis) string {
	lines := []string{"## 5. Code Quality & Style"}
	if a.Quality.UsesTypeHints {
		lines = append(lines, "- Code uses type hints/annotations - ensure new code does too")
	}
	if a.Quality.UsesDocstrings {
		lines = append(lines, "- Functions have documentation - add docstrings to new functions")
	}
	if a.Quality.MaxFileLength > 0 {
		lines = append(lines, fmt.Sprintf("- Maximum file length observed: ~%d lines", a.Quality.MaxFileLength))
	}
	if len(lines) == 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func footer() string {
	return "## Review Guidelines\n\n" +
		"When reviewing code:\n" +
		"1. Check that it follows the naming conventions above\n" +
		"2. Ensure it uses the same frameworks/libraries as the rest of the codebase\n" +
		"3. Verify error handling matches established patterns\n" +
		"4. Confirm testing approach is consistent\n" +
		"5. Check code quality matches project standards\n\n" +
		"Prioritize issues by severity:\n" +
		"- CRITICAL: Bugs, security issues, inconsistent patterns that break compatibility\n" +
		"- HIGH: Major style violations, missing tests, poor error handling\n" +
		"- MEDIUM: Minor style issues, optimization opportunities\n" +
		"- LOW: Suggestions for improvement\n\n" +
		"```{language}\n" +
		"{code}\n" +
		"```\n\n" +
		"Review:"
}
