package promptgen

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/critic/internal/language"
	"github.com/dshills/critic/internal/review"
)

// Naming collects identifier samples grouped by role.
type Naming struct {
	Classes       []string `json:"classes"`
	Functions     []string `json:"functions"`
	Constants     []string `json:"constants"`
	PrivateFields []string `json:"privateFields"`
}

// Patterns collects observed idioms grouped by concern.
type Patterns struct {
	ErrorHandling []string `json:"errorHandling"`
	Async         []string `json:"async"`
	Testing       []string `json:"testing"`
	Documentation []string `json:"documentation"`
}

// Quality holds coarse code-quality signals.
type Quality struct {
	MaxFileLength  int  `json:"maxFileLength"`
	UsesTypeHints  bool `json:"usesTypeHints"`
	UsesDocstrings bool `json:"usesDocstrings"`
}

// Analysis is the result of scanning a codebase for conventions.
type Analysis struct {
	Language   string         `json:"language"`
	FileCount  int            `json:"fileCount"`
	Naming     Naming         `json:"naming"`
	Imports    map[string]int `json:"imports"`
	Frameworks []string       `json:"frameworks"`
	Patterns   Patterns       `json:"patterns"`
	Features   map[string]int `json:"features"`
	Quality    Quality        `json:"quality"`
}

// probe marks a pattern when its substring appears in a file.
type probe struct {
	substr  string
	pattern string
}

// profile describes how to extract conventions from one language. A nil
// regexp or empty probe list simply skips that category.
type profile struct {
	classes       *regexp.Regexp
	functions     *regexp.Regexp
	constants     *regexp.Regexp
	privateFields *regexp.Regexp
	imports       *regexp.Regexp
	frameworks    map[string]string // substring -> framework name
	errorHandling []probe
	async         []probe
	testing       []probe
	documentation []probe
	typeHints     *regexp.Regexp
	docstrings    []string
	features      []probe
}

var profiles = map[string]profile{
	"Python": {
		classes:   regexp.MustCompile(`(?m)^class\s+(\w+)`),
		functions: regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+(\w+)`),
		constants: regexp.MustCompile(`(?m)^([A-Z_]{2,})\s*=`),
		imports:   regexp.MustCompile(`(?m)^(?:from\s+(\S+)\s+import|import\s+(\S+))`),
		frameworks: map[string]string{
			"fastapi": "FastAPI",
			"flask":   "Flask",
			"django":  "Django",
			"pytest":  "pytest",
		},
		errorHandling: []probe{
			{"try:", "try/except blocks"},
			{"raise ", "explicit exceptions"},
		},
		async: []probe{
			{"async def", "async/await"},
			{"asyncio", "asyncio"},
		},
		typeHints:  regexp.MustCompile(`:\s*\w+\s*(?:=|\)|->)`),
		docstrings: []string{`"""`, `'''`},
	},
	"TypeScript": {
		classes:       regexp.MustCompile(`class\s+(\w+)`),
		functions:     regexp.MustCompile(`(?:function\s+(\w+)|const\s+(\w+)\s*=\s*(?:async\s*)?\()`),
		constants:     regexp.MustCompile(`const\s+([A-Z_]{2,})\s*=`),
		privateFields: regexp.MustCompile(`private\s+(\w+):`),
		imports:       regexp.MustCompile(`import\s+.*?\s+from\s+['"]([^'"]+)`),
		frameworks: map[string]string{
			"react":     "React",
			"vue":       "Vue",
			"angular":   "Angular",
			"express":   "Express",
			"describe(": "Jest",
			"jest":      "Jest",
		},
		errorHandling: []probe{{"try {", "try/catch blocks"}},
		async: []probe{
			{"async ", "async/await"},
			{"await ", "async/await"},
			{".then(", "Promise chains"},
		},
		typeHints: regexp.MustCompile(`\b(?:interface|type)\s+\w+`),
		features:  []probe{{": any", "uses any type"}},
	},
	"CSharp": {
		classes:       regexp.MustCompile(`class\s+(\w+)`),
		functions:     regexp.MustCompile(`(?:public|private|protected|internal)\s+(?:static\s+)?(?:async\s+)?(?:\w+\s+)?(\w+)\s*\(`),
		privateFields: regexp.MustCompile(`private\s+(?:readonly\s+)?\w+\s+(_\w+)`),
		imports:       regexp.MustCompile(`using\s+([^;\s]+);`),
		frameworks: map[string]string{
			"DbContext":       "Entity Framework",
			"[ApiController]": "ASP.NET Core",
			"Controller":      "ASP.NET Core",
			"[Fact]":          "xUnit",
			"[Test]":          "NUnit",
		},
		errorHandling: []probe{{"catch", "try/catch blocks"}},
		async: []probe{
			{"await ", "async/await"},
			{".ConfigureAwait(", "ConfigureAwait"},
		},
		typeHints:     regexp.MustCompile(`#nullable enable`),
		documentation: []probe{{"///", "XML documentation"}},
	},
	"Go": {
		classes:   regexp.MustCompile(`type\s+(\w+)\s+(?:struct|interface)`),
		functions: regexp.MustCompile(`func\s+(?:\(\w+\s+\*?\w+\)\s+)?(\w+)\s*\(`),
		imports:   regexp.MustCompile(`"([\w./-]+/[\w./-]+|[a-z]+)"`),
		errorHandling: []probe{
			{"if err != nil", "explicit error checking"},
			{"defer ", "defer for cleanup"},
		},
		async: []probe{
			{"go func", "goroutines"},
			{"chan ", "channels"},
			{"sync.", "sync primitives"},
		},
		testing: []probe{
			{"func Test", "standard testing"},
			{"t.Run(", "table-driven tests"},
		},
	},
	"Rust": {
		classes:   regexp.MustCompile(`(?:pub\s+)?(?:struct|enum)\s+(\w+)`),
		functions: regexp.MustCompile(`(?:pub\s+)?fn\s+(\w+)`),
		constants: regexp.MustCompile(`const\s+([A-Z_]+):`),
		imports:   regexp.MustCompile(`use\s+([^;:]+)`),
		errorHandling: []probe{
			{"Result<", "Result type"},
			{".unwrap()", "unwrap calls"},
		},
		async: []probe{
			{"async fn", "async/await"},
			{".await", "async/await"},
		},
		testing: []probe{
			{"#[test]", "unit tests"},
			{"#[cfg(test)]", "test modules"},
		},
		features: []probe{{".unwrap()", "uses unwrap"}},
	},
	"Java": {
		classes:   regexp.MustCompile(`(?:public\s+)?class\s+(\w+)`),
		functions: regexp.MustCompile(`(?:public|private|protected)\s+(?:static\s+)?(?:\w+\s+)?(\w+)\s*\(`),
		imports:   regexp.MustCompile(`import\s+([^;]+);`),
		frameworks: map[string]string{
			"Spring":     "Spring",
			"@Autowired": "Spring",
			"JUnit":      "JUnit",
			"@Test":      "JUnit",
		},
		errorHandling: []probe{{"try {", "try/catch blocks"}},
		documentation: []probe{{"/**", "JavaDoc"}},
	},
}

func init() {
	// JavaScript shares the TypeScript profile.
	profiles["JavaScript"] = profiles["TypeScript"]
}

const (
	maxNamingSamples = 10
	maxImports       = 15
)

// Analyze scans dir for files in the given language and extracts the
// conventions the codebase follows. lang is matched against profile keys
// case-insensitively.
func Analyze(dir, lang string, recursive bool) (*Analysis, error) {
	tag, prof, err := lookupProfile(lang)
	if err != nil {
		return nil, err
	}

	files, err := review.MatchFiles(dir, language.Extensions(tag), recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", tag, dir)
	}

	a := &Analysis{
		Language: tag,
		Imports:  make(map[string]int),
		Features: make(map[string]int),
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot analyze %s: %v\n", f, err)
			continue
		}
		a.FileCount++
		analyzeFile(a, prof, string(data))
	}
	finalize(a)
	return a, nil
}

// Languages returns the tags Analyze understands, sorted.
func Languages() []string {
	tags := make([]string, 0, len(profiles))
	for tag := range profiles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func lookupProfile(lang string) (string, profile, error) {
	for tag, p := range profiles {
		if strings.EqualFold(tag, lang) {
			return tag, p, nil
		}
	}
	return "", profile{}, fmt.Errorf("unsupported language %q (supported: %s)", lang, strings.Join(Languages(), ", "))
}

func analyzeFile(a *Analysis, p profile, content string) {
	if n := strings.Count(content, "\n") + 1; n > a.Quality.MaxFileLength {
		a.Quality.MaxFileLength = n
	}

	a.Naming.Classes = append(a.Naming.Classes, captures(p.classes, content)...)
	a.Naming.Constants = append(a.Naming.Constants, captures(p.constants, content)...)
	a.Naming.PrivateFields = append(a.Naming.PrivateFields, captures(p.privateFields, content)...)
	for _, name := range captures(p.functions, content) {
		// Python-style single-underscore names are private by convention.
		if strings.HasPrefix(name, "_") && !strings.HasPrefix(name, "__") {
			a.Naming.PrivateFields = append(a.Naming.PrivateFields, name)
		} else {
			a.Naming.Functions = append(a.Naming.Functions, name)
		}
	}

	for _, mod := range captures(p.imports, content) {
		if base := baseModule(mod); base != "" {
			a.Imports[base]++
		}
	}

	lower := strings.ToLower(content)
	for needle, fw := range p.frameworks {
		if strings.Contains(lower, strings.ToLower(needle)) {
			a.Frameworks = append(a.Frameworks, fw)
		}
	}

	a.Patterns.ErrorHandling = append(a.Patterns.ErrorHandling, probeAll(p.errorHandling, content)...)
	a.Patterns.Async = append(a.Patterns.Async, probeAll(p.async, content)...)
	a.Patterns.Testing = append(a.Patterns.Testing, probeAll(p.testing, content)...)
	a.Patterns.Documentation = append(a.Patterns.Documentation, probeAll(p.documentation, content)...)

	if p.typeHints != nil && p.typeHints.MatchString(content) {
		a.Quality.UsesTypeHints = true
	}
	for _, marker := range p.docstrings {
		if strings.Contains(content, marker) {
			a.Quality.UsesDocstrings = true
		}
	}
	for _, f := range p.features {
		a.Features[f.pattern] += strings.Count(content, f.substr)
	}
}

// captures returns every non-empty capture group match of re in content.
func captures(re *regexp.Regexp, content string) []string {
	if re == nil {
		return nil
	}
	var out []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		for _, g := range m[1:] {
			if g != "" {
				out = append(out, strings.TrimSpace(g))
				break
			}
		}
	}
	return out
}

func probeAll(probes []probe, content string) []string {
	var out []string
	for _, p := range probes {
		if strings.Contains(content, p.substr) {
			out = append(out, p.pattern)
		}
	}
	return out
}

// baseModule reduces an import path to its leading component, dropping
// relative imports and scope sigils.
func baseModule(mod string) string {
	mod = strings.Trim(mod, `"' `)
	if strings.HasPrefix(mod, ".") {
		return ""
	}
	for _, sep := range []string{"/", ".", "::"} {
		if i := strings.Index(mod, sep); i > 0 {
			mod = mod[:i]
			break
		}
	}
	return strings.TrimPrefix(mod, "@")
}

// finalize dedupes sample lists and trims them to readable sizes.
func finalize(a *Analysis) {
	a.Naming.Classes = dedupe(a.Naming.Classes, maxNamingSamples)
	a.Naming.Functions = dedupe(a.Naming.Functions, maxNamingSamples)
	a.Naming.Constants = dedupe(a.Naming.Constants, maxNamingSamples)
	a.Naming.PrivateFields = dedupe(a.Naming.PrivateFields, maxNamingSamples)
	a.Frameworks = dedupe(a.Frameworks, 0)
	a.Patterns.ErrorHandling = dedupe(a.Patterns.ErrorHandling, 0)
	a.Patterns.Async = dedupe(a.Patterns.Async, 0)
	a.Patterns.Testing = dedupe(a.Patterns.Testing, 0)
	a.Patterns.Documentation = dedupe(a.Patterns.Documentation, 0)
	trimImports(a)
}

// dedupe keeps the first occurrence of each item in order; max 0 means
// unbounded.
func dedupe(items []string, max int) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// trimImports keeps only the most frequently imported modules.
func trimImports(a *Analysis) {
	if len(a.Imports) <= maxImports {
		return
	}
	type kv struct {
		mod   string
		count int
	}
	ranked := make([]kv, 0, len(a.Imports))
	for mod, count := range a.Imports {
		ranked = append(ranked, kv{mod, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].mod < ranked[j].mod
	})
	kept := make(map[string]int, maxImports)
	for _, r := range ranked[:maxImports] {
		kept[r.mod] = r.count
	}
	a.Imports = kept
}
