// Critic is a CLI for reviewing source files with an LLM backend.
//
// It detects each file's language from its extension, selects a
// language-specific instruction template, sends the populated template plus
// source code to a local Ollama server or the Anthropic API, and prints the
// review as text or JSON.
//
// Usage:
//
//	critic review file.go                    # review a single file
//	critic review src/ -e .go,.py -r         # review a directory recursively
//	critic review file.go --format json      # structured output
//	critic review src/ --backend anthropic   # use the hosted API
//	critic prompts generate ./myproject -l go  # build a custom template
//
// See https://github.com/dshills/critic for full documentation.
package main
