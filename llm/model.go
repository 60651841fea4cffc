// Package llm talks to an OpenAI compatible chat completion endpoint, either a
// local Ollama server or the hosted OpenAI API.
package llm

import "context"

// Model is a single synchronous completion call
type Model interface {
	// Complete sends the request and returns the raw text of the first choice.
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is one completion request
type Request struct {
	// SystemPrompt carries the fixed extraction instructions
	SystemPrompt string
	// Prompt is the user message holding the vulnerability text
	Prompt string
}

// ModelFunc adapts a plain function to the Model interface
type ModelFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f
func (f ModelFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
