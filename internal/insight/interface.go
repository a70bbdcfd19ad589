// Package insight generates natural-language commentary on parameter
// sweep results through pluggable LLM providers.
package insight

import "context"

// Provider is a pluggable completion backend. Commentary is single-turn:
// one system instruction, one prompt, one text answer.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single completion request.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}
