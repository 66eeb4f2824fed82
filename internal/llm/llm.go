// Package llm provides the model-client boundary used by the chaos-intern
// generator and the critic. The core analysis pipeline never touches this
// package; it only consumes fully materialized run logs.
package llm

import "context"

// CompletionRequest is a single prompt completion request.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
}

// Client defines the interface for model completions. Implementations may be
// long-latency and fallible; callers bound them with the context.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
