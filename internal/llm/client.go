package llm

import (
	"context"
	"errors"
)

// ErrAuthentication is returned when the provider rejects the configured credential.
var ErrAuthentication = errors.New("invalid API key")

// ErrNoChoices is returned when a provider answers without any completion.
var ErrNoChoices = errors.New("no response choices")

// ChatRequest is a single system+user exchange.
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
	// N is the number of independent completions requested. Zero means one.
	N int
	// JSON asks the provider to constrain output to a JSON object.
	JSON bool
}

func (r ChatRequest) completions() int {
	if r.N < 1 {
		return 1
	}
	return r.N
}

// ChatClient returns the text of every completion choice, in provider order.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) ([]string, error)
}
