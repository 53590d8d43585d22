// Package search gives the classifier web context about a company.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/agenthands/naics/internal/config"
	"github.com/agenthands/naics/internal/core/model"
)

const DefaultMaxResults = 3

// ErrUnavailable is returned when the upstream search service cannot answer.
var ErrUnavailable = errors.New("search unavailable")

// UpstreamError describes a non-success answer of the search service.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("search upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("search upstream returned status %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error { return ErrUnavailable }

// Provider returns at most a fixed number of snippets for a query.
type Provider interface {
	Search(ctx context.Context, query string) ([]model.Snippet, error)
}

// NewProvider builds the provider selected in cfg.
func NewProvider(cfg config.SearchConfig) (Provider, error) {
	client := &http.Client{Timeout: cfg.Timeout.Duration}

	switch strings.ToLower(cfg.Provider) {
	case "serper":
		return NewSerper(cfg.URL, cfg.APIKey, cfg.MaxResults, client), nil
	case "duckduckgo":
		return NewDuckDuckGo("", cfg.MaxResults, client), nil
	case "none":
		return None{}, nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Provider)
	}
}

// None never searches.
type None struct{}

func (None) Search(context.Context, string) ([]model.Snippet, error) { return nil, nil }

// JoinBodies joins the full snippet bodies into the context passed to the model.
func JoinBodies(snippets []model.Snippet) string {
	bodies := make([]string, 0, len(snippets))
	for _, s := range snippets {
		bodies = append(bodies, s.Body)
	}
	return strings.Join(bodies, " ")
}

// Preview shortens a body for display. It always appends "..." to mark truncation.
func Preview(body string, length int) string {
	r := []rune(body)
	if length > 0 && len(r) > length {
		r = r[:length]
	}
	return string(r) + "..."
}
