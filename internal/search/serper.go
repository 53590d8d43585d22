package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/agenthands/naics/internal/core/model"
)

const DefaultSerperURL = "https://google.serper.dev/search"

// Serper queries the google.serper.dev JSON API.
type Serper struct {
	url        string
	apiKey     string
	maxResults int
	client     *http.Client
}

func NewSerper(url, apiKey string, maxResults int, client *http.Client) *Serper {
	if url == "" {
		url = DefaultSerperURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if maxResults < 1 {
		maxResults = DefaultMaxResults
	}
	return &Serper{url: url, apiKey: apiKey, maxResults: maxResults, client: client}
}

type serperRequest struct {
	Q string `json:"q"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (s *Serper) Search(ctx context.Context, query string) ([]model.Snippet, error) {
	payload, err := json.Marshal(serperRequest{Q: query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	var parsed serperResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK {
		upstream := &UpstreamError{StatusCode: resp.StatusCode, Message: parsed.Message}
		if parsed.StatusCode != 0 {
			upstream.StatusCode = parsed.StatusCode
		}
		return nil, upstream
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, decodeErr)
	}

	n := min(len(parsed.Organic), s.maxResults)
	out := make([]model.Snippet, 0, n)
	for _, o := range parsed.Organic[:n] {
		out = append(out, model.Snippet{Title: o.Title, Body: o.Snippet})
	}
	return out, nil
}
