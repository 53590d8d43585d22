package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	client := anthropic.NewClient(apiKey, opts...)

	return &ClaudeClient{
		client: client,
		model:  model,
	}
}

// Complete issues one Messages request per requested completion; the API has no n parameter.
func (c *ClaudeClient) Complete(ctx context.Context, req ChatRequest) ([]string, error) {
	system := req.System
	if req.JSON {
		system += "\nRespond with a single JSON object and nothing else."
	}
	temperature := req.Temperature
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	out := make([]string, 0, req.completions())
	for i := 0; i < req.completions(); i++ {
		resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
			Model:  anthropic.Model(c.model),
			System: system,
			Messages: []anthropic.Message{
				{
					Role: anthropic.RoleUser,
					Content: []anthropic.MessageContent{
						anthropic.NewTextMessageContent(req.User),
					},
				},
			},
			MaxTokens:   maxTokens,
			Temperature: &temperature,
		})
		if err != nil {
			return nil, mapClaudeError(err)
		}

		if len(resp.Content) > 0 && resp.Content[0].Text != nil {
			out = append(out, *resp.Content[0].Text)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoChoices
	}
	return out, nil
}

func mapClaudeError(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) && apiErr.IsAuthenticationErr() {
		return fmt.Errorf("%w: %s", ErrAuthentication, apiErr.Message)
	}
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %v", ErrAuthentication, reqErr.Err)
	}
	return fmt.Errorf("claude messages: %w", err)
}
