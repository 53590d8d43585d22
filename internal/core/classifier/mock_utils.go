package classifier

import (
	"context"

	"github.com/agenthands/naics/internal/llm"
)

// MockChatClient replays Responses in order, one entry per Complete call.
type MockChatClient struct {
	Responses [][]string
	Err       error
	Requests  []llm.ChatRequest
}

func (m *MockChatClient) Complete(ctx context.Context, req llm.ChatRequest) ([]string, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) == 0 {
		return nil, llm.ErrNoChoices
	}
	resp := m.Responses[0]
	m.Responses = m.Responses[1:]
	return resp, nil
}
