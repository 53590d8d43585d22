package core

import (
	"context"

	"github.com/agenthands/naics/internal/core/model"
)

type classifyCall struct {
	Company string
	Context string
}

type MockClassifier struct {
	ReplyQueue [][]model.Reply
	ErrQueue   []error
	Calls      []classifyCall
}

func (m *MockClassifier) Classify(ctx context.Context, company, searchContext string) ([]model.Reply, error) {
	m.Calls = append(m.Calls, classifyCall{Company: company, Context: searchContext})
	if len(m.ErrQueue) > 0 {
		err := m.ErrQueue[0]
		m.ErrQueue = m.ErrQueue[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(m.ReplyQueue) == 0 {
		return nil, nil
	}
	resp := m.ReplyQueue[0]
	m.ReplyQueue = m.ReplyQueue[1:]
	return resp, nil
}

type MockSearch struct {
	Snippets []model.Snippet
	Err      error
	Queries  []string
}

func (m *MockSearch) Search(ctx context.Context, query string) ([]model.Snippet, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Snippets, nil
}

func final(code, description string) model.Reply {
	return model.FinalGuess{Guess: model.RawGuess{Code: code, Description: description}}
}
