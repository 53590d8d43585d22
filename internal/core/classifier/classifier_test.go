package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/naics/internal/config"
	"github.com/agenthands/naics/internal/core/model"
	"github.com/agenthands/naics/internal/llm"
)

func TestClassifyFinalGuesses(t *testing.T) {
	mockLLM := &MockChatClient{
		Responses: [][]string{{
			`{"NAICS_code": "334610", "description": "Manufacturing and Reproducing Magnetic and Optical Media"}`,
			`{"NAICS code": "334310", "description": "Audio and Video Equipment Manufacturing"}`,
			"```json\n{\"naics_code\": 512110, \"description\": \"Motion Picture and Video Production\"}\n```",
		}},
	}
	c := NewClassifier(mockLLM, config.Default().LLM, nil)

	replies, err := c.Classify(context.Background(), "Sony", "")

	require.NoError(t, err)
	assert.Equal(t, []model.Reply{
		model.FinalGuess{Guess: model.RawGuess{Code: "334610", Description: "Manufacturing and Reproducing Magnetic and Optical Media"}},
		model.FinalGuess{Guess: model.RawGuess{Code: "334310", Description: "Audio and Video Equipment Manufacturing"}},
		model.FinalGuess{Guess: model.RawGuess{Code: "512110", Description: "Motion Picture and Video Production"}},
	}, replies)

	require.Len(t, mockLLM.Requests, 1)
	req := mockLLM.Requests[0]
	assert.Equal(t, 3, req.N)
	assert.Equal(t, 300, req.MaxTokens)
	assert.InDelta(t, 0.001, req.Temperature, 1e-9)
	assert.True(t, req.JSON)
	assert.Contains(t, req.User, "Company Name: Sony")
	assert.NotContains(t, req.User, "Context:")
	assert.Contains(t, req.System, "search_api")
}

func TestClassifyAppendsContext(t *testing.T) {
	mockLLM := &MockChatClient{Responses: [][]string{{`{"NAICS_code": "541511", "description": "x"}`}}}
	c := NewClassifier(mockLLM, config.Default().LLM, nil)

	_, err := c.Classify(context.Background(), "Acme", "Acme builds custom software.")

	require.NoError(t, err)
	assert.Contains(t, mockLLM.Requests[0].User, "Company Name: Acme\n\nContext: Acme builds custom software.")
}

func TestClassifyNeedsContext(t *testing.T) {
	mockLLM := &MockChatClient{Responses: [][]string{{
		`{"search_api": "Acme Holdings LLC business"}`,
		`{"NAICS_code": "551112", "description": "Offices of Other Holding Companies"}`,
	}}}
	c := NewClassifier(mockLLM, config.Default().LLM, nil)

	replies, err := c.Classify(context.Background(), "Acme Holdings", "")

	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, model.NeedsContext{Query: "Acme Holdings LLC business"}, replies[0])
	assert.IsType(t, model.FinalGuess{}, replies[1])
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name string
		mock *MockChatClient
		want error
	}{
		{
			name: "authentication",
			mock: &MockChatClient{Err: llm.ErrAuthentication},
			want: llm.ErrAuthentication,
		},
		{
			name: "no choices",
			mock: &MockChatClient{Err: llm.ErrNoChoices},
			want: ErrMalformedResponse,
		},
		{
			name: "not json",
			mock: &MockChatClient{Responses: [][]string{{`{"NAICS_code": "1"}`, "I think it is retail."}}},
			want: ErrMalformedResponse,
		},
		{
			name: "code of wrong type",
			mock: &MockChatClient{Responses: [][]string{{`{"NAICS_code": ["1", "2"]}`}}},
			want: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(tt.mock, config.Default().LLM, nil)

			replies, err := c.Classify(context.Background(), "Sony", "")

			assert.Nil(t, replies)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClassifyPassesTransportErrors(t *testing.T) {
	boom := errors.New("connection reset")
	c := NewClassifier(&MockChatClient{Err: boom}, config.Default().LLM, nil)

	_, err := c.Classify(context.Background(), "Sony", "")

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeReplyMissingCode(t *testing.T) {
	reply, err := DecodeReply(`{"description": "no code here"}`)

	require.NoError(t, err)
	assert.Equal(t, model.FinalGuess{Guess: model.RawGuess{Description: "no code here"}}, reply)
}

func TestDecodeReplyBlankSearchIsFinal(t *testing.T) {
	reply, err := DecodeReply(`{"search_api": "  ", "NAICS_code": "445110"}`)

	require.NoError(t, err)
	assert.Equal(t, model.FinalGuess{Guess: model.RawGuess{Code: "445110"}}, reply)
}
