package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaudeClientIssuesOneRequestPerCompletion(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["system"], "JSON object")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-latest",
			"content": [{"type": "text", "text": "{\"NAICS_code\": \"334610\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	c := NewClaudeClient("key", "claude-3-5-sonnet-latest", srv.URL)
	out, err := c.Complete(context.Background(), ChatRequest{System: "sys", User: "Sony", N: 3, JSON: true})

	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClaudeClientUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c := NewClaudeClient("bad", "claude-3-5-sonnet-latest", srv.URL)
	_, err := c.Complete(context.Background(), ChatRequest{User: "Sony"})

	assert.ErrorIs(t, err, ErrAuthentication)
}
