package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/naics/internal/core/model"
)

func TestSerperSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "serper-key", r.Header.Get("X-API-KEY"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme Corp industry", body["q"])

		_, _ = w.Write([]byte(`{"organic": [
			{"title": "Acme Corp", "snippet": "Acme makes anvils."},
			{"title": "Acme - Wikipedia", "snippet": "Founded in 1949."},
			{"title": "Acme careers"},
			{"title": "Unrelated", "snippet": "ignored"}
		]}`))
	}))
	defer srv.Close()

	s := NewSerper(srv.URL, "serper-key", 3, srv.Client())
	got, err := s.Search(context.Background(), "Acme Corp industry")

	require.NoError(t, err)
	assert.Equal(t, []model.Snippet{
		{Title: "Acme Corp", Body: "Acme makes anvils."},
		{Title: "Acme - Wikipedia", Body: "Founded in 1949."},
		{Title: "Acme careers", Body: ""},
	}, got)
}

func TestSerperUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"statusCode": 403, "message": "Unauthorized."}`))
	}))
	defer srv.Close()

	s := NewSerper(srv.URL, "bad", 3, srv.Client())
	got, err := s.Search(context.Background(), "Acme")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnavailable)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 403, upstream.StatusCode)
	assert.Equal(t, "Unauthorized.", upstream.Message)
}

func TestSerperUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewSerper(url, "k", 3, nil).Search(context.Background(), "Acme")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestJoinBodiesAndPreview(t *testing.T) {
	snippets := []model.Snippet{{Title: "a", Body: "first"}, {Title: "b", Body: "second"}}

	assert.Equal(t, "first second", JoinBodies(snippets))
	assert.Equal(t, "", JoinBodies(nil))
	assert.Equal(t, "fir...", Preview("first", 3))
	assert.Equal(t, "first...", Preview("first", 200))
	assert.Equal(t, "日本...", Preview("日本語", 2))
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     any
	}{
		{"serper", &Serper{}},
		{"DuckDuckGo", &DuckDuckGo{}},
		{"none", None{}},
	}
	for _, tt := range tests {
		p, err := NewProvider(configFor(tt.provider))
		require.NoError(t, err)
		assert.IsType(t, tt.want, p)
	}

	_, err := NewProvider(configFor("bing"))
	assert.Error(t, err)
}

func TestNoneSearch(t *testing.T) {
	got, err := None{}.Search(context.Background(), "anything")

	assert.NoError(t, err)
	assert.Empty(t, got)
}
