package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		apiKey:  "test-key",
		model:   "gemini-test",
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSearchRequestShape(t *testing.T) {
	var captured map[string]any
	var path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Search(context.Background(), "沙丘")
	require.NoError(t, err)

	assert.Equal(t, "/models/gemini-test:generateContent", path)

	tools, ok := captured["tools"].([]any)
	require.True(t, ok, "request must enable the google_search tool")
	require.Len(t, tools, 1)
	_, hasSearch := tools[0].(map[string]any)["google_search"]
	assert.True(t, hasSearch)

	assert.NotNil(t, captured["systemInstruction"])

	contents := captured["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	text := parts[0].(map[string]any)["text"].(string)
	assert.Contains(t, text, "沙丘")
}

func TestSearchExtractsTextAndCitations(t *testing.T) {
	response := `{
		"candidates": [{
			"content": {"parts": [{"text": "Netflix 已上架。"}, {"text": "海報連結：https://image.tmdb.org/p.jpg"}]},
			"groundingMetadata": {"groundingChunks": [
				{"web": {"uri": "https://www.netflix.com/title/1", "title": "Netflix"}},
				{"web": {"uri": "", "title": "empty chunk is skipped"}},
				{"web": {"uri": "https://news.example.com/a", "title": "上架新聞"}}
			]}
		}]
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	raw, err := testClient(server.URL).Search(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, "Netflix 已上架。海報連結：https://image.tmdb.org/p.jpg", raw.Text)
	require.Len(t, raw.Citations, 2)
	assert.Equal(t, "https://www.netflix.com/title/1", raw.Citations[0].URI)
	assert.Equal(t, "上架新聞", raw.Citations[1].Title)
}

func TestSearchCredentialErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"forbidden", http.StatusForbidden, `{"error":{"code":403,"status":"PERMISSION_DENIED","message":"denied"}}`},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":401,"message":"unauthorized"}}`},
		{"invalid key", http.StatusBadRequest, `{"error":{"code":400,"status":"INVALID_ARGUMENT","message":"API key not valid"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := testClient(server.URL).Search(context.Background(), "q")
			assert.True(t, errors.Is(err, ErrCredential))
		})
	}
}

func TestSearchServerErrorIsNotCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom"}}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Search(context.Background(), "q")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCredential))
	assert.Contains(t, err.Error(), "boom")
}

func TestSearchMissingKeyFailsFast(t *testing.T) {
	client := &Client{model: "m", baseURL: "http://unused.invalid"}
	_, err := client.Search(context.Background(), "q")
	assert.True(t, errors.Is(err, ErrCredential))
}
