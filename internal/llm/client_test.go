package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerry-619/JobPrep-AI/pkg/apperr"
)

func chatServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func completionBody(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"id": "chatcmpl-1",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return b
}

func TestGenerateText_Success(t *testing.T) {
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0]["role"])

		w.Write(completionBody("  generated text  \n"))
	})

	c := NewClient(srv.URL, "test-key", "test-model", 5*time.Second)
	out, err := c.GenerateText(context.Background(), "a prompt")
	require.NoError(t, err)
	assert.Equal(t, "generated text", out)
}

func TestGenerateText_Non2xxIsUpstreamError(t *testing.T) {
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	c := NewClient(srv.URL, "test-key", "test-model", 5*time.Second)
	_, err := c.GenerateText(context.Background(), "a prompt")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUpstream, apperr.CodeOf(err))
}

func TestGenerateText_EmptyCompletionIsUpstreamError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"id":"x","choices":[]}`},
		{"blank content", `{"id":"x","choices":[{"message":{"role":"assistant","content":"   "}}]}`},
		{"api error field", `{"error":{"message":"model overloaded","type":"server_error"}}`},
		{"not json", `<html>gateway timeout</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			c := NewClient(srv.URL, "test-key", "test-model", 5*time.Second)
			_, err := c.GenerateText(context.Background(), "a prompt")
			require.Error(t, err)
			assert.Equal(t, apperr.CodeUpstream, apperr.CodeOf(err))
		})
	}
}

func TestGenerateText_TimeoutIsUpstreamError(t *testing.T) {
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write(completionBody("too late"))
	})

	c := NewClient(srv.URL, "test-key", "test-model", 50*time.Millisecond)
	_, err := c.GenerateText(context.Background(), "a prompt")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUpstream, apperr.CodeOf(err))
}

func TestGenerateText_UnreachableHostIsUpstreamError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "test-key", "test-model", time.Second)
	_, err := c.GenerateText(context.Background(), "a prompt")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUpstream, apperr.CodeOf(err))
}
