package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Client_Complete(t *testing.T) {
	t.Run("should send system and user messages and return the first choice", func(t *testing.T) {
		var got chatRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "{\"edits\": []}"}}]}`))
		}))
		defer srv.Close()

		client := NewWithConfig(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-test"})
		text, err := client.Complete(context.Background(), "be strict", "fill regions")
		require.NoError(t, err)
		assert.Equal(t, `{"edits": []}`, text)

		assert.Equal(t, "gpt-test", got.Model)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, message{Role: "system", Content: "be strict"}, got.Messages[0])
		assert.Equal(t, message{Role: "user", Content: "fill regions"}, got.Messages[1])
	})

	t.Run("should surface non-200 responses with a body snippet", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"message": "rate limited"}}`))
		}))
		defer srv.Close()

		client := NewWithConfig(Config{APIKey: "k", BaseURL: srv.URL})
		_, err := client.Complete(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upstream 429")
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("should fail on a response without choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		client := NewWithConfig(Config{APIKey: "k", BaseURL: srv.URL})
		_, err := client.Complete(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no choices")
	})

	t.Run("should fail fast without an API key", func(t *testing.T) {
		client := NewWithConfig(Config{})
		_, err := client.Complete(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})

	t.Run("should fill zero config fields with defaults", func(t *testing.T) {
		client := NewWithConfig(Config{APIKey: "k"})
		def := DefaultConfig("k")
		assert.Equal(t, def.BaseURL, client.cfg.BaseURL)
		assert.Equal(t, def.Model, client.cfg.Model)
		assert.Equal(t, def.Timeout, client.cfg.Timeout)
	})
}
