package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/pkg/core"
)

func TestStatusConnected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models":[{"name":"llama3.2:3b"},{"name":"mistral:7b"}]}`))
	}))
	defer srv.Close()

	status, err := New().Status(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "llama3.2:3b", status.Model)
	assert.Empty(t, status.Error)
}

func TestStatusUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	status, err := New().Status(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NotEmpty(t, status.Error)
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2:3b", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 0.7, req.Options.Temperature)
		assert.Equal(t, 500, req.Options.NumPredict)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":{"role":"assistant","content":"Hello there."}}`))
	}))
	defer srv.Close()

	history := []core.ChatMessage{
		{Role: core.RoleSystem, Content: "You are a journaling assistant."},
		{Role: core.RoleUser, Content: "Hi"},
	}
	reply, err := New().Chat(context.Background(), srv.URL, "llama3.2:3b", history, 0.7, 500)
	require.NoError(t, err)
	assert.Equal(t, core.RoleAssistant, reply.Role)
	assert.Equal(t, "Hello there.", reply.Content)
	assert.NotEmpty(t, reply.Timestamp)
}

func TestChatServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Chat(context.Background(), srv.URL, "missing", nil, 0.7, 500)
	assert.Error(t, err)
}
