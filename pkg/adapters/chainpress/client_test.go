package chainpress

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

func testEntry() core.Entry {
	return core.Entry{
		Author:       "author-1",
		Content:      "Today I planted tomatoes.",
		Intent:       "share a journal entry",
		Title:        "Garden notes",
		Monetization: "free",
		Visibility:   "public",
		CreatedAt:    core.Timestamp(),
	}
}

func TestValidateValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entry/validate", r.URL.Path)

		var req entryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "author-1", req.Author)
		assert.Equal(t, "Garden notes", req.Metadata["title"])

		w.Write([]byte(`{
			"overall_decision": "VALID",
			"llm_validation": {"status": "ok", "validation": {"paraphrase": "shares gardening progress", "intent_match": true}}
		}`))
	}))
	defer srv.Close()

	result, err := New().Validate(context.Background(), srv.URL, testEntry())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 1.0, result.ClarityScore)
	assert.Equal(t, "shares gardening progress", result.IntentDetected)
}

func TestValidateWithIssues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"overall_decision": "INVALID",
			"symbolic_validation": {"valid": false, "issues": ["content too short"]}
		}`))
	}))
	defer srv.Close()

	result, err := New().Validate(context.Background(), srv.URL, testEntry())
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, 0.4, result.ClarityScore)
	assert.Equal(t, []string{"content too short"}, result.Warnings)
	// Falls back to the submitted intent without a paraphrase.
	assert.Equal(t, "share a journal entry", result.IntentDetected)
}

func TestPublishSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entry", r.URL.Path)
		w.Write([]byte(`{
			"status": "success",
			"entry": {"timestamp": "2026-03-04T10:00:00Z"},
			"block_hash": "abc123"
		}`))
	}))
	defer srv.Close()

	result, err := New().Publish(context.Background(), srv.URL, testEntry())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "2026-03-04T10:00:00Z", result.EntryID)
	assert.Equal(t, "abc123", result.BlockHash)
	assert.Contains(t, result.TransactionURL, "/entries/author/author-1")
}

func TestPublishAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "node unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	result, err := New().Publish(context.Background(), srv.URL, testEntry())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "503")
}

func TestStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entries/author/author-1", r.URL.Path)
		w.Write([]byte(`{"author": "author-1", "count": 12}`))
	}))
	defer srv.Close()

	stats, err := New().Stats(context.Background(), srv.URL, "author-1")
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalEntries)
	assert.Zero(t, stats.TotalEarnings)
}

func TestStatsUnknownAuthor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	stats, err := New().Stats(context.Background(), srv.URL, "nobody")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalEntries)
}

func TestCheckConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stats", r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ok, err := New().CheckConnection(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, ok)

	srv.Close()
	ok, err = New().CheckConnection(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, ok)
}
