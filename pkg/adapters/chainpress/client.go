// Package chainpress publishes journal entries to a NatLangChain node.
package chainpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daybook-app/daybook/pkg/core"
)

// Client implements core.Publisher against the NatLangChain HTTP API. The
// node URL is passed per call because it lives in user settings.
type Client struct {
	http *http.Client
}

// New creates a client with a 30 second request timeout.
func New() *Client {
	return &Client{http: &http.Client{Timeout: 30 * time.Second}}
}

// entryRequest is the minimal payload the chain accepts. Everything else
// rides along in the metadata bag.
type entryRequest struct {
	Content  string         `json:"content"`
	Author   string         `json:"author"`
	Intent   string         `json:"intent"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func buildRequest(e core.Entry) entryRequest {
	meta := map[string]any{
		"monetization": e.Monetization,
		"visibility":   e.Visibility,
		"created_at":   e.CreatedAt,
	}
	if e.Title != "" {
		meta["title"] = e.Title
	}
	if len(e.Tags) > 0 {
		meta["tags"] = e.Tags
	}
	if e.Price > 0 {
		meta["price"] = e.Price
	}
	if e.Context != nil {
		meta["context"] = e.Context
	}
	return entryRequest{
		Content:  e.Content,
		Author:   e.Author,
		Intent:   e.Intent,
		Metadata: meta,
	}
}

type validationResponse struct {
	SymbolicValidation *struct {
		Valid  bool     `json:"valid"`
		Issues []string `json:"issues"`
	} `json:"symbolic_validation"`
	LLMValidation *struct {
		Status     string `json:"status"`
		Validation *struct {
			Paraphrase  string   `json:"paraphrase"`
			IntentMatch bool     `json:"intent_match"`
			Ambiguities []string `json:"ambiguities"`
		} `json:"validation"`
	} `json:"llm_validation"`
	OverallDecision string `json:"overall_decision"`
}

// Validate audits an entry against the chain's validators before
// publishing.
func (c *Client) Validate(ctx context.Context, apiURL string, e core.Entry) (core.ValidationResult, error) {
	var out validationResponse
	if err := c.post(ctx, endpoint(apiURL, "/entry/validate"), buildRequest(e), &out); err != nil {
		return core.ValidationResult{}, err
	}

	result := core.ValidationResult{
		Valid:          out.OverallDecision == "VALID",
		IntentDetected: e.Intent,
	}
	if out.LLMValidation != nil && out.LLMValidation.Validation != nil {
		if p := out.LLMValidation.Validation.Paraphrase; p != "" {
			result.IntentDetected = p
		}
		result.Suggestions = out.LLMValidation.Validation.Ambiguities
	}
	if out.SymbolicValidation != nil {
		result.Warnings = out.SymbolicValidation.Issues
	}

	// The chain has no numeric score, so derive one from the verdict.
	switch {
	case result.Valid:
		result.ClarityScore = 1.0
	case len(result.Warnings) == 0:
		result.ClarityScore = 0.7
	default:
		result.ClarityScore = 0.4
	}
	return result, nil
}

type publishResponse struct {
	Status string `json:"status"`
	Entry  *struct {
		Timestamp string `json:"timestamp"`
	} `json:"entry"`
	BlockHash string `json:"block_hash"`
	Error     string `json:"error"`
}

// Publish submits an entry. Rejections from the API come back as an
// unsuccessful result, not an error.
func (c *Client) Publish(ctx context.Context, apiURL string, e core.Entry) (core.PublishResult, error) {
	payload, err := json.Marshal(buildRequest(e))
	if err != nil {
		return core.PublishResult{}, fmt.Errorf("failed to encode entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(apiURL, "/entry"), bytes.NewReader(payload))
	if err != nil {
		return core.PublishResult{}, fmt.Errorf("failed to build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return core.PublishResult{}, fmt.Errorf("publish request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return core.PublishResult{
			Success: false,
			Error:   fmt.Sprintf("API error (%d): %s", resp.StatusCode, body),
		}, nil
	}

	var out publishResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return core.PublishResult{}, fmt.Errorf("failed to parse publish response: %w", err)
	}

	result := core.PublishResult{
		Success:   out.Status == "success",
		BlockHash: out.BlockHash,
		Error:     out.Error,
	}
	if out.Entry != nil && out.Entry.Timestamp != "" {
		// The chain keys entries by timestamp, not a dedicated ID.
		result.EntryID = out.Entry.Timestamp
		result.TransactionURL = endpoint(apiURL, "/entries/author/"+e.Author)
	}
	return result, nil
}

type authorEntriesResponse struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// Stats fetches an author's entry count. The chain tracks nothing else,
// so earnings, subscribers, and views stay zero.
func (c *Client) Stats(ctx context.Context, apiURL, authorID string) (core.ChainStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint(apiURL, "/entries/author/"+authorID), nil)
	if err != nil {
		return core.ChainStats{}, fmt.Errorf("failed to build stats request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return core.ChainStats{}, fmt.Errorf("stats request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Unknown author, empty stats.
		return core.ChainStats{}, nil
	}

	var out authorEntriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return core.ChainStats{}, fmt.Errorf("failed to parse stats response: %w", err)
	}
	return core.ChainStats{TotalEntries: out.Count}, nil
}

// CheckConnection reports whether the chain node answers its stats
// endpoint. Unreachable nodes yield (false, nil).
func (c *Client) CheckConnection(ctx context.Context, apiURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint(apiURL, "/stats"), nil)
	if err != nil {
		return false, fmt.Errorf("failed to build connection request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, nil
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299, nil
}

func (c *Client) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, text)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func endpoint(apiURL, path string) string {
	return strings.TrimSuffix(apiURL, "/") + path
}

var _ core.Publisher = (*Client)(nil)
