// Package ollama talks to a local Ollama server for chat completions.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/daybook-app/daybook/pkg/core"
)

// Client implements core.AIClient against the Ollama HTTP API. The server
// URL is passed per call because it lives in user settings and can change
// at runtime.
type Client struct {
	http *http.Client
}

// New creates a client with a 30 second request timeout.
func New() *Client {
	return &Client{http: &http.Client{Timeout: 30 * time.Second}}
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Status probes the server and reports the first installed model. A
// connection failure comes back in the status, not as an error.
func (c *Client) Status(ctx context.Context, baseURL string) (core.AIStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL(baseURL, "/api/tags"), nil)
	if err != nil {
		return core.AIStatus{}, fmt.Errorf("failed to build status request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return core.AIStatus{Error: "cannot reach Ollama server"}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.AIStatus{Error: fmt.Sprintf("Ollama server returned %d", resp.StatusCode)}, nil
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return core.AIStatus{Error: "invalid response from Ollama server"}, nil
	}

	status := core.AIStatus{Connected: true}
	if len(tags.Models) > 0 {
		status.Model = tags.Models[0].Name
	}
	return status, nil
}

type chatRequest struct {
	Model    string      `json:"model"`
	Messages []wireMsg   `json:"messages"`
	Stream   bool        `json:"stream"`
	Options  chatOptions `json:"options"`
}

type wireMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type chatResponse struct {
	Message wireMsg `json:"message"`
}

// Chat sends the conversation and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, baseURL, model string, messages []core.ChatMessage, temperature float64, maxTokens int) (core.ChatMessage, error) {
	body := chatRequest{
		Model:  model,
		Stream: false,
		Options: chatOptions{
			Temperature: temperature,
			NumPredict:  maxTokens,
		},
	}
	for _, m := range messages {
		body.Messages = append(body.Messages, wireMsg{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return core.ChatMessage{}, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL(baseURL, "/api/chat"), bytes.NewReader(payload))
	if err != nil {
		return core.ChatMessage{}, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return core.ChatMessage{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.ChatMessage{}, fmt.Errorf("Ollama server returned %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return core.ChatMessage{}, fmt.Errorf("failed to decode chat response: %w", err)
	}

	return core.ChatMessage{
		Role:      core.RoleAssistant,
		Content:   out.Message.Content,
		Timestamp: core.Timestamp(),
	}, nil
}

func apiURL(baseURL, path string) string {
	return strings.TrimSuffix(baseURL, "/") + path
}

var _ core.AIClient = (*Client)(nil)
