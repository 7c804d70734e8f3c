package service

import (
	"context"
	"log/slog"

	"github.com/daybook-app/daybook/pkg/core"
)

// AI adapts a core.AIClient to sentinel semantics.
type AI struct {
	client core.AIClient
	log    *slog.Logger
}

// NewAI creates the AI adapter.
func NewAI(client core.AIClient, log *slog.Logger) *AI {
	return &AI{client: client, log: log}
}

// Status probes the language-model server. Any failure is folded into a
// disconnected status carrying the error text.
func (s *AI) Status(ctx context.Context, baseURL string) core.AIStatus {
	status, err := s.client.Status(ctx, baseURL)
	if err != nil {
		if s.log != nil {
			s.log.Error("failed to check AI server status", slog.String("url", baseURL), slog.Any("error", err))
		}
		return core.AIStatus{Connected: false, Error: err.Error()}
	}
	return status
}

// Chat sends a message history, returning nil on failure.
func (s *AI) Chat(ctx context.Context, baseURL, model string, messages []core.ChatMessage, temperature float64, maxTokens int) *core.ChatMessage {
	reply, err := s.client.Chat(ctx, baseURL, model, messages, temperature, maxTokens)
	if err != nil {
		if s.log != nil {
			s.log.Error("failed to send chat message",
				slog.String("url", baseURL),
				slog.String("model", model),
				slog.Int("messageCount", len(messages)),
				slog.Any("error", err))
		}
		return nil
	}
	return &reply
}
