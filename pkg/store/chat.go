package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/pkg/core"
)

// ErrChatUnavailable marks a send that got no reply from the server.
var ErrChatUnavailable = errors.New("language-model server unavailable")

// ChatBackend is the sentinel-returning surface the chat store talks to.
type ChatBackend interface {
	Status(ctx context.Context, baseURL string) core.AIStatus
	Chat(ctx context.Context, baseURL, model string, messages []core.ChatMessage, temperature float64, maxTokens int) *core.ChatMessage
}

// Chat owns the chat panel state: visibility, the message list, the
// loading flag, and the server connection status.
type Chat struct {
	mu       sync.RWMutex
	svc      ChatBackend
	settings SettingsSource
	history  core.RecordStore
	log      *slog.Logger

	open      bool
	messages  []core.ChatMessage
	loading   bool
	status    core.AIStatus
	historyID string
}

// NewChat creates a chat store. history may be nil to disable persistence.
func NewChat(svc ChatBackend, settings SettingsSource, history core.RecordStore, log *slog.Logger) *Chat {
	return &Chat{svc: svc, settings: settings, history: history, log: log, historyID: uuid.NewString()}
}

// TogglePanel flips the panel open/closed.
func (s *Chat) TogglePanel() {
	s.mu.Lock()
	s.open = !s.open
	s.mu.Unlock()
}

// Open reports panel visibility.
func (s *Chat) Open() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// Append adds a message to the conversation.
func (s *Chat) Append(msg core.ChatMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
}

// Clear empties the conversation and rotates the history id.
func (s *Chat) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.historyID = uuid.NewString()
	s.mu.Unlock()
}

// Messages returns a copy of the conversation.
func (s *Chat) Messages() []core.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Loading reports whether a reply is in flight.
func (s *Chat) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Status returns the current server connection status.
func (s *Chat) Status() core.AIStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Available is the derived "can chat" flag.
func (s *Chat) Available() bool {
	return s.Status().Connected
}

// CheckStatus probes the configured server and records the result.
func (s *Chat) CheckStatus(ctx context.Context) core.AIStatus {
	cfg := s.settings.Current().AI
	status := s.svc.Status(ctx, cfg.ServerURL)
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	return status
}

// Send appends the user's message, requests a reply with the configured
// model parameters, and appends the assistant's answer. The system prompt
// is prepended to the outbound history but never stored in the visible
// conversation. A missing reply marks the server disconnected.
func (s *Chat) Send(ctx context.Context, text string) error {
	cfg := s.settings.Current().AI

	user := core.ChatMessage{Role: core.RoleUser, Content: text, Timestamp: core.Timestamp()}
	s.mu.Lock()
	s.messages = append(s.messages, user)
	s.loading = true
	outbound := make([]core.ChatMessage, 0, len(s.messages)+1)
	if cfg.SystemPrompt != "" {
		outbound = append(outbound, core.ChatMessage{Role: core.RoleSystem, Content: cfg.SystemPrompt, Timestamp: user.Timestamp})
	}
	outbound = append(outbound, s.messages...)
	s.mu.Unlock()

	reply := s.svc.Chat(ctx, cfg.ServerURL, cfg.Model, outbound, cfg.Temperature, cfg.MaxTokens)

	s.mu.Lock()
	s.loading = false
	if reply == nil {
		s.status = core.AIStatus{Connected: false, Error: "no response from server"}
		s.mu.Unlock()
		return ErrChatUnavailable
	}
	s.messages = append(s.messages, *reply)
	s.status = core.AIStatus{Connected: true, Model: cfg.Model}
	s.mu.Unlock()

	if cfg.SaveChatHistory && s.history != nil {
		s.persistHistory(ctx)
	}
	return nil
}

func (s *Chat) persistHistory(ctx context.Context) {
	s.mu.RLock()
	record := core.ChatHistory{
		ID:        s.historyID,
		Messages:  append([]core.ChatMessage(nil), s.messages...),
		CreatedAt: core.Timestamp(),
	}
	s.mu.RUnlock()

	if err := s.history.Save(ctx, "chat-"+record.ID, record); err != nil && s.log != nil {
		s.log.Error("failed to persist chat history", slog.String("id", record.ID), slog.Any("error", err))
	}
}
