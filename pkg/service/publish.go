package service

import (
	"context"
	"log/slog"

	"github.com/daybook-app/daybook/pkg/core"
)

// Publish adapts a core.Publisher to sentinel semantics.
type Publish struct {
	client core.Publisher
	log    *slog.Logger
}

// NewPublish creates the publishing adapter.
func NewPublish(client core.Publisher, log *slog.Logger) *Publish {
	return &Publish{client: client, log: log}
}

// Validate audits an entry before publishing, returning nil on failure.
func (s *Publish) Validate(ctx context.Context, apiURL string, e core.Entry) *core.ValidationResult {
	result, err := s.client.Validate(ctx, apiURL, e)
	if err != nil {
		if s.log != nil {
			s.log.Error("failed to validate entry", slog.String("author", e.Author), slog.Any("error", err))
		}
		return nil
	}
	return &result
}

// PublishEntry publishes an entry. Failures come back as an unsuccessful
// result carrying the error text, never as a raised error.
func (s *Publish) PublishEntry(ctx context.Context, apiURL string, e core.Entry) core.PublishResult {
	result, err := s.client.Publish(ctx, apiURL, e)
	if err != nil {
		if s.log != nil {
			s.log.Error("failed to publish entry", slog.String("author", e.Author), slog.Any("error", err))
		}
		return core.PublishResult{Success: false, Error: err.Error()}
	}
	return result
}

// Stats fetches author statistics, returning nil on failure.
func (s *Publish) Stats(ctx context.Context, apiURL, authorID string) *core.ChainStats {
	stats, err := s.client.Stats(ctx, apiURL, authorID)
	if err != nil {
		if s.log != nil {
			s.log.Error("failed to fetch author stats", slog.String("authorId", authorID), slog.Any("error", err))
		}
		return nil
	}
	return &stats
}

// CheckConnection reports whether the publishing API is reachable.
func (s *Publish) CheckConnection(ctx context.Context, apiURL string) bool {
	ok, err := s.client.CheckConnection(ctx, apiURL)
	if err != nil {
		if s.log != nil {
			s.log.Error("publishing API connection check failed", slog.String("url", apiURL), slog.Any("error", err))
		}
		return false
	}
	return ok
}
