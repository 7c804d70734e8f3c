package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/pkg/core"
)

type flakyAI struct{ broken bool }

func (c *flakyAI) Status(_ context.Context, _ string) (core.AIStatus, error) {
	if c.broken {
		return core.AIStatus{}, errors.New("connection refused")
	}
	return core.AIStatus{Connected: true, Model: "llama3"}, nil
}

func (c *flakyAI) Chat(_ context.Context, _, _ string, _ []core.ChatMessage, _ float64, _ int) (core.ChatMessage, error) {
	if c.broken {
		return core.ChatMessage{}, errors.New("connection refused")
	}
	return core.ChatMessage{Role: core.RoleAssistant, Content: "hi", Timestamp: core.Timestamp()}, nil
}

func TestAIStatusSentinel(t *testing.T) {
	ai := &flakyAI{}
	svc := NewAI(ai, nil)
	ctx := context.Background()

	status := svc.Status(ctx, "http://localhost:11434")
	assert.True(t, status.Connected)
	assert.Equal(t, "llama3", status.Model)

	ai.broken = true
	status = svc.Status(ctx, "http://localhost:11434")
	assert.False(t, status.Connected)
	assert.Equal(t, "connection refused", status.Error)
}

func TestAIChatSentinel(t *testing.T) {
	ai := &flakyAI{}
	svc := NewAI(ai, nil)
	ctx := context.Background()

	reply := svc.Chat(ctx, "http://localhost:11434", "llama3", nil, 0.7, 500)
	require.NotNil(t, reply)
	assert.Equal(t, core.RoleAssistant, reply.Role)

	ai.broken = true
	assert.Nil(t, svc.Chat(ctx, "http://localhost:11434", "llama3", nil, 0.7, 500))
}

type flakyWeather struct{ broken bool }

func (c *flakyWeather) Current(context.Context, string, string) (core.WeatherData, error) {
	if c.broken {
		return core.WeatherData{}, errors.New("timeout")
	}
	return core.WeatherData{Location: "Lisbon, Portugal", TempCelsius: 21}, nil
}

func (c *flakyWeather) DetectLocation(context.Context) (string, error) {
	if c.broken {
		return "", errors.New("timeout")
	}
	return "Lisbon, Portugal", nil
}

func (c *flakyWeather) Context(context.Context, string, string) (core.JournalContext, error) {
	if c.broken {
		return core.JournalContext{}, errors.New("timeout")
	}
	return core.JournalContext{DayOfWeek: "Monday", TimeOfDay: "morning"}, nil
}

func TestWeatherSentinels(t *testing.T) {
	w := &flakyWeather{}
	svc := NewWeather(w, nil)
	ctx := context.Background()

	require.NotNil(t, svc.Current(ctx, "key", "Lisbon"))
	assert.Equal(t, "Lisbon, Portugal", svc.Detect(ctx))
	require.NotNil(t, svc.Context(ctx, "key", "Lisbon"))

	w.broken = true
	assert.Nil(t, svc.Current(ctx, "key", "Lisbon"))
	assert.Empty(t, svc.Detect(ctx))
	assert.Nil(t, svc.Context(ctx, "key", "Lisbon"))
}

type flakyPublisher struct{ broken bool }

func (c *flakyPublisher) Validate(context.Context, string, core.Entry) (core.ValidationResult, error) {
	if c.broken {
		return core.ValidationResult{}, errors.New("api down")
	}
	return core.ValidationResult{Valid: true, ClarityScore: 1.0}, nil
}

func (c *flakyPublisher) Publish(context.Context, string, core.Entry) (core.PublishResult, error) {
	if c.broken {
		return core.PublishResult{}, errors.New("api down")
	}
	return core.PublishResult{Success: true, EntryID: "e1"}, nil
}

func (c *flakyPublisher) Stats(context.Context, string, string) (core.ChainStats, error) {
	if c.broken {
		return core.ChainStats{}, errors.New("api down")
	}
	return core.ChainStats{TotalEntries: 3}, nil
}

func (c *flakyPublisher) CheckConnection(context.Context, string) (bool, error) {
	if c.broken {
		return false, errors.New("api down")
	}
	return true, nil
}

func TestPublishSentinels(t *testing.T) {
	p := &flakyPublisher{}
	svc := NewPublish(p, nil)
	ctx := context.Background()
	entry := core.Entry{Author: "me", Content: "body", Intent: "journal entry"}

	result := svc.Validate(ctx, "http://chain", entry)
	require.NotNil(t, result)
	assert.True(t, result.Valid)

	published := svc.PublishEntry(ctx, "http://chain", entry)
	assert.True(t, published.Success)

	stats := svc.Stats(ctx, "http://chain", "me")
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.TotalEntries)

	assert.True(t, svc.CheckConnection(ctx, "http://chain"))

	p.broken = true
	assert.Nil(t, svc.Validate(ctx, "http://chain", entry))

	published = svc.PublishEntry(ctx, "http://chain", entry)
	assert.False(t, published.Success)
	assert.Equal(t, "api down", published.Error)

	assert.Nil(t, svc.Stats(ctx, "http://chain", "me"))
	assert.False(t, svc.CheckConnection(ctx, "http://chain"))
}
