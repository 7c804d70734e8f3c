package weatherapi

import (
	"context"
	"math"
	"time"

	"github.com/daybook-app/daybook/pkg/core"
)

// Synodic month length in days, anchored to a known new moon.
const (
	lunarCycleDays = 29.53059
	newMoonAnchor  = 10.8389
)

// Context assembles the journal context: weather if configured, plus day
// of week, time of day, and moon phase. A weather fetch failure degrades
// to context without weather rather than failing the whole call.
func (c *Client) Context(ctx context.Context, apiKey, location string) (core.JournalContext, error) {
	now := c.now().UTC()
	jc := core.JournalContext{
		DayOfWeek: now.Weekday().String(),
		TimeOfDay: timeOfDay(now),
		MoonPhase: moonPhase(now),
	}

	if apiKey != "" && location != "" {
		if w, err := c.Current(ctx, apiKey, location); err == nil {
			jc.Weather = &w
		}
	}
	return jc, nil
}

func timeOfDay(t time.Time) string {
	switch hour := t.Hour(); {
	case hour >= 5 && hour <= 11:
		return "morning"
	case hour >= 12 && hour <= 16:
		return "afternoon"
	case hour >= 17 && hour <= 20:
		return "evening"
	default:
		return "night"
	}
}

func moonPhase(t time.Time) string {
	days := math.Mod(float64(t.Unix())/86400.0-newMoonAnchor, lunarCycleDays)
	if days < 0 {
		days += lunarCycleDays
	}
	switch {
	case days < 1.85:
		return "New Moon"
	case days < 5.53:
		return "Waxing Crescent"
	case days < 9.22:
		return "First Quarter"
	case days < 12.91:
		return "Waxing Gibbous"
	case days < 16.61:
		return "Full Moon"
	case days < 20.30:
		return "Waning Gibbous"
	case days < 23.99:
		return "Last Quarter"
	case days < 27.68:
		return "Waning Crescent"
	default:
		return "New Moon"
	}
}
