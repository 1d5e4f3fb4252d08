package exercise

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"floodex/internal/missionlog"
)

// Escalation follow-up placement: the replacement incident spawns slightly
// downstream of the expired one.
const (
	escalationLatOffset = 0.005
	escalationLngOffset = 0.004
)

// newEvent creates an active event. A ttl of 0 falls back to the exercise
// default.
func (e *Engine) newEvent(title string, category Category, loc Location, ttlSeconds int, critical bool) *Event {
	if ttlSeconds <= 0 {
		ttlSeconds = e.tuning.TTLSeconds
	}
	return &Event{
		ID:         uuid.New().String(),
		Title:      title,
		Category:   category,
		Status:     EventActive,
		Critical:   critical,
		TTLSeconds: ttlSeconds,
		Location:   loc,
		CreatedAt:  e.now(),
	}
}

func (e *Engine) addEvent(ev *Event) {
	e.events[ev.ID] = ev
	e.eventOrder = append(e.eventOrder, ev.ID)
}

// advanceTTLs walks every timed event and escalates the ones whose
// countdown ran out. Each expiring event escalates independently.
func (e *Engine) advanceTTLs(ctx context.Context) bool {
	now := e.now()
	changed := false
	// range captures the slice header up front, so follow-ups appended while
	// escalating start their countdown on the next tick.
	for _, id := range e.eventOrder {
		ev := e.events[id]
		if ev.TTLSeconds == 0 || ev.Status == EventResolved {
			continue
		}
		if ev.TTLExpiresAt == nil {
			t := ev.CreatedAt.Add(time.Duration(ev.TTLSeconds) * time.Second)
			ev.TTLExpiresAt = &t
		}
		remaining := ev.TTLExpiresAt.Sub(now).Milliseconds()
		if remaining < 0 {
			remaining = 0
		}
		ev.TTLRemainingMS = remaining
		if !ev.Expired && remaining == 0 {
			e.escalate(ctx, ev)
			changed = true
		}
	}
	return changed
}

// escalate marks the source event expired and spawns exactly one follow-up
// incident. Guarded by the expired flag, so an event escalates at most once.
func (e *Engine) escalate(ctx context.Context, ev *Event) {
	ev.Expired = true
	ev.Status = EventExpired

	// The follow-up is deliberately non-critical: the escalation penalty is
	// the full price of losing the source event.
	followUp := e.newEvent(
		"Flooding of the industrial district",
		CategoryFlood,
		Location{Lat: ev.Location.Lat + escalationLatOffset, Lng: ev.Location.Lng + escalationLngOffset},
		0,
		false,
	)
	e.addEvent(followUp)

	e.setScore(ctx, e.score-e.tuning.ExpirePenalty)

	e.appendLog(ctx, missionlog.New(e.now(), "", missionlog.ActionEscalation,
		fmt.Sprintf("%s escalated to %q.", ev.Title, followUp.Title)))
}
