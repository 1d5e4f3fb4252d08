package exercise

import "floodex/internal/missionlog"

// Snapshot returns a deep copy of the current state. Two calls without an
// intervening mutation yield identical snapshots.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Events:          make([]Event, 0, len(e.eventOrder)),
		Resources:       make([]Resource, 0, len(e.resourceOrder)),
		Tasks:           make([]Task, 0, len(e.taskOrder)),
		MissionLog:      append([]missionlog.Entry(nil), e.history...),
		ResilienceScore: e.score,
		MapCenter:       e.mapCenter,
		Tick:            e.tick,
	}
	for _, id := range e.eventOrder {
		ev := *e.events[id]
		if ev.TTLExpiresAt != nil {
			t := *ev.TTLExpiresAt
			ev.TTLExpiresAt = &t
		}
		snap.Events = append(snap.Events, ev)
	}
	for _, id := range e.resourceOrder {
		r := *e.resources[id]
		if r.LockedUntil != nil {
			t := *r.LockedUntil
			r.LockedUntil = &t
		}
		snap.Resources = append(snap.Resources, r)
	}
	for _, id := range e.taskOrder {
		snap.Tasks = append(snap.Tasks, *e.tasks[id])
	}
	return snap
}
