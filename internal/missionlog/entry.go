// Mission log entry model shared by all sinks
package missionlog

import (
	"time"

	"github.com/google/uuid"
)

// Action classifies a mission log entry.
type Action string

// Action kinds. RESSOURCE keeps the spelling used by the exercise material
// and the recorded logs; renaming it would break log replay.
const (
	ActionScenario   Action = "SCENARIO"
	ActionMarker     Action = "MARKER"
	ActionTask       Action = "TASK"
	ActionResolve    Action = "RESOLVE"
	ActionResource   Action = "RESSOURCE"
	ActionFailure    Action = "FAILURE"
	ActionEscalation Action = "ESCALATION"
)

// Entry is one immutable mission log record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Action    Action    `json:"action"`
	Details   string    `json:"details"`
}

// New builds an entry stamped with ts. An empty user is attributed to the
// system actor.
func New(ts time.Time, user string, action Action, details string) Entry {
	if user == "" {
		user = "System"
	}
	return Entry{
		ID:        uuid.New().String(),
		Timestamp: ts,
		User:      user,
		Action:    action,
		Details:   details,
	}
}

// ScoreSample is one resilience score observation emitted per tick in which
// the score moved.
type ScoreSample struct {
	ExerciseID     string    `json:"exercise_id"`
	Score          float64   `json:"score"`
	ActiveCritical int       `json:"active_critical"`
	Timestamp      time.Time `json:"ts"`
}
