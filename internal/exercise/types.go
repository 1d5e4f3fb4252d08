// Data model for the mission state engine
package exercise

import (
	"time"

	"floodex/internal/missionlog"
)

// Category classifies an incident on the map.
type Category string

const (
	CategoryFire           Category = "fire"
	CategoryEngineering    Category = "engineering-unit"
	CategoryMedical        Category = "medical"
	CategoryCommand        Category = "command"
	CategoryFlood          Category = "flood"
	CategoryPowerOutage    Category = "power-outage"
	CategoryInfrastructure Category = "critical-infrastructure"
)

// EventStatus is the lifecycle state of an incident. Transitions only move
// forward: active -> in_progress -> resolved, or active -> expired.
type EventStatus string

const (
	EventActive     EventStatus = "active"
	EventInProgress EventStatus = "in_progress"
	EventResolved   EventStatus = "resolved"
	EventExpired    EventStatus = "expired"
)

// TaskStatus is the workflow state of a response task. Only "done" carries
// side effects; other values are reserved for future workflow states.
type TaskStatus string

const (
	TaskTodo TaskStatus = "todo"
	TaskDone TaskStatus = "done"
)

// Location is a map coordinate.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event is an incident on the exercise map. Events are never deleted; they
// remain as history once resolved or expired.
type Event struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Category       Category    `json:"category"`
	Status         EventStatus `json:"status"`
	Critical       bool        `json:"critical"`
	TTLSeconds     int         `json:"ttlSeconds,omitempty"`
	Location       Location    `json:"location"`
	CreatedAt      time.Time   `json:"createdAt"`
	TTLExpiresAt   *time.Time  `json:"ttlExpiresAt,omitempty"`
	TTLRemainingMS int64       `json:"ttlRemainingMs"`
	Expired        bool        `json:"expired"`
}

// Resource is a finite, shared pool. Available only ever decreases during
// an exercise; there is no restock.
type Resource struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Unit        string     `json:"unit"`
	Available   int        `json:"available"`
	Total       int        `json:"total"`
	LockedUntil *time.Time `json:"lockedUntil,omitempty"`
}

// Task binds one event to one committed resource unit.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Status     TaskStatus `json:"status"`
	EventID    string     `json:"eventId"`
	ResourceID string     `json:"resourceId"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Snapshot is the complete serializable state pushed to viewers.
type Snapshot struct {
	Events          []Event           `json:"events"`
	Resources       []Resource        `json:"resources"`
	Tasks           []Task            `json:"tasks"`
	MissionLog      []missionlog.Entry `json:"missionLog"`
	ResilienceScore float64           `json:"resilienceScore"`
	MapCenter       Location          `json:"mapCenter"`
	Tick            uint64            `json:"tick"`
}

// Notice is a one-shot advisory for the originating viewer. The zero value
// means nothing should be shown.
type Notice struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
}

// Notice levels.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Broadcaster pushes a full snapshot to every connected viewer.
type Broadcaster interface {
	Broadcast(Snapshot)
}
