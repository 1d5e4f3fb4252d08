package protocol

import (
	"encoding/json"

	"floodex/internal/exercise"
)

// IntentMsg (client -> engine): a request to mutate exercise state. The
// actor label is trusted as-is; authentication is out of scope here.
type IntentMsg struct {
	Type    string        `json:"type"`
	Name    string        `json:"name"`
	Actor   string        `json:"actor"`
	Payload IntentPayload `json:"payload"`
}

// IntentPayload is the flat union of all intent parameters; each intent
// reads only the fields it needs.
type IntentPayload struct {
	Scenario   string      `json:"scenario,omitempty"`
	EventID    string      `json:"eventId,omitempty"`
	ResourceID string      `json:"resourceId,omitempty"`
	TaskID     string      `json:"taskId,omitempty"`
	Title      string      `json:"title,omitempty"`
	Category   string      `json:"category,omitempty"`
	Status     string      `json:"status,omitempty"`
	Note       string      `json:"note,omitempty"`
	Amount     json.Number `json:"amount,omitempty"`
	Lat        float64     `json:"lat,omitempty"`
	Lng        float64     `json:"lng,omitempty"`
}

// AmountInt returns the amount as an integer. An absent, fractional, or
// otherwise unusable amount yields 0, which the engine rejects with an
// advisory instead of the connection dropping the message.
func (p IntentPayload) AmountInt() int {
	n, err := p.Amount.Int64()
	if err != nil {
		return 0
	}
	return int(n)
}

// StateMsg (engine -> client): the full snapshot, pushed on connect and
// after every accepted mutation. No diffing, no per-viewer filtering.
type StateMsg struct {
	Type  string            `json:"type"`
	State exercise.Snapshot `json:"state"`
}

// ToastMsg (engine -> client): one-shot advisory scoped to the originating
// connection; never persisted or replayed to late joiners.
type ToastMsg struct {
	Type    string `json:"type"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewStateMsg wraps a snapshot for the wire.
func NewStateMsg(snap exercise.Snapshot) StateMsg {
	return StateMsg{Type: TypeState, State: snap}
}

// NewToastMsg wraps an advisory notice for the wire.
func NewToastMsg(n exercise.Notice) ToastMsg {
	return ToastMsg{Type: TypeToast, Level: n.Level, Message: n.Message}
}
