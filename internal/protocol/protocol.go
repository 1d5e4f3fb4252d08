// Wire protocol between the engine and its viewers
package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeIntent = "intent"
	TypeState  = "state"
	TypeToast  = "toast"
)

// Intent names (client -> engine).
const (
	IntentInjectScenario  = "event:inject"
	IntentMoveEvent       = "event:move"
	IntentCreateTask      = "task:create"
	IntentUpdateTask      = "task:update"
	IntentAddMarker       = "marker:add"
	IntentConsumeResource = "resource:consume"
	IntentPlaceSandbags   = "sandbag:place"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
