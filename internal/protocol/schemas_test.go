package protocol_test

import (
	"encoding/json"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"floodex/internal/config"
	"floodex/internal/exercise"
	"floodex/internal/protocol"
	"floodex/internal/scenario"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	intentSchema := compile("intent.schema.json")
	stateSchema := compile("state.schema.json")
	toastSchema := compile("toast.schema.json")

	var intent any
	_ = json.Unmarshal([]byte(`{
	  "type":"intent",
	  "name":"resource:consume",
	  "actor":"Alice",
	  "payload":{"resourceId":"r1","amount":200,"note":"for the dike"}
	}`), &intent)
	validate(intentSchema, intent)

	var move any
	_ = json.Unmarshal([]byte(`{
	  "type":"intent",
	  "name":"event:move",
	  "actor":"Bob",
	  "payload":{"eventId":"e1","lat":48.84,"lng":12.96}
	}`), &move)
	validate(intentSchema, move)

	// A real snapshot round-tripped through JSON must satisfy the state
	// schema.
	cfg := &config.ExerciseConfig{
		Name:      "schema-test",
		MapCenter: config.Location{Lat: 48.835, Lng: 12.964},
		Resources: []config.ResourceSeed{{Code: "sandbags", Name: "Sandbags", Unit: "pieces", Total: 100}},
		Events: []config.EventSeed{{
			Title: "Dike breach", Category: "flood",
			Location: config.Location{Lat: 48.85, Lng: 12.98},
		}},
	}
	cfg.ApplyDefaults()
	now := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	eng := exercise.New(cfg, scenario.Default(), nil, nil, rand.New(rand.NewSource(1)), func() time.Time { return now })

	b, err := json.Marshal(protocol.NewStateMsg(eng.Snapshot()))
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	var state any
	_ = json.Unmarshal(b, &state)
	validate(stateSchema, state)

	var toast any
	b, _ = json.Marshal(protocol.NewToastMsg(exercise.Notice{Level: exercise.NoticeError, Message: "Resource is still locked."}))
	_ = json.Unmarshal(b, &toast)
	validate(toastSchema, toast)
}

func TestDecodeBase(t *testing.T) {
	m, err := protocol.DecodeBase([]byte(`{"type":"intent","name":"task:update"}`))
	if err != nil {
		t.Fatalf("DecodeBase: %v", err)
	}
	if m.Type != protocol.TypeIntent {
		t.Errorf("type = %q, want %q", m.Type, protocol.TypeIntent)
	}
}
