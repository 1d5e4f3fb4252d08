package missionlog

import (
	"strings"
	"testing"
)

func TestReplayWritesAllEntries(t *testing.T) {
	input := `{"id":"a","timestamp":"2026-05-12T09:00:00Z","user":"Alice","action":"TASK","details":"one"}
{"id":"b","timestamp":"2026-05-12T09:00:01Z","user":"Bob","action":"RESOLVE","details":"two"}
`
	w := &captureWriter{}
	if err := Replay(strings.NewReader(input), w, 0); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(w.entries) != 2 {
		t.Fatalf("replayed %d entries, want 2", len(w.entries))
	}
	if w.entries[0].ID != "a" || w.entries[1].Action != ActionResolve {
		t.Errorf("entries = %+v", w.entries)
	}
}

func TestReplayStopsOnCorruptStream(t *testing.T) {
	input := `{"id":"a","timestamp":"2026-05-12T09:00:00Z","user":"Alice","action":"TASK","details":"one"}
garbage`
	w := &captureWriter{}
	if err := Replay(strings.NewReader(input), w, 0); err == nil {
		t.Fatalf("expected error on corrupt stream")
	}
	if len(w.entries) != 1 {
		t.Errorf("replayed %d entries before failure, want 1", len(w.entries))
	}
}
