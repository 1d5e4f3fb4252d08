package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"floodex/internal/exercise"
	"floodex/internal/missionlog"
)

func sampleSnapshot(logLen int) exercise.Snapshot {
	ts := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	snap := exercise.Snapshot{
		Events: []exercise.Event{
			{ID: "e1", Title: "Dike breach", Category: exercise.CategoryFlood, Status: exercise.EventActive, Critical: true, TTLRemainingMS: 90_000},
			{ID: "e2", Title: "Shelter set up", Category: exercise.CategoryCommand, Status: exercise.EventResolved},
		},
		Resources: []exercise.Resource{
			{ID: "r1", Code: "sandbags", Name: "Sandbags", Unit: "pieces", Available: 49800, Total: 50000},
		},
		ResilienceScore: 85,
		MapCenter:       exercise.Location{Lat: 48.835, Lng: 12.964},
		Tick:            12,
	}
	for i := 0; i < logLen; i++ {
		snap.MissionLog = append(snap.MissionLog, missionlog.Entry{
			ID: string(rune('a' + i)), Timestamp: ts, User: "Alice",
			Action: missionlog.ActionTask, Details: "entry",
		})
	}
	return snap
}

func TestApplyState_PopulatesTablesAndLog(t *testing.T) {
	m := newModel("ws://localhost/ws")
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = mi.(model)

	mi, _ = m.Update(stateMsg{snap: sampleSnapshot(2)})
	m = mi.(model)

	if !m.haveState {
		t.Fatalf("haveState not set")
	}
	if got := len(m.events.Rows()); got != 2 {
		t.Errorf("event rows = %d, want 2", got)
	}
	if got := len(m.resources.Rows()); got != 1 {
		t.Errorf("resource rows = %d, want 1", got)
	}
	if len(m.logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(m.logs))
	}

	// A later snapshot appends only the new suffix.
	mi, _ = m.Update(stateMsg{snap: sampleSnapshot(3)})
	m = mi.(model)
	if len(m.logs) != 3 {
		t.Errorf("logs = %d after growth, want 3", len(m.logs))
	}

	view := m.View()
	if !strings.Contains(view, "Dike breach") {
		t.Errorf("view missing event title:\n%s", view)
	}
	if !strings.Contains(view, "tick=12") {
		t.Errorf("view missing tick:\n%s", view)
	}
}

func TestToastAndDisconnect(t *testing.T) {
	m := newModel("ws://localhost/ws")
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = mi.(model)
	mi, _ = m.Update(stateMsg{snap: sampleSnapshot(0)})
	m = mi.(model)

	mi, _ = m.Update(toastMsg{level: exercise.NoticeError, message: "Resource is still locked."})
	m = mi.(model)
	if !strings.Contains(m.View(), "Resource is still locked.") {
		t.Errorf("toast not rendered")
	}

	mi, _ = m.Update(disconnectedMsg{})
	m = mi.(model)
	if !strings.Contains(m.View(), "disconnected") {
		t.Errorf("disconnect not rendered")
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := scoreColor(30); got != colorRed {
		t.Errorf("scoreColor(30) = %q", got)
	}
	if got := scoreColor(55); got != colorYellow {
		t.Errorf("scoreColor(55) = %q", got)
	}
	if got := scoreColor(90); got != colorGreen {
		t.Errorf("scoreColor(90) = %q", got)
	}

	ev := exercise.Event{Status: exercise.EventActive, Critical: true, TTLRemainingMS: 90_000}
	if got := ttlCell(ev); got != "1m30s" {
		t.Errorf("ttlCell = %q, want 1m30s", got)
	}
	ev.Status = exercise.EventResolved
	if got := ttlCell(ev); got != "-" {
		t.Errorf("ttlCell for resolved = %q, want -", got)
	}

	line := formatLogLine(missionlog.Entry{
		Timestamp: time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC),
		User:      "Alice", Action: missionlog.ActionFailure, Details: "Convoy stuck",
	})
	if !strings.Contains(line, "FAILURE") || !strings.Contains(line, "Convoy stuck") {
		t.Errorf("log line = %q", line)
	}
}
