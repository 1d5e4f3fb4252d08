package missionlog

import (
	"context"
	"testing"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
)

type mockGreptimeClient struct {
	table *table.Table
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	if len(tables) > 0 {
		m.table = tables[0]
	}
	return &gpb.GreptimeResponse{}, nil
}

func TestGreptimeWriterMissionLog(t *testing.T) {
	ts := time.Unix(0, 0).UTC()
	m := &mockGreptimeClient{}
	w := &GreptimeWriter{client: m, exerciseID: "ex1", logTable: "mission_log"}

	entries := []Entry{
		{ID: "e1", Timestamp: ts, User: "Alice", Action: ActionResource, Details: "200 sandbags consumed."},
		{ID: "e2", Timestamp: ts.Add(time.Second), User: "System", Action: ActionFailure, Details: "Convoy stuck"},
	}
	if err := w.WriteBatch(entries); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}

	rows := m.table.GetRows()
	if len(rows.Schema) != 6 {
		t.Fatalf("unexpected schema length: %d", len(rows.Schema))
	}
	if rows.Schema[5].Datatype != gpb.ColumnDataType_TIMESTAMP_MILLISECOND {
		t.Fatalf("ts column type = %v, want %v", rows.Schema[5].Datatype, gpb.ColumnDataType_TIMESTAMP_MILLISECOND)
	}
	if len(rows.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows.Rows))
	}
	if got := rows.Rows[0].Values[0].GetStringValue(); got != "ex1" {
		t.Fatalf("exercise_id = %s, want ex1", got)
	}
	if got := rows.Rows[0].Values[1].GetStringValue(); got != "RESSOURCE" {
		t.Fatalf("action = %s, want RESSOURCE", got)
	}
	if got := rows.Rows[1].Values[2].GetStringValue(); got != "e2" {
		t.Fatalf("entry_id = %s, want e2", got)
	}
	if got := rows.Rows[1].Values[5].GetTimestampMillisecondValue(); got != 1000 {
		t.Fatalf("ts = %d, want 1000", got)
	}
}

func TestGreptimeWriterScore(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeWriter{client: m, exerciseID: "ex1", scoreTable: "resilience_score"}

	sample := ScoreSample{
		ExerciseID:     "ex1",
		Score:          84.7,
		ActiveCritical: 3,
		Timestamp:      time.Unix(0, 0).UTC(),
	}
	if err := w.WriteScore(sample); err != nil {
		t.Fatalf("WriteScore: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}

	rows := m.table.GetRows()
	if len(rows.Schema) != 4 {
		t.Fatalf("unexpected schema length: %d", len(rows.Schema))
	}
	if rows.Schema[1].Datatype != gpb.ColumnDataType_FLOAT64 {
		t.Fatalf("score column type = %v, want %v", rows.Schema[1].Datatype, gpb.ColumnDataType_FLOAT64)
	}
	if got := rows.Rows[0].Values[1].GetF64Value(); got != 84.7 {
		t.Fatalf("score = %v, want 84.7", got)
	}
	if got := rows.Rows[0].Values[2].GetF64Value(); got != 3 {
		t.Fatalf("active_critical = %v, want 3", got)
	}
}
