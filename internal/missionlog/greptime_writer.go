package missionlog

import (
	"context"
	"log"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeWriter ships mission log entries and resilience score samples to
// GreptimeDB for after-action analysis. Tables are auto-created on first
// ingest.
type GreptimeWriter struct {
	client     greptimeClient
	exerciseID string
	logTable   string
	scoreTable string
}

// NewGreptimeWriter creates a GreptimeDB writer for the given endpoint.
func NewGreptimeWriter(endpoint, database, exerciseID string) (*GreptimeWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeWriter{
		client:     client,
		exerciseID: exerciseID,
		logTable:   "mission_log",
		scoreTable: "resilience_score",
	}, nil
}

// newLogTable defines the mission_log schema. Row values must follow this
// column order.
func (w *GreptimeWriter) newLogTable() (*table.Table, error) {
	tbl, err := table.New(w.logTable)
	if err != nil {
		return nil, err
	}
	for _, err := range []error{
		tbl.AddTagColumn("exercise_id", types.STRING),
		tbl.AddTagColumn("action", types.STRING),
		tbl.AddFieldColumn("entry_id", types.STRING),
		tbl.AddFieldColumn("user", types.STRING),
		tbl.AddFieldColumn("details", types.STRING),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	} {
		if err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// Write inserts a single entry.
func (w *GreptimeWriter) Write(e Entry) error {
	return w.WriteBatch([]Entry{e})
}

// WriteBatch inserts multiple entries.
func (w *GreptimeWriter) WriteBatch(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tbl, err := w.newLogTable()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := tbl.AddRow(w.exerciseID, string(e.Action), e.ID, e.User, e.Details, e.Timestamp); err != nil {
			return err
		}
	}

	ctx := ingesterContext.New(context.Background())
	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Printf("[GreptimeWriter] mission log write failed: %v", err)
		return err
	}
	return nil
}

// WriteScore inserts one resilience score sample.
func (w *GreptimeWriter) WriteScore(s ScoreSample) error {
	tbl, err := table.New(w.scoreTable)
	if err != nil {
		return err
	}
	for _, err := range []error{
		tbl.AddTagColumn("exercise_id", types.STRING),
		tbl.AddFieldColumn("score", types.FLOAT64),
		tbl.AddFieldColumn("active_critical", types.FLOAT64),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	} {
		if err != nil {
			return err
		}
	}
	if err := tbl.AddRow(w.exerciseID, s.Score, float64(s.ActiveCritical), s.Timestamp); err != nil {
		return err
	}

	ctx := ingesterContext.New(context.Background())
	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Printf("[GreptimeWriter] score write failed: %v", err)
		return err
	}
	return nil
}
