package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"floodex/internal/missionlog"
)

func TestNewWritersPrintOnly(t *testing.T) {
	w, scores, history, cleanup, err := newWriters("ex1", "", "", true)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*missionlog.StdoutWriter); !ok {
		t.Fatalf("expected *missionlog.StdoutWriter, got %T", w)
	}
	if _, ok := scores.(*missionlog.StdoutWriter); !ok {
		t.Fatalf("expected score writer *missionlog.StdoutWriter, got %T", scores)
	}
	if history != nil {
		t.Fatalf("expected no history, got %d entries", len(history))
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	w, _, _, cleanup, err := newWriters("ex1", "", "", false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*missionlog.StdoutWriter); !ok {
		t.Fatalf("expected *missionlog.StdoutWriter, got %T", w)
	}
}

func TestNewWritersLogFileRestoresHistory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mission.jsonl")

	w, _, history, cleanup, err := newWriters("ex1", path, "", false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if history != nil {
		t.Fatalf("expected empty history on first run, got %d", len(history))
	}
	if _, ok := w.(*missionlog.FileWriter); !ok {
		t.Fatalf("expected *missionlog.FileWriter, got %T", w)
	}
	e := missionlog.New(time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC), "Alice", missionlog.ActionTask, "Task created")
	if err := w.Write(e); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cleanup()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}

	_, _, history, cleanup, err = newWriters("ex1", path, "", false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if len(history) != 1 || history[0].ID != e.ID {
		t.Fatalf("history = %+v, want the recorded entry", history)
	}
}

func TestNewWritersMultipleSinks(t *testing.T) {
	dir := t.TempDir()
	w, scores, _, cleanup, err := newWriters("ex1",
		filepath.Join(dir, "mission.jsonl"),
		filepath.Join(dir, "mission.db"),
		false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*missionlog.MultiWriter); !ok {
		t.Fatalf("expected *missionlog.MultiWriter, got %T", w)
	}
	if _, ok := scores.(*missionlog.MultiWriter); !ok {
		t.Fatalf("expected score writer *missionlog.MultiWriter, got %T", scores)
	}
}
