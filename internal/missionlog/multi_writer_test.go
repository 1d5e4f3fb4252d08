package missionlog

import (
	"testing"
	"time"
)

type captureWriter struct {
	entries []Entry
	batches int
}

func (c *captureWriter) Write(e Entry) error { c.entries = append(c.entries, e); return nil }

type captureBatchWriter struct {
	captureWriter
}

func (c *captureBatchWriter) WriteBatch(entries []Entry) error {
	c.entries = append(c.entries, entries...)
	c.batches++
	return nil
}

type captureScoreWriter struct {
	samples []ScoreSample
}

func (c *captureScoreWriter) WriteScore(s ScoreSample) error {
	c.samples = append(c.samples, s)
	return nil
}

func TestMultiWriterFanOut(t *testing.T) {
	plain := &captureWriter{}
	batch := &captureBatchWriter{}
	mw := NewMultiWriter([]Writer{plain, batch}, nil)

	ts := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	entries := []Entry{
		New(ts, "Alice", ActionTask, "one"),
		New(ts, "Bob", ActionResolve, "two"),
	}
	if err := mw.WriteBatch(entries); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}

	if len(plain.entries) != 2 {
		t.Errorf("plain writer got %d entries, want 2", len(plain.entries))
	}
	if len(batch.entries) != 2 || batch.batches != 1 {
		t.Errorf("batch writer got %d entries in %d batches, want 2 in 1", len(batch.entries), batch.batches)
	}

	if err := mw.Write(New(ts, "Alice", ActionMarker, "three")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(plain.entries) != 3 || len(batch.entries) != 3 {
		t.Errorf("single write not fanned out: plain=%d batch=%d", len(plain.entries), len(batch.entries))
	}
}

func TestMultiWriterScores(t *testing.T) {
	sw := &captureScoreWriter{}
	mw := NewMultiWriter(nil, []ScoreWriter{sw})

	if err := mw.WriteScore(ScoreSample{Score: 90}); err != nil {
		t.Fatalf("WriteScore: %v", err)
	}
	if len(sw.samples) != 1 || sw.samples[0].Score != 90 {
		t.Errorf("samples = %+v", sw.samples)
	}
}
