package missionlog

// MultiWriter fan-outs entries and score samples to multiple writers.
type MultiWriter struct {
	writers      []Writer
	scoreWriters []ScoreWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws []Writer, sws []ScoreWriter) *MultiWriter {
	return &MultiWriter{writers: ws, scoreWriters: sws}
}

// Write sends an entry to all writers.
func (mw *MultiWriter) Write(e Entry) error {
	for _, w := range mw.writers {
		if err := w.Write(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple entries to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(entries []Entry) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteBatch(entries); err != nil {
				return err
			}
			continue
		}
		for _, e := range entries {
			if err := w.Write(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteScore sends a score sample to all score writers.
func (mw *MultiWriter) WriteScore(s ScoreSample) error {
	for _, w := range mw.scoreWriters {
		if err := w.WriteScore(s); err != nil {
			return err
		}
	}
	return nil
}
