package missionlog

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// Replay feeds recorded entries from r to writer. A speed >0 accelerates
// playback relative to the recorded timestamps. If speed <= 0, no
// artificial delay is inserted.
func Replay(r io.Reader, writer Writer, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !prev.IsZero() && speed > 0 {
			diff := e.Timestamp.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		if err := writer.Write(e); err != nil {
			return err
		}
		prev = e.Timestamp
	}
}

// ReplayFile opens a JSONL mission log and replays its entries.
func ReplayFile(path string, writer Writer, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Replay(f, writer, speed)
}
