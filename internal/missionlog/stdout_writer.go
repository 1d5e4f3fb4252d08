// Writer implementation printing mission log entries to STDOUT
package missionlog

import (
	"encoding/json"
	"fmt"
)

// StdoutWriter prints entries to STDOUT.
type StdoutWriter struct{}

// Write outputs a single entry.
func (w *StdoutWriter) Write(e Entry) error {
	data, _ := json.Marshal(e)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple entries.
func (w *StdoutWriter) WriteBatch(entries []Entry) error {
	for _, e := range entries {
		_ = w.Write(e)
	}
	return nil
}

// WriteScore prints a resilience score sample to STDOUT.
func (w *StdoutWriter) WriteScore(s ScoreSample) error {
	data, _ := json.Marshal(s)
	fmt.Println(string(data))
	return nil
}
