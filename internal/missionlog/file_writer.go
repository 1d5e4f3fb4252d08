package missionlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileWriter appends mission log entries to a JSONL file.
type FileWriter struct {
	path string
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter opens (or creates) the JSONL log at path in append mode.
func NewFileWriter(path string) (*FileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileWriter{path: path, file: f, enc: json.NewEncoder(f)}, nil
}

// Write appends a single entry.
func (w *FileWriter) Write(e Entry) error {
	return w.enc.Encode(e)
}

// WriteBatch appends multiple entries.
func (w *FileWriter) WriteBatch(entries []Entry) error {
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			return err
		}
	}
	return nil
}

// Load reads back every entry recorded in the file. Lines that fail to
// parse are skipped, not fatal.
func (w *FileWriter) Load() ([]Entry, error) {
	return LoadFile(w.path)
}

// Close closes the underlying file.
func (w *FileWriter) Close() error {
	return w.file.Close()
}

// LoadFile reads a JSONL mission log from disk. A missing file yields an
// empty history; unparseable lines are dropped individually.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, sc.Err()
}
