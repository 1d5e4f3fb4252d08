package missionlog

// Writer is an interface to support different mission log sinks.
type Writer interface {
	Write(Entry) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]Entry) error
}

// ScoreWriter handles resilience score samples.
type ScoreWriter interface {
	WriteScore(ScoreSample) error
}

// Loader is implemented by sinks that can read back recorded entries at
// startup.
type Loader interface {
	Load() ([]Entry, error)
}
