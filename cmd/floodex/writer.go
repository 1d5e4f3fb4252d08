package main

import (
	"os"

	"floodex/internal/missionlog"
)

// newWriters sets up mission log sinks based on flags and env vars. It
// returns the log writer, the score writer, the history recovered from the
// persistent sinks, and a cleanup function closing any resources.
func newWriters(exerciseID, logFile, sqlitePath string, printOnly bool) (missionlog.Writer, missionlog.ScoreWriter, []missionlog.Entry, func(), error) {
	var (
		writers      []missionlog.Writer
		scoreWriters []missionlog.ScoreWriter
		closers      []func()
		history      []missionlog.Entry
	)
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	if logFile != "" {
		fw, err := missionlog.NewFileWriter(logFile)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		history, err = fw.Load()
		if err != nil {
			fw.Close()
			return nil, nil, nil, nil, err
		}
		writers = append(writers, fw)
		closers = append(closers, func() { fw.Close() })
	}

	if sqlitePath != "" {
		sw, err := missionlog.NewSQLiteWriter(sqlitePath)
		if err != nil {
			cleanup()
			return nil, nil, nil, nil, err
		}
		if history == nil {
			history, err = sw.Load()
			if err != nil {
				sw.Close()
				cleanup()
				return nil, nil, nil, nil, err
			}
		}
		writers = append(writers, sw)
		closers = append(closers, func() { sw.Close() })
	}

	if !printOnly && os.Getenv("GREPTIMEDB_ENDPOINT") != "" {
		endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
		database := os.Getenv("GREPTIMEDB_DATABASE")
		if database == "" {
			database = "public"
		}
		gw, err := missionlog.NewGreptimeWriter(endpoint, database, exerciseID)
		if err != nil {
			cleanup()
			return nil, nil, nil, nil, err
		}
		writers = append(writers, gw)
		scoreWriters = append(scoreWriters, gw)
	}

	if printOnly || len(writers) == 0 {
		sw := &missionlog.StdoutWriter{}
		writers = append(writers, sw)
		scoreWriters = append(scoreWriters, sw)
	}

	if len(writers) == 1 && len(scoreWriters) <= 1 {
		var scores missionlog.ScoreWriter
		if len(scoreWriters) == 1 {
			scores = scoreWriters[0]
		}
		return writers[0], scores, history, cleanup, nil
	}
	mw := missionlog.NewMultiWriter(writers, scoreWriters)
	return mw, mw, history, cleanup, nil
}
