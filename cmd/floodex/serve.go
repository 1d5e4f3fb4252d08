package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"floodex/internal/config"
	"floodex/internal/exercise"
	"floodex/internal/logging"
	"floodex/internal/scenario"
	"floodex/internal/server"
)

var (
	serveAddr         string
	serveConfigPath   string
	serveSchemaPath   string
	serveScenarioPath string
	serveTick         time.Duration
	serveLogFile      string
	serveSQLitePath   string
	servePrintOnly    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the real-time exercise engine",
	Long:  "serve starts the exercise engine and its websocket hub for facilitator and trainee clients.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()
		ctx := logging.NewContext(context.Background(), log)
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		cfg, err := config.Load(serveConfigPath, serveSchemaPath)
		if err != nil {
			return err
		}

		catalog := scenario.Default()
		if serveScenarioPath != "" {
			catalog, err = scenario.Load(serveScenarioPath)
			if err != nil {
				return err
			}
		}

		writer, scores, history, cleanup, err := newWriters(cfg.Name, serveLogFile, serveSQLitePath, servePrintOnly)
		if err != nil {
			return err
		}
		defer cleanup()
		if len(history) > 0 {
			log.Info("mission log history restored", "entries", len(history))
		}

		tickInterval := serveTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		engine := exercise.New(cfg, catalog, writer, history, nil, nil)
		if scores != nil {
			engine.SetScoreWriter(scores)
		}

		srv := server.New(engine)
		engine.SetBroadcaster(srv)

		go engine.Run(ctx, tickInterval)
		go func() {
			log.Info("exercise server listening", "addr", serveAddr)
			if err := srv.Start(ctx, serveAddr); err != nil && err != http.ErrServerClosed {
				log.Error("server failed", "error", err)
				cancel()
			}
		}()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigs:
		case <-ctx.Done():
		}

		cancel()
		log.Info("exercise stopped", "exercise", cfg.Name)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address for the websocket hub")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "config/exercise.yaml", "Path to exercise configuration YAML")
	serveCmd.Flags().StringVar(&serveSchemaPath, "schema", "schemas/exercise.cue", "Path to CUE schema file")
	serveCmd.Flags().StringVar(&serveScenarioPath, "scenarios", "", "Path to scenario catalog YAML (default: embedded catalog)")
	serveCmd.Flags().DurationVar(&serveTick, "tick", time.Second, "Engine tick interval (e.g. 500ms, 2s)")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "Path to persist the mission log (JSONL)")
	serveCmd.Flags().StringVar(&serveSQLitePath, "sqlite", "", "Path to a SQLite mission log database")
	serveCmd.Flags().BoolVar(&servePrintOnly, "print-only", false, "Print mission log entries to STDOUT instead of writing to DB")
}
