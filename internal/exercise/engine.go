// Engine owning the authoritative exercise state and its tick-driven rules
package exercise

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"floodex/internal/config"
	"floodex/internal/logging"
	"floodex/internal/missionlog"
	"floodex/internal/scenario"
)

// Engine is the single owner of all exercise state. Every mutation, whether
// a client intent or a clock tick, runs under one mutex; collaborators only
// ever see snapshot copies.
type Engine struct {
	mu sync.Mutex

	name      string
	tuning    config.Tuning
	mapCenter Location

	events     map[string]*Event
	eventOrder []string

	resources     map[string]*Resource
	resourceOrder []string
	byCode        map[string]string

	tasks     map[string]*Task
	taskOrder []string

	// Resource locks live in a side map so expiry can be swept without
	// walking every resource; LockedUntil mirrors them for observers.
	locks map[string]time.Time

	score   float64
	history []missionlog.Entry

	catalog     *scenario.Catalog
	writer      missionlog.Writer
	scores      missionlog.ScoreWriter
	broadcaster Broadcaster

	rand *rand.Rand
	now  func() time.Time

	tick uint64
}

const scoreMax = 100

// New seeds an engine from the exercise configuration. history is the
// mission log tail recovered from the durable sink; rng and now may be nil
// and default to real randomness and wall-clock time.
func New(cfg *config.ExerciseConfig, catalog *scenario.Catalog, writer missionlog.Writer, history []missionlog.Entry, rng *rand.Rand, now func() time.Time) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	if catalog == nil {
		catalog = scenario.Default()
	}

	e := &Engine{
		name:      cfg.Name,
		tuning:    cfg.Tuning,
		mapCenter: Location{Lat: cfg.MapCenter.Lat, Lng: cfg.MapCenter.Lng},
		events:    make(map[string]*Event),
		resources: make(map[string]*Resource),
		byCode:    make(map[string]string),
		tasks:     make(map[string]*Task),
		locks:     make(map[string]time.Time),
		score:     scoreMax,
		history:   history,
		catalog:   catalog,
		writer:    writer,
		rand:      rng,
		now:       now,
	}

	for _, seed := range cfg.Resources {
		r := &Resource{
			ID:        uuid.New().String(),
			Code:      seed.Code,
			Name:      seed.Name,
			Unit:      seed.Unit,
			Available: seed.Total,
			Total:     seed.Total,
		}
		e.resources[r.ID] = r
		e.resourceOrder = append(e.resourceOrder, r.ID)
		e.byCode[r.Code] = r.ID
	}

	ts := e.now()
	for _, seed := range cfg.Events {
		critical := true
		if seed.Critical != nil {
			critical = *seed.Critical
		}
		ev := &Event{
			ID:         uuid.New().String(),
			Title:      seed.Title,
			Category:   Category(seed.Category),
			Status:     EventActive,
			Critical:   critical,
			TTLSeconds: seed.TTLSeconds,
			Location:   Location{Lat: seed.Location.Lat, Lng: seed.Location.Lng},
			CreatedAt:  ts,
		}
		e.events[ev.ID] = ev
		e.eventOrder = append(e.eventOrder, ev.ID)
	}

	return e
}

// SetBroadcaster wires the viewer synchronizer. Must be called before Run.
func (e *Engine) SetBroadcaster(b Broadcaster) {
	e.broadcaster = b
}

// SetScoreWriter wires an optional resilience score sink.
func (e *Engine) SetScoreWriter(w missionlog.ScoreWriter) {
	e.scores = w
}

// Run drives the tick processor until the context is done.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	log := logging.FromContext(ctx)
	log.Info("starting exercise engine", "exercise", e.name, "tick_interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.Tick(ctx)
		case <-ctx.Done():
			log.Info("stopping exercise engine")
			return
		}
	}
}

// Tick advances TTLs, re-evaluates the resilience score, and sweeps expired
// resource locks. A broadcast goes out iff at least one step changed
// observable state.
func (e *Engine) Tick(ctx context.Context) bool {
	e.mu.Lock()
	e.tick++
	changed := e.advanceTTLs(ctx)
	if e.decayScore(ctx) {
		changed = true
	}
	if e.sweepLocks() {
		changed = true
	}
	if changed {
		e.publishLocked()
	}
	e.mu.Unlock()
	return changed
}

// publishLocked hands a fresh snapshot to the broadcaster while e.mu is
// held, so snapshots reach subscribers in mutation order. Broadcast never
// blocks, it drops frames for slow subscribers instead.
func (e *Engine) publishLocked() {
	if e.broadcaster != nil {
		e.broadcaster.Broadcast(e.snapshotLocked())
	}
}

// appendLog records a mission log entry in memory and mirrors it to the
// durable sink. Sink failures are reported but never roll back state.
func (e *Engine) appendLog(ctx context.Context, entry missionlog.Entry) {
	e.history = append(e.history, entry)
	if e.writer == nil {
		return
	}
	if err := e.writer.Write(entry); err != nil {
		logging.FromContext(ctx).Error("mission log append failed", "action", entry.Action, "err", err)
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > scoreMax {
		return scoreMax
	}
	return v
}

// setScore clamps and applies a new score, emitting a sample to the score
// sink when it moved.
func (e *Engine) setScore(ctx context.Context, next float64) bool {
	next = clamp(next)
	if next == e.score {
		return false
	}
	e.score = next
	if e.scores != nil {
		sample := missionlog.ScoreSample{
			ExerciseID:     e.name,
			Score:          e.score,
			ActiveCritical: e.activeCriticalCount(),
			Timestamp:      e.now().UTC(),
		}
		if err := e.scores.WriteScore(sample); err != nil {
			logging.FromContext(ctx).Error("score sample write failed", "err", err)
		}
	}
	return true
}

func (e *Engine) activeCriticalCount() int {
	n := 0
	for _, ev := range e.events {
		if ev.Critical && ev.Status == EventActive {
			n++
		}
	}
	return n
}

// decayScore applies the per-tick penalty for unattended critical events.
func (e *Engine) decayScore(ctx context.Context) bool {
	n := e.activeCriticalCount()
	if n == 0 {
		return false
	}
	return e.setScore(ctx, e.score-float64(n)*e.tuning.DecayPerEvent)
}

// sweepLocks clears expired resource locks and mirrors the rest onto the
// resources for observers.
func (e *Engine) sweepLocks() bool {
	now := e.now()
	changed := false
	for id, until := range e.locks {
		res := e.resources[id]
		if !until.After(now) {
			delete(e.locks, id)
			if res != nil {
				res.LockedUntil = nil
			}
			changed = true
			continue
		}
		if res != nil {
			u := until
			res.LockedUntil = &u
		}
	}
	return changed
}
