// Websocket hub keeping every connected viewer in sync with the engine
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"floodex/internal/exercise"
	"floodex/internal/logging"
	"floodex/internal/protocol"
)

const writeWait = 5 * time.Second

// Server upgrades viewer connections, feeds their intents to the engine,
// and fans full-state snapshots back out. It implements
// exercise.Broadcaster.
type Server struct {
	engine   *exercise.Engine
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

// subscriber is one connected viewer. Snapshots and toasts are queued on
// out and written by a dedicated goroutine.
type subscriber struct {
	out chan []byte
}

func New(engine *exercise.Engine) *Server {
	return &Server{
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 32 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Routes registers the hub's endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/healthz", s.handleHealthz)
}

// Start serves until the context is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.Routes(mux)
	srv := &http.Server{
		Addr:        addr,
		Handler:     mux,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}

// Broadcast pushes the snapshot to every connected viewer. A viewer whose
// queue is full skips this message; the next snapshot is complete anyway.
func (s *Server) Broadcast(snap exercise.Snapshot) {
	b, err := json.Marshal(protocol.NewStateMsg(snap))
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subscribers {
		select {
		case sub.out <- b:
		default:
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := &subscriber{out: make(chan []byte, 16)}
	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.subscribers, sub)
		s.mu.Unlock()
	}()

	// New viewers get one full snapshot up front.
	if b, err := json.Marshal(protocol.NewStateMsg(s.engine.Snapshot())); err == nil {
		sub.out <- b
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Writer goroutine.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case b, ok := <-sub.out:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// Reader loop.
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			cancel()
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil || base.Type != protocol.TypeIntent {
			continue
		}
		var intent protocol.IntentMsg
		if err := json.Unmarshal(msg, &intent); err != nil {
			continue
		}

		notice := s.dispatch(ctx, intent)
		if notice == (exercise.Notice{}) {
			continue
		}
		// Advisories go only to the originating viewer.
		if b, err := json.Marshal(protocol.NewToastMsg(notice)); err == nil {
			select {
			case sub.out <- b:
			default:
				log.Warn("toast dropped, viewer queue full", "actor", intent.Actor)
			}
		}
	}
}

// dispatch routes one intent to its engine operation.
func (s *Server) dispatch(ctx context.Context, m protocol.IntentMsg) exercise.Notice {
	p := m.Payload
	switch m.Name {
	case protocol.IntentInjectScenario:
		return s.engine.InjectScenario(ctx, m.Actor, p.Scenario)
	case protocol.IntentMoveEvent:
		return s.engine.MoveEvent(ctx, m.Actor, p.EventID, p.Lat, p.Lng)
	case protocol.IntentCreateTask:
		return s.engine.CreateTask(ctx, m.Actor, p.EventID, p.ResourceID, p.Title)
	case protocol.IntentUpdateTask:
		return s.engine.UpdateTask(ctx, m.Actor, p.TaskID, exercise.TaskStatus(p.Status))
	case protocol.IntentAddMarker:
		return s.engine.AddMarker(ctx, m.Actor, p.Title, exercise.Category(p.Category), p.Lat, p.Lng)
	case protocol.IntentConsumeResource:
		return s.engine.ConsumeResource(ctx, m.Actor, p.ResourceID, p.AmountInt(), p.Note)
	case protocol.IntentPlaceSandbags:
		return s.engine.PlaceSandbags(ctx, m.Actor, p.EventID, p.AmountInt())
	default:
		return exercise.Notice{Level: exercise.NoticeError, Message: "Unknown intent."}
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.engine.Snapshot())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true})
}
