// Package observe serves a read-only spectator feed of the running game over HTTP.
// The game publishes a snapshot every frame; spectators poll /state or subscribe to /ws.
// Nothing here touches the session itself.
package observe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"chosenoffset.com/kizilcik/internal/core/session"
)

// DefaultInterval is how often /ws pushes the latest snapshot.
const DefaultInterval = 100 * time.Millisecond

const writeWait = 10 * time.Second

// Config tunes the observer. Zero values pick the defaults.
type Config struct {
	Interval time.Duration
	Logger   *log.Logger
}

// Observer keeps the latest published snapshot and serves it.
type Observer struct {
	mu      sync.RWMutex
	latest  session.Snapshot
	version uint64

	interval time.Duration
	logger   *log.Logger
	upgrader websocket.Upgrader
	router   *mux.Router

	quit      chan struct{}
	closeOnce sync.Once
}

// New creates an observer with its routes registered.
func New(cfg Config) *Observer {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	o := &Observer{
		interval: interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		quit: make(chan struct{}),
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", o.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/state", o.handleState).Methods(http.MethodGet)
	r.HandleFunc("/ws", o.handleWS).Methods(http.MethodGet)
	o.router = r
	return o
}

// Publish stores a snapshot. Safe to call from the game loop while spectators read.
func (o *Observer) Publish(snap session.Snapshot) {
	o.mu.Lock()
	o.latest = snap
	o.version++
	o.mu.Unlock()
}

// Latest returns the last published snapshot and its sequence number; 0 means none yet.
func (o *Observer) Latest() (session.Snapshot, uint64) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.latest, o.version
}

// Handler returns the router with every route.
func (o *Observer) Handler() http.Handler { return o.router }

// Serve listens on addr until ctx is cancelled, then shuts down and ends open streams.
func (o *Observer) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           o.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		o.logger.Printf("observer listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		o.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("observer shutdown: %w", err)
		}
		return nil
	case err := <-errc:
		o.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("observer on %s: %w", addr, err)
	}
}

// Close ends every open websocket stream.
func (o *Observer) Close() {
	o.closeOnce.Do(func() { close(o.quit) })
}

func (o *Observer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (o *Observer) handleState(w http.ResponseWriter, r *http.Request) {
	snap, version := o.Latest()
	if version == 0 {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		o.logger.Printf("failed to encode snapshot: %v", err)
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleWS streams snapshots at the configured interval, skipping ticks with nothing new.
func (o *Observer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := o.upgrader.Upgrade(w, r, nil)
	if err != nil {
		o.logger.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Spectators never send anything; reading only notices the close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	var sent uint64
	send := func() bool {
		snap, version := o.Latest()
		if version == 0 || version == sent {
			return true
		}
		data, err := json.Marshal(snap)
		if err != nil {
			o.logger.Printf("failed to encode snapshot: %v", err)
			return true
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return false
		}
		sent = version
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-ticker.C:
			if !send() {
				return
			}
		case <-gone:
			return
		case <-o.quit:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}
