// Package net lets a companion tablet feed pointer events to PageInk over
// a websocket, and advertises that endpoint on the local network.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"PageInk/internal/gesture"
	"PageInk/internal/logging"
	"PageInk/internal/state"
)

// InputPath is where the bridge accepts websocket connections.
const InputPath = "/input"

// pointerStride separates the pointer ids of different connections so two
// tablets can never share a contact.
const pointerStride = 1 << 16

// Sink receives decoded events. *engine.Engine satisfies it.
type Sink interface {
	Handle(gesture.Event)
}

// Message is one pointer sample on the wire.
type Message struct {
	Phase   string  `json:"phase"`
	Pointer int     `json:"pointer"`
	Kind    string  `json:"kind"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	T       int64   `json:"t,omitempty"` // unix milliseconds
}

// Event converts m. A zero T is replaced by now.
func (m Message) Event(now time.Time) (gesture.Event, error) {
	phase, err := gesture.ParsePhase(m.Phase)
	if err != nil {
		return gesture.Event{}, err
	}
	kind, err := gesture.ParsePointerType(m.Kind)
	if err != nil {
		return gesture.Event{}, err
	}
	if m.Pointer < 0 || m.Pointer >= pointerStride {
		return gesture.Event{}, fmt.Errorf("pointer id %d out of range", m.Pointer)
	}
	at := now
	if m.T != 0 {
		at = time.UnixMilli(m.T)
	}
	return gesture.Event{Phase: phase, Type: kind, Pointer: m.Pointer, Pos: state.Point{X: m.X, Y: m.Y}, Time: at}, nil
}

// peer is one connected tablet.
type peer struct {
	conn   *websocket.Conn
	base   int
	active map[int]gesture.Event // last event per live contact
}

// Bridge is an http.Handler that turns websocket messages into events.
type Bridge struct {
	sink     Sink
	upgrader websocket.Upgrader

	mu     sync.Mutex
	peers  map[*websocket.Conn]*peer
	next   int
	closed bool
}

func NewBridge(sink Sink) *Bridge {
	return &Bridge{
		sink: sink,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Tablets connect from apps, not browsers with an Origin we know.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*websocket.Conn]*peer),
	}
}

// Peers is the number of connected tablets.
func (b *Bridge) Peers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.peers)
}

// add registers conn. It returns nil once the bridge is closed.
func (b *Bridge) add(conn *websocket.Conn) *peer {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.next++
	p := &peer{conn: conn, base: b.next * pointerStride, active: make(map[int]gesture.Event)}
	b.peers[conn] = p
	logging.WithComponent("bridge").Info("tablet connected", "addr", conn.RemoteAddr().String())
	return p
}

func (b *Bridge) remove(p *peer) {
	b.mu.Lock()
	delete(b.peers, p.conn)
	b.mu.Unlock()

	// Contacts still down when the link drops are canceled.
	for _, last := range p.active {
		last.Phase = gesture.Cancel
		b.sink.Handle(last)
	}
	logging.WithComponent("bridge").Info("tablet disconnected", "addr", p.conn.RemoteAddr().String())
}

func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.WithComponent("bridge").Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	p := b.add(conn)
	if p == nil {
		return
	}
	defer b.remove(p)

	log := logging.WithComponent("bridge")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read from tablet failed", "error", err)
			}
			return
		}
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			log.Debug("skipping malformed message", "error", err)
			continue
		}
		ev, err := m.Event(time.Now())
		if err != nil {
			log.Debug("skipping bad message", "error", err)
			continue
		}
		ev.Pointer += p.base
		if ev.Phase.Ending() {
			delete(p.active, ev.Pointer)
		} else {
			p.active[ev.Pointer] = ev
		}
		b.sink.Handle(ev)
	}
}

// Close disconnects every tablet and refuses new ones. The read loops
// exit and cancel the contacts their tablets still held.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for conn := range b.peers {
		if err := conn.Close(); err != nil {
			logging.WithComponent("bridge").Debug("closing tablet connection", "error", err)
		}
	}
}

// ListenAndServe serves the bridge on addr until ctx is done.
func (b *Bridge) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("input bridge: %w", err)
	}
	return b.Serve(ctx, ln)
}

// Serve accepts tablets on ln until ctx is done, then shuts the server
// down and closes every open tablet connection.
func (b *Bridge) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle(InputPath, b)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	logging.WithComponent("bridge").Info("input bridge listening", "addr", ln.Addr().String(), "path", InputPath)

	select {
	case err := <-errc:
		return fmt.Errorf("input bridge: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		// Shutdown leaves hijacked websocket connections open.
		err := srv.Shutdown(shutdownCtx)
		b.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("input bridge shutdown: %w", err)
		}
		return nil
	}
}
