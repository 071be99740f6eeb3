// Package transport serves grid menus to remote viewers over websockets.
//
// Every connection is a grid.Sink: surfaces opened for it are pushed as JSON
// frames and clicks coming back are handed to the engine on its loop.
package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/atomicstack/gridmenu/internal/clock"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/logging"
	"github.com/atomicstack/gridmenu/internal/logging/events"
	"github.com/atomicstack/gridmenu/internal/menu"
)

var errSlowViewer = errors.New("viewer outbox full")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// Hub tracks connected viewers.
type Hub struct {
	loop        *clock.Loop
	engine      *menu.Engine
	defaultMenu string
	log         *zap.Logger

	mu    sync.Mutex
	conns map[string]*Conn
}

// NewHub creates a hub submitting work to loop. When defaultMenu is set it is
// opened for every new viewer.
func NewHub(loop *clock.Loop, e *menu.Engine, defaultMenu string) *Hub {
	return &Hub{
		loop:        loop,
		engine:      e,
		defaultMenu: defaultMenu,
		log:         logging.Logger("transport"),
		conns:       make(map[string]*Conn),
	}
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Viewers returns the connected viewer names, sorted.
func (h *Hub) Viewers() []string {
	h.mu.Lock()
	names := make([]string, 0, len(h.conns))
	for _, c := range h.conns {
		names = append(names, c.name)
	}
	h.mu.Unlock()
	sort.Strings(names)
	return names
}

// Close ends every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()
	for _, c := range conns {
		c.shutdown(nil)
	}
}

// ServeHTTP upgrades the request and serves the viewer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	id := uuid.NewString()
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = "viewer-" + id[:8]
	}
	c := newConn(id, name, ws)
	h.add(c)
	events.Transport.Connect(name, r.RemoteAddr)
	go c.writePump()

	if h.defaultMenu != "" {
		h.submit(c, func() { h.open(c, h.defaultMenu, "") })
	}
	h.readPump(c)

	h.remove(c)
	events.Transport.Disconnect(name, c.err)
	_ = h.loop.Do(func() { h.engine.Disconnect(c) })
}

func (h *Hub) readPump(c *Conn) {
	defer c.shutdown(nil)
	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.shutdown(err)
			}
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.log.Debug("bad client frame", zap.String("viewer", c.name), zap.Error(err))
			continue
		}
		events.Transport.Message(c.name, msg.Type)
		switch msg.Type {
		case "click":
			h.submit(c, func() { h.click(c, msg) })
		case "close":
			h.submit(c, func() {
				if s, ok := c.surface(msg.Window); ok {
					h.engine.OnClose(c, s)
				}
			})
		case "open":
			name := msg.Menu
			if name == "" {
				name = h.defaultMenu
			}
			h.submit(c, func() { h.open(c, name, msg.Query) })
		}
	}
}

func (h *Hub) submit(c *Conn, fn func()) {
	if err := h.loop.Do(fn); err != nil {
		c.shutdown(err)
	}
}

func (h *Hub) click(c *Conn, msg clientMessage) {
	s, ok := c.surface(msg.Window)
	if !ok || msg.Slot < 0 || msg.Slot >= s.Size() {
		return
	}
	h.engine.OnClick(&grid.ClickEvent{
		Viewer:  c,
		Surface: s,
		Slot:    msg.Slot,
		Kind:    grid.ParseClickKind(msg.Kind),
	})
}

func (h *Hub) open(c *Conn, name, query string) {
	if _, err := h.engine.ShowByName(name, c, query); err != nil {
		h.log.Debug("open failed", zap.String("viewer", c.name), zap.String("menu", name), zap.Error(err))
		c.send(errorMessage{Type: "error", Error: err.Error()})
	}
}

func (h *Hub) add(c *Conn) {
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()
}

func (h *Hub) remove(c *Conn) {
	h.mu.Lock()
	delete(h.conns, c.id)
	h.mu.Unlock()
}
