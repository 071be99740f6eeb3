package transport

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/logging/events"
)

const (
	writeWait   = 5 * time.Second
	outboxDepth = 512
)

type openMessage struct {
	Type   string      `json:"type"`
	Window int         `json:"window"`
	Title  string      `json:"title"`
	Rows   int         `json:"rows"`
	Cells  []grid.Cell `json:"cells"`
}

type setMessage struct {
	Type   string    `json:"type"`
	Window int       `json:"window"`
	Slot   int       `json:"slot"`
	Cell   grid.Cell `json:"cell"`
}

type closeMessage struct {
	Type   string `json:"type"`
	Window int    `json:"window"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// clientMessage is everything a viewer may send.
type clientMessage struct {
	Type   string `json:"type"`
	Window int    `json:"window"`
	Slot   int    `json:"slot"`
	Kind   string `json:"kind"`
	Menu   string `json:"menu"`
	Query  string `json:"query"`
}

// Conn is one remote viewer. It implements grid.Sink; the sink methods run
// on the engine loop and only ever enqueue frames.
type Conn struct {
	id   string
	name string
	ws   *websocket.Conn

	out  chan any
	done chan struct{}
	once sync.Once
	err  error

	// windows is only touched on the engine loop.
	windows map[int]grid.Surface
}

func newConn(id, name string, ws *websocket.Conn) *Conn {
	return &Conn{
		id:      id,
		name:    name,
		ws:      ws,
		out:     make(chan any, outboxDepth),
		done:    make(chan struct{}),
		windows: make(map[int]grid.Surface),
	}
}

func (c *Conn) ID() string   { return c.id }
func (c *Conn) Name() string { return c.name }

// Show sends the full surface. It fails once the connection has ended.
func (c *Conn) Show(s grid.Surface) error {
	if c.gone() {
		return grid.ErrViewerGone
	}
	if !c.send(openMessage{Type: "open", Window: s.ID(), Title: s.Title(), Rows: s.Rows(), Cells: grid.Snapshot(s)}) {
		return grid.ErrViewerGone
	}
	c.windows[s.ID()] = s
	return nil
}

func (c *Conn) Update(s grid.Surface, slot int, cell grid.Cell) {
	c.send(setMessage{Type: "set", Window: s.ID(), Slot: slot, Cell: cell.Clone()})
}

func (c *Conn) Hide(s grid.Surface) {
	delete(c.windows, s.ID())
	c.send(closeMessage{Type: "close", Window: s.ID()})
}

// surface returns the open window with the given id.
func (c *Conn) surface(id int) (grid.Surface, bool) {
	s, ok := c.windows[id]
	return s, ok
}

func (c *Conn) send(msg any) bool {
	if c.gone() {
		return false
	}
	select {
	case c.out <- msg:
		return true
	default:
		events.Transport.Drop(c.name, len(c.out))
		c.shutdown(errSlowViewer)
		return false
	}
}

func (c *Conn) gone() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Conn) shutdown(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
		_ = c.ws.Close()
	})
}

// writePump drains the outbox until the connection ends.
func (c *Conn) writePump() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.out:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(msg); err != nil {
				c.shutdown(err)
				return
			}
		}
	}
}
