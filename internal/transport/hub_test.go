package transport

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atomicstack/gridmenu/internal/clock"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/menu"
)

type serverFrame struct {
	Type   string      `json:"type"`
	Window int         `json:"window"`
	Title  string      `json:"title"`
	Rows   int         `json:"rows"`
	Cells  []grid.Cell `json:"cells"`
	Slot   int         `json:"slot"`
	Cell   grid.Cell   `json:"cell"`
	Error  string      `json:"error"`
}

type harness struct {
	loop   *clock.Loop
	engine *menu.Engine
	hub    *Hub
	server *httptest.Server
}

func newHarness(t *testing.T, defaultMenu string) *harness {
	t.Helper()
	loop := clock.NewLoop(clock.NewScheduler(), 5*time.Millisecond)
	e := menu.NewEngine(grid.NewWindowProvider(), loop.Clock())
	menu.NewBuilder(e, "demo", 1).
		Title("Demo").
		Fixed("0", menu.Button(grid.Cell{Icon: "lever", Name: "go"}, func(in *menu.Instance, ev *grid.ClickEvent) {
			_ = in.SetItem("1", menu.Static(grid.Cell{Icon: "torch", Name: ev.Kind.String()}))
		})).
		MustBuild()

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()
	h := &harness{loop: loop, engine: e, hub: NewHub(loop, e, defaultMenu)}
	h.server = httptest.NewServer(h.hub)
	t.Cleanup(func() {
		h.hub.Close()
		h.server.Close()
		cancel()
		<-loop.Done()
	})
	return h
}

func (h *harness) dial(t *testing.T, name string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.server.URL, "http") + "/ws?name=" + name
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (h *harness) instances(t *testing.T) int {
	t.Helper()
	n := 0
	if err := h.loop.Call(context.Background(), func() { n = len(h.engine.Instances()) }); err != nil {
		t.Fatalf("loop call failed: %v", err)
	}
	return n
}

func read(t *testing.T, conn *websocket.Conn) serverFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f serverFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return f
}

func write(t *testing.T, conn *websocket.Conn, msg map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestDefaultMenuOpensOnConnect(t *testing.T) {
	h := newHarness(t, "demo")
	conn := h.dial(t, "alice")
	f := read(t, conn)
	if f.Type != "open" || f.Title != "Demo" || f.Rows != 1 || len(f.Cells) != 9 {
		t.Fatalf("unexpected open frame %+v", f)
	}
	if f.Cells[0].Name != "go" {
		t.Fatalf("expected button on slot 0, got %q", f.Cells[0].Name)
	}
	if got := h.hub.Viewers(); len(got) != 1 || got[0] != "alice" {
		t.Fatalf("expected alice to be connected, got %v", got)
	}
}

func TestClickRoundTrip(t *testing.T) {
	h := newHarness(t, "demo")
	conn := h.dial(t, "alice")
	open := read(t, conn)

	write(t, conn, map[string]any{"type": "click", "window": open.Window, "slot": 0, "kind": "right"})
	f := read(t, conn)
	if f.Type != "set" || f.Window != open.Window || f.Slot != 1 || f.Cell.Name != "right" {
		t.Fatalf("unexpected set frame %+v", f)
	}

	write(t, conn, map[string]any{"type": "close", "window": open.Window})
	f = read(t, conn)
	if f.Type != "close" || f.Window != open.Window {
		t.Fatalf("unexpected close frame %+v", f)
	}
	if n := h.instances(t); n != 0 {
		t.Fatalf("expected no live instances, got %d", n)
	}
}

func TestOpenUnknownMenuReportsError(t *testing.T) {
	h := newHarness(t, "")
	conn := h.dial(t, "bob")
	write(t, conn, map[string]any{"type": "open", "menu": "missing"})
	f := read(t, conn)
	if f.Type != "error" || !strings.Contains(f.Error, "unknown template") {
		t.Fatalf("unexpected frame %+v", f)
	}
}

func TestClicksOnForeignWindowsAreIgnored(t *testing.T) {
	h := newHarness(t, "demo")
	conn := h.dial(t, "alice")
	open := read(t, conn)
	write(t, conn, map[string]any{"type": "click", "window": open.Window + 100, "slot": 0})
	write(t, conn, map[string]any{"type": "click", "window": open.Window, "slot": 42})
	write(t, conn, map[string]any{"type": "open", "menu": "demo"})
	f := read(t, conn)
	if f.Type != "close" || f.Window != open.Window {
		t.Fatalf("expected the reopen to close the first window, got %+v", f)
	}
	f = read(t, conn)
	if f.Type != "open" || f.Window == open.Window {
		t.Fatalf("expected a fresh window, got %+v", f)
	}
}

func TestDisconnectTearsDownInstances(t *testing.T) {
	h := newHarness(t, "demo")
	conn := h.dial(t, "alice")
	read(t, conn)
	if n := h.instances(t); n != 1 {
		t.Fatalf("expected one live instance, got %d", n)
	}
	conn.Close()
	waitFor(t, "viewer removal", func() bool { return h.hub.Len() == 0 })
	waitFor(t, "instance teardown", func() bool { return h.instances(t) == 0 })
}
