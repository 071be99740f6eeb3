// Package httpserver exposes the admin API and mounts the websocket viewer
// endpoint.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atomicstack/gridmenu/internal/catalog"
	"github.com/atomicstack/gridmenu/internal/clock"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/logging"
	"github.com/atomicstack/gridmenu/internal/menu"
	"github.com/atomicstack/gridmenu/internal/state"
)

// Viewers is the part of the websocket hub the API reports on.
type Viewers interface {
	http.Handler
	Len() int
	Viewers() []string
}

// Server provides the HTTP API for inspecting the engine.
type Server struct {
	addr      string
	loop      *clock.Loop
	engine    *menu.Engine
	viewers   Viewers
	listings  state.ListingStore
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

type templateView struct {
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	PageSlots int    `json:"page_slots"`
	Fixed     int    `json:"fixed_slots"`
}

type instanceView struct {
	ID        string      `json:"id"`
	Template  string      `json:"template"`
	Viewer    string      `json:"viewer"`
	Window    int         `json:"window"`
	Title     string      `json:"title,omitempty"`
	Page      int         `json:"page"`
	Pages     int         `json:"pages"`
	Items     int         `json:"items"`
	Animating bool        `json:"animating"`
	Cells     []grid.Cell `json:"cells,omitempty"`
}

// NewServer creates a new HTTP API server. viewers may be nil, in which case
// no websocket endpoint is mounted.
func NewServer(addr string, loop *clock.Loop, e *menu.Engine, viewers Viewers) *Server {
	if addr == "" {
		addr = "127.0.0.1:8765"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    addr,
		loop:    loop,
		engine:  e,
		viewers: viewers,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// ServeListings exposes store under /api/listings and reports its version in
// the health check. Call before Start.
func (s *Server) ServeListings(store state.ListingStore) {
	s.listings = store
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/templates", s.handleTemplates)
	r.GET("/api/instances", s.handleInstances)
	r.GET("/api/instances/:id", s.handleInstance)
	if s.listings != nil {
		r.GET("/api/listings", s.handleListings)
	}
	if s.viewers != nil {
		r.GET("/ws", gin.WrapH(s.viewers))
	}
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound address once Start succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// onLoop runs fn on the engine loop and reports a 503 when it cannot.
func (s *Server) onLoop(c *gin.Context, fn func()) bool {
	if err := s.loop.Call(c.Request.Context(), fn); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (s *Server) handleHealth(c *gin.Context) {
	var instances int
	var now int
	version := -1
	if !s.onLoop(c, func() {
		instances = len(s.engine.Instances())
		now = s.engine.Clock().Now()
		if s.listings != nil {
			version = s.listings.Version()
		}
	}) {
		return
	}
	viewers := 0
	if s.viewers != nil {
		viewers = s.viewers.Len()
	}
	body := gin.H{
		"status":    "ok",
		"uptime":    time.Since(s.startTime).String(),
		"tick":      now,
		"instances": instances,
		"viewers":   viewers,
	}
	if version >= 0 {
		body["catalog_version"] = version
	}
	c.JSON(http.StatusOK, body)
}

// handleListings returns the live listings in the catalogue file format.
func (s *Server) handleListings(c *gin.Context) {
	var listings []catalog.Listing
	var version int
	if !s.onLoop(c, func() {
		listings = s.listings.Listings()
		version = s.listings.Version()
	}) {
		return
	}
	data, err := catalog.Marshal(listings)
	if err != nil {
		logging.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Catalog-Version", strconv.Itoa(version))
	c.Data(http.StatusOK, "application/yaml", data)
}

func (s *Server) handleTemplates(c *gin.Context) {
	var out []templateView
	if !s.onLoop(c, func() {
		reg := s.engine.Templates()
		for _, name := range reg.Names() {
			t, _ := reg.Find(name)
			out = append(out, templateView{
				Name:      t.Name(),
				Rows:      t.Rows(),
				PageSlots: len(t.PageSlots()),
				Fixed:     len(t.FixedSlots()),
			})
		}
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

func (s *Server) handleInstances(c *gin.Context) {
	out := []instanceView{}
	if !s.onLoop(c, func() {
		for _, in := range s.engine.Instances() {
			out = append(out, describe(in, false))
		}
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"instances": out})
}

func (s *Server) handleInstance(c *gin.Context) {
	id := c.Param("id")
	var view instanceView
	found := false
	if !s.onLoop(c, func() {
		if in, ok := s.engine.Instance(id); ok {
			view, found = describe(in, true), true
		}
	}) {
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such instance"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func describe(in *menu.Instance, full bool) instanceView {
	v := instanceView{
		ID:        in.ID(),
		Template:  in.Template().Name(),
		Viewer:    in.Viewer().Name(),
		Page:      in.Page(),
		Pages:     in.PageCount(),
		Items:     in.ItemCount(),
		Animating: in.Animating(),
	}
	if s := in.Surface(); s != nil {
		v.Window = s.ID()
		if full {
			v.Title = s.Title()
		}
	}
	if full {
		v.Cells = in.Cells()
	}
	return v
}
