package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/gridmenu/internal/backend"
	"github.com/atomicstack/gridmenu/internal/clock"
	"github.com/atomicstack/gridmenu/internal/data/dispatcher"
	"github.com/atomicstack/gridmenu/internal/grid"
	"github.com/atomicstack/gridmenu/internal/httpserver"
	"github.com/atomicstack/gridmenu/internal/logging"
	"github.com/atomicstack/gridmenu/internal/logging/events"
	"github.com/atomicstack/gridmenu/internal/menu"
	"github.com/atomicstack/gridmenu/internal/screens"
	"github.com/atomicstack/gridmenu/internal/state"
	"github.com/atomicstack/gridmenu/internal/transport"
	"github.com/atomicstack/gridmenu/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Listen          string
	CatalogPath     string
	PollInterval    time.Duration
	Tick            time.Duration
	RefreshInterval int
	Console         bool
	Menu            string
}

// App wires the engine loop to its data source and viewers.
type App struct {
	cfg        Config
	loop       *clock.Loop
	engine     *menu.Engine
	store      state.ListingStore
	dispatcher *dispatcher.Dispatcher
	hub        *transport.Hub
	server     *httpserver.Server
	ready      chan struct{}
}

// New builds the engine and registers the menus. Nothing runs until Run.
func New(cfg Config) (*App, error) {
	loop := clock.NewLoop(clock.NewScheduler(), cfg.Tick)
	engine := menu.NewEngine(grid.NewWindowProvider(), loop.Clock(), menu.WithRefreshInterval(cfg.RefreshInterval))
	store := state.NewListingStore()
	a := &App{
		cfg:        cfg,
		loop:       loop,
		engine:     engine,
		store:      store,
		dispatcher: dispatcher.New(store, engine),
		ready:      make(chan struct{}),
	}
	if _, err := screens.Register(engine, screens.Deps{
		Store:   store,
		Changed: func() { a.dispatcher.Broadcast() },
	}); err != nil {
		return nil, fmt.Errorf("register menus: %w", err)
	}
	if cfg.Menu != "" {
		if _, ok := engine.Templates().Find(cfg.Menu); !ok {
			return nil, fmt.Errorf("menu %q: %w", cfg.Menu, menu.ErrUnknownTemplate)
		}
	}
	loop.OnStop(engine.Shutdown)
	if cfg.Listen != "" {
		a.hub = transport.NewHub(loop, engine, cfg.Menu)
		a.server = httpserver.NewServer(cfg.Listen, loop, engine, a.hub)
		a.server.ServeListings(store)
	}
	return a, nil
}

// Ready is closed once the HTTP listener is bound.
func (a *App) Ready() <-chan struct{} { return a.ready }

// Addr returns the bound admin address, or "" when the API is disabled.
func (a *App) Addr() string {
	if a.server == nil {
		return ""
	}
	return a.server.Addr()
}

// Run serves until ctx is cancelled, the console quits or a component fails.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.loop.Run(gctx) })

	if a.cfg.CatalogPath != "" {
		watcher := backend.NewWatcher(a.cfg.CatalogPath, a.cfg.PollInterval)
		g.Go(func() error {
			defer watcher.Stop()
			return a.forward(gctx, watcher)
		})
	}

	if a.server != nil {
		if err := a.server.Start(); err != nil {
			cancel()
			_ = g.Wait()
			return fmt.Errorf("listen on %s: %w", a.cfg.Listen, err)
		}
		g.Go(func() error {
			<-gctx.Done()
			a.hub.Close()
			return a.server.Stop()
		})
	}
	close(a.ready)

	if a.cfg.Console {
		g.Go(func() error {
			defer cancel()
			return a.runConsole(gctx)
		})
	}

	err := g.Wait()
	reason := "context done"
	if err != nil {
		reason = err.Error()
	}
	events.App.Stop(reason)
	return err
}

// forward hands catalogue changes to the dispatcher on the engine loop.
func (a *App) forward(ctx context.Context, w *backend.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events():
			if !ok {
				return nil
			}
			if err := a.loop.Do(func() { a.dispatcher.Handle(evt) }); err != nil {
				if errors.Is(err, clock.ErrLoopStopped) {
					return nil
				}
				return err
			}
		}
	}
}

func (a *App) runConsole(ctx context.Context) error {
	name := os.Getenv("USER")
	if name == "" {
		name = "console"
	}
	console := ui.NewConsole(name)
	defer console.Close()
	model := ui.NewModel(console, a.loop, a.engine, a.cfg.Menu)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		logging.Error(err)
	}
	return err
}

// Run bootstraps and serves the application until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	a, err := New(cfg)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
