// Package server coordinates the long-running pieces of the legends
// process: the HTTP listener plus whichever storage keepalives the
// active configuration needs. Components start concurrently and stop
// in reverse registration order on SIGINT, SIGTERM, a component
// failure, or context cancellation.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Component is a long-running part of the process. Run blocks until
// the component exits; Shutdown asks it to stop and may be called
// while Run is still blocked.
type Component interface {
	Run() error
	Shutdown()
}

// ComponentFunc adapts a run/shutdown function pair into a Component.
type ComponentFunc struct {
	RunFn      func() error
	ShutdownFn func()
}

func (c *ComponentFunc) Run() error { return c.RunFn() }

func (c *ComponentFunc) Shutdown() {
	if c.ShutdownFn != nil {
		c.ShutdownFn()
	}
}

type entry struct {
	name      string
	component Component
}

// Group runs a set of named components as one process.
type Group struct {
	log     *zap.Logger
	mu      sync.Mutex
	entries []entry

	// failed receives the first component error. Buffered so a failing
	// component never blocks after Serve has moved on.
	failed chan error
}

// NewGroup creates an empty component group.
//
// Precondition: log must be non-nil.
func NewGroup(log *zap.Logger) *Group {
	return &Group{log: log}
}

// Add registers a component. Components start in registration order
// and shut down in reverse.
//
// Precondition: name must be non-empty; c must be non-nil.
func (g *Group) Add(name string, c Component) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append(g.entries, entry{name: name, component: c})
}

// Serve starts every component and blocks until a termination signal
// arrives, the context is cancelled, or a component's Run returns an
// error. It then shuts the group down in reverse order and returns the
// triggering component error, if any.
//
// Postcondition: every component's Shutdown has run when Serve returns.
func (g *Group) Serve(ctx context.Context) error {
	start := g.startAll()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var cause error
	select {
	case sig := <-sigCh:
		g.log.Info("signal received", zap.String("signal", sig.String()))
	case cause = <-g.failed:
		g.log.Error("component failed", zap.Error(cause))
	case <-ctx.Done():
		g.log.Info("context cancelled")
	}

	g.stopAll()
	g.log.Info("process stopped", zap.Duration("uptime", time.Since(start)))
	return cause
}

func (g *Group) startAll() time.Time {
	start := time.Now()
	g.failed = make(chan error, len(g.entries))
	for _, e := range g.entries {
		e := e
		go func() {
			g.log.Info("component starting", zap.String("component", e.name))
			if err := e.component.Run(); err != nil {
				g.failed <- fmt.Errorf("component %s: %w", e.name, err)
			}
		}()
	}
	g.log.Info("all components started",
		zap.Int("count", len(g.entries)),
		zap.Duration("elapsed", time.Since(start)))
	return start
}

func (g *Group) stopAll() {
	for i := len(g.entries) - 1; i >= 0; i-- {
		e := g.entries[i]
		stopStart := time.Now()
		e.component.Shutdown()
		g.log.Info("component stopped",
			zap.String("component", e.name),
			zap.Duration("elapsed", time.Since(stopStart)))
	}
}
