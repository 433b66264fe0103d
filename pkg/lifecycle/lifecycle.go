// Package lifecycle coordinates named startup and shutdown hooks and exposes
// the resulting readiness to health endpoints.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
)

// Coordinator runs startup hooks concurrently, records which of them failed,
// and drains shutdown hooks when the service stops.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	startup  sync.WaitGroup
	shutdown sync.WaitGroup

	mu      sync.RWMutex
	started bool
	failed  map[string]error
	pending map[string]struct{}
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:     ctx,
		cancel:  cancel,
		failed:  make(map[string]error),
		pending: make(map[string]struct{}),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn concurrently. A returned error marks the named
// subsystem as failed and keeps the coordinator from becoming ready.
func (c *Coordinator) OnStartup(name string, fn func(ctx context.Context) error) {
	c.startup.Go(func() {
		if err := fn(c.ctx); err != nil {
			c.mu.Lock()
			c.failed[name] = err
			c.mu.Unlock()
		}
	})
}

// OnShutdown runs fn concurrently. Hooks block on <-Context().Done() before
// releasing their resources.
func (c *Coordinator) OnShutdown(name string, fn func()) {
	c.mu.Lock()
	c.pending[name] = struct{}{}
	c.mu.Unlock()

	c.shutdown.Go(func() {
		fn()
		c.mu.Lock()
		delete(c.pending, name)
		c.mu.Unlock()
	})
}

// WaitForStartup blocks until every startup hook has returned and reports
// the joined hook failures.
func (c *Coordinator) WaitForStartup() error {
	c.startup.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true

	errs := make([]error, 0, len(c.failed))
	for _, name := range slices.Sorted(maps.Keys(c.failed)) {
		errs = append(errs, fmt.Errorf("%s: %w", name, c.failed[name]))
	}
	return errors.Join(errs...)
}

// Ready reports whether startup finished without failures.
func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.started && len(c.failed) == 0
}

// Failures returns the startup error message of each failed subsystem.
func (c *Coordinator) Failures() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.failed))
	for name, err := range c.failed {
		out[name] = err.Error()
	}
	return out
}

// Shutdown cancels the context and waits up to timeout for the shutdown
// hooks. The timeout error names the hooks still running.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdown.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		c.mu.RLock()
		stuck := slices.Sorted(maps.Keys(c.pending))
		c.mu.RUnlock()
		return fmt.Errorf("shutdown timeout after %v: waiting on %v", timeout, stuck)
	}
}
