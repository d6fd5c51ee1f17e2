// Package dispatch provides an in-process fire-and-forget job dispatcher.
package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"confcentral/internal/domain"
)

// Handler processes one background job payload.
type Handler func(ctx context.Context, payload map[string]string) error

// Dispatcher runs registered handlers in their own goroutine. Submission
// never blocks on or observes handler failure; failures are only logged.
type Dispatcher struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	handlers map[string]Handler
	wg       sync.WaitGroup
}

// NewDispatcher returns an empty dispatcher. Register handlers before
// serving requests.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger:   logger,
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to a job name, replacing any previous binding.
func (d *Dispatcher) Register(job string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[job] = h
}

// Submit runs the job's handler in the background. The handler gets a
// context detached from the request's cancellation so the job outlives the
// triggering request.
func (d *Dispatcher) Submit(ctx context.Context, job string, payload map[string]string) {
	d.mu.RLock()
	h, ok := d.handlers[job]
	d.mu.RUnlock()
	if !ok {
		d.logger.Warn("no handler registered for job", "job", job)
		return
	}

	jobCtx := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := h(jobCtx, payload); err != nil {
			d.logger.Error("background job failed", "job", job, "err", err)
		}
	}()
}

// Wait blocks until all submitted jobs have finished. Used on shutdown and
// in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

var _ domain.JobDispatcher = (*Dispatcher)(nil)
