package game

import (
	"context"
	"time"
)

// Scheduler drives Engine.Step at a fixed cadence and owns the loop
// lifecycle. In graphical mode the window loop calls Step directly at the
// display's refresh cadence; the scheduler serves headless runs and tests.
// After Start, the scheduler goroutine is the engine's only writer.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
	onTick   func()

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler ticking at the given rate.
func NewScheduler(e *Engine, fps int) *Scheduler {
	if fps <= 0 {
		fps = 60
	}
	return &Scheduler{
		engine:   e,
		interval: time.Second / time.Duration(fps),
	}
}

// OnTick registers a callback invoked after every engine tick, on the
// scheduler goroutine. Set it before Start.
func (s *Scheduler) OnTick(fn func()) {
	s.onTick = fn
}

// Start enters the tick loop on its own goroutine and returns immediately.
// Starting a running scheduler is a no-op.
func (s *Scheduler) Start(parent context.Context) {
	if s.done != nil {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.engine.Step()
			if s.onTick != nil {
				s.onTick()
			}
		}
	}
}

// Stop cancels the loop and waits for it to exit: once Stop returns, no
// further tick executes. Stopping an idle scheduler is a no-op.
func (s *Scheduler) Stop() {
	if s.done == nil {
		return
	}
	s.cancel()
	<-s.done
	s.done = nil
	s.cancel = nil
}
