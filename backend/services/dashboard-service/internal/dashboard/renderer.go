package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"airwatch/backend/services/dashboard-service/internal/reading"
)

// Generator produces one Reading Set per call.
type Generator interface {
	Generate() reading.Set
}

// Display receives every rendered snapshot. A failing display is logged and
// never interrupts the render loop.
type Display interface {
	Apply(ctx context.Context, snap Snapshot) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(ctx context.Context, snap Snapshot) error

// Apply calls f.
func (f DisplayFunc) Apply(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

// Renderer owns the dashboard state and drives generate-then-render passes.
type Renderer struct {
	gen      Generator
	displays []Display
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.RWMutex
	state   State
	renders uint64
}

// NewRenderer builds a renderer in the initial, blank state.
func NewRenderer(gen Generator, logger *zap.Logger, displays ...Display) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		gen:      gen,
		displays: displays,
		logger:   logger,
		now:      time.Now,
	}
}

// Attach adds displays. It must be called before the first tick.
func (r *Renderer) Attach(displays ...Display) {
	r.displays = append(r.displays, displays...)
}

// Current returns a copy of the state the slots show.
func (r *Renderer) Current() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Snapshot returns the wire view of the current state.
func (r *Renderer) Snapshot() Snapshot {
	return r.Current().Snapshot()
}

// Renders is the number of completed render passes.
func (r *Renderer) Renders() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.renders
}

// Tick runs one generate-and-render cycle stamped with the current time.
func (r *Renderer) Tick(ctx context.Context) State {
	return r.tickAt(ctx, r.now())
}

func (r *Renderer) tickAt(ctx context.Context, at time.Time) State {
	set := r.gen.Generate()

	r.mu.Lock()
	next := Next(r.state, set, at)
	r.state = next
	r.mu.Unlock()

	snap := next.Snapshot()
	for _, d := range r.displays {
		if err := d.Apply(ctx, snap); err != nil {
			r.logger.Warn("display update failed", zap.Uint64("tick", next.Tick), zap.Error(err))
		}
	}

	r.mu.Lock()
	r.renders++
	r.mu.Unlock()

	r.logger.Debug("dashboard rendered", zap.Uint64("tick", next.Tick))
	return next
}

// Run renders once per received tick until ctx is done or ticks is closed.
// Ticks are handled strictly one after another.
func (r *Renderer) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case at, ok := <-ticks:
			if !ok {
				return nil
			}
			r.tickAt(ctx, at)
		}
	}
}

// RunEvery drives Run from a ticker with the given period and stops the
// ticker once Run returns.
func (r *Renderer) RunEvery(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	r.logger.Info("dashboard refresh started", zap.Duration("period", period))
	return r.Run(ctx, ticker.C)
}
