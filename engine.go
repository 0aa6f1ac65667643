package marbling

import (
	"fmt"
	"iter"
	"math"
	"sync/atomic"

	"github.com/gogpu/marbling/internal/parallel"
)

// Engine owns the drop history and applies the marbling transform.
//
// A frame loop drives it with one Frame call per frame and at most one
// Spawn in between. The Engine is not safe for concurrent use; call it from
// a single goroutine.
type Engine struct {
	cfg         Config
	matureAfter float64
	drops       *dropBuffer
	pool        *parallel.WorkerPool // nil when marbling sequentially
	points      []Vec2               // render scratch, reused across drops
	stats       Stats
	closed      bool
}

// Stats are running counters for an Engine.
type Stats struct {
	// Spawned is the number of successful Spawn calls.
	Spawned uint64
	// Evicted is the number of drops dropped by the buffer.
	Evicted uint64
	// Clamped is the number of vertex displacements that hit the
	// squared-distance floor.
	Clamped uint64
}

// NewEngine creates an engine from DefaultConfig modified by opts.
// It returns ErrInvalidConfiguration if the result does not validate.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		matureAfter: cfg.MatureThreshold(),
		drops:       newDropBuffer(cfg.DropCap),
		points:      make([]Vec2, 0, cfg.Detail),
	}
	if cfg.Workers != 1 {
		e.pool = parallel.NewWorkerPool(cfg.Workers)
	}

	Logger().Info("marbling: engine created",
		"detail", cfg.Detail,
		"dropcap", cfg.DropCap,
		"matureAfter", e.matureAfter,
		"parallel", e.pool != nil)
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Spawn places a new drop of radius r at (x, y).
//
// The new drop starts as a perfect circle. Every drop already in the buffer
// is displaced by it, permanently, before it is appended; if the buffer is
// full the oldest drop is evicted. Spawn performs no rendering.
func (e *Engine) Spawn(x, y, r float64, c Color) (*Drop, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if !(r > 0) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("%w: radius must be positive and finite, got %v", ErrInvalidArgument, r)
	}
	if !stretchFinite(r, e.cfg.Epsilon) {
		return nil, fmt.Errorf("%w: radius %v overflows the stretch factor", ErrInvalidArgument, r)
	}
	if !V2(x, y).IsFinite() {
		return nil, fmt.Errorf("%w: origin must be finite, got (%v, %v)", ErrInvalidArgument, x, y)
	}

	d := newDrop(x, y, r, c, e.cfg.Detail)
	if clamped := e.marbleAll(d, r); clamped > 0 {
		e.stats.Clamped += uint64(clamped)
		Logger().Warn("marbling: vertices on drop center clamped",
			"count", clamped, "x", x, "y", y)
	}

	evicted := e.drops.push(d)
	e.stats.Spawned++
	Logger().Debug("marbling: drop spawned",
		"x", x, "y", y, "r", r, "color", c.String(), "drops", e.drops.size())

	if evicted != nil {
		e.stats.Evicted++
		Logger().Debug("marbling: drop evicted",
			"x", evicted.origin.X, "y", evicted.origin.Y, "marbles", evicted.marbleCount)
	}
	return d, nil
}

// SpawnDefault spawns a drop with the configured default radius.
func (e *Engine) SpawnDefault(x, y float64, c Color) (*Drop, error) {
	return e.Spawn(x, y, e.cfg.DefaultRadius, c)
}

// marbleAll displaces every buffered drop by d and returns the number of
// clamped vertices. Each drop's transform depends only on d, so the buffer
// may be split across the worker pool.
func (e *Engine) marbleAll(d *Drop, r float64) int {
	n := e.drops.size()
	eps, mature := e.cfg.Epsilon, e.matureAfter

	if e.pool == nil || n < 2 {
		clamped := 0
		for _, other := range e.drops.all() {
			clamped += d.marble(other, r, eps, mature)
		}
		return clamped
	}

	var clamped atomic.Int64
	e.pool.ForEachChunk(n, func(lo, hi int) {
		c := 0
		for i := lo; i < hi; i++ {
			c += d.marble(e.drops.at(i), r, eps, mature)
		}
		clamped.Add(int64(c))
	})
	return int(clamped.Load())
}

// Len returns the number of buffered drops.
func (e *Engine) Len() int {
	return e.drops.size()
}

// Cap returns the buffer capacity.
func (e *Engine) Cap() int {
	return e.drops.capacity()
}

// At returns the i-th buffered drop, oldest first.
// It panics if i is out of range.
func (e *Engine) At(i int) *Drop {
	if i < 0 || i >= e.drops.size() {
		panic(fmt.Sprintf("marbling: drop index %d out of range [0, %d)", i, e.drops.size()))
	}
	return e.drops.at(i)
}

// Drops yields the buffered drops oldest first.
// Callers must not Spawn while iterating.
func (e *Engine) Drops() iter.Seq2[int, *Drop] {
	return e.drops.all()
}

// Snapshots copies the render state of every buffered drop, oldest first.
func (e *Engine) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, e.drops.size())
	for _, d := range e.drops.all() {
		out = append(out, d.Snapshot())
	}
	return out
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Tick advances every drop's opacity by one frame: young drops fade in,
// mature drops fade out.
func (e *Engine) Tick() {
	inc, dec := e.cfg.OpacityIncrease, e.cfg.OpacityDecrease
	for _, d := range e.drops.all() {
		d.tick(inc, dec)
	}
}

// Render paints every buffered drop onto s, oldest first, at its current
// opacity. Fully transparent drops are skipped. Render does not age drops.
func (e *Engine) Render(s Surface) error {
	if e.closed {
		return ErrClosed
	}
	for i, d := range e.drops.all() {
		fill := d.Fill()
		if fill.A == 0 {
			continue
		}
		e.points = d.AppendPoints(e.points[:0])
		if err := s.FillPolygon(e.points, fill); err != nil {
			return fmt.Errorf("marbling: render drop %d: %w", i, err)
		}
	}
	return nil
}

// Frame runs one frame: clear s, advance every drop's opacity once, render,
// and flush s if it implements Flusher.
func (e *Engine) Frame(s Surface) error {
	if e.closed {
		return ErrClosed
	}
	s.Clear()
	e.Tick()
	if err := e.Render(s); err != nil {
		return err
	}
	if f, ok := s.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("marbling: flush: %w", err)
		}
	}
	return nil
}

// Close releases the worker pool. The engine must not be used afterwards.
// Close is idempotent.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.pool != nil {
		e.pool.Close()
	}
	Logger().Info("marbling: engine closed",
		"spawned", e.stats.Spawned, "evicted", e.stats.Evicted)
	return nil
}
