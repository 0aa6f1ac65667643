// Package schedule decides when and where new drops are injected.
//
// A Scheduler counts frames and produces a spawn Request on every frame
// whose number is prime, which gives a burst of drops at start-up that
// thins out over time. Positions are uniform inside the canvas, radii are
// uniform in [MinRadius, MaxRadius] and colors come from a Palette.
//
//	sch, _ := schedule.New(schedule.Config{Width: 800, Height: 600, Seed: 1})
//	for {
//	    if _, err := sch.Apply(eng); err != nil {
//	        return err
//	    }
//	    _ = eng.Frame(s)
//	}
package schedule

import (
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/marbling"
)

// millerRabinRounds is passed to big.Int.ProbablyPrime, which also runs a
// Baillie-PSW test and is exact below 2^64.
const millerRabinRounds = 20

// Request describes one drop to spawn.
// R is zero when the engine's default radius should be used.
type Request struct {
	X, Y, R float64
	Color   marbling.Color
}

// Palette picks a drop color.
type Palette func(rng *rand.Rand) marbling.Color

// RandomRGB draws every channel uniformly from [0, 255].
func RandomRGB(rng *rand.Rand) marbling.Color {
	return marbling.RGB(uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)))
}

// HappyPalette returns a palette with a uniform hue and saturation and value
// drawn from [minS, 1] and [minV, 1].
func HappyPalette(minS, minV float64) Palette {
	minS = math.Max(0, math.Min(1, minS))
	minV = math.Max(0, math.Min(1, minV))
	return func(rng *rand.Rand) marbling.Color {
		h := rng.Float64() * 360
		s := minS + rng.Float64()*(1-minS)
		v := minV + rng.Float64()*(1-minV)
		r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
		return marbling.RGB(r, g, b)
	}
}

// Fixed always returns c.
func Fixed(c marbling.Color) Palette {
	return func(*rand.Rand) marbling.Color { return c }
}

// Config configures a Scheduler.
type Config struct {
	// Width and Height bound the spawn positions.
	Width, Height float64

	// MinRadius and MaxRadius bound the radius. Both zero means the
	// engine's default radius.
	MinRadius, MaxRadius float64

	// Palette picks colors. Default: RandomRGB.
	Palette Palette

	// Seed makes the sequence reproducible.
	Seed uint64
}

// Scheduler produces spawn requests on prime frames.
//
// Scheduler is NOT safe for concurrent use.
type Scheduler struct {
	cfg   Config
	rng   *rand.Rand
	frame uint64
	n     big.Int
}

// New creates a Scheduler.
func New(cfg Config) (*Scheduler, error) {
	if !(cfg.Width > 0) || !(cfg.Height > 0) {
		return nil, fmt.Errorf("%w: canvas %gx%g", marbling.ErrInvalidConfiguration, cfg.Width, cfg.Height)
	}
	if cfg.MinRadius < 0 || cfg.MaxRadius < cfg.MinRadius || (cfg.MaxRadius > 0 && cfg.MinRadius == 0) {
		return nil, fmt.Errorf("%w: radius range [%g, %g]", marbling.ErrInvalidConfiguration, cfg.MinRadius, cfg.MaxRadius)
	}
	if cfg.Palette == nil {
		cfg.Palette = RandomRGB
	}
	return &Scheduler{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Resize changes the canvas that bounds spawn positions. The frame counter
// and random sequence continue.
func (s *Scheduler) Resize(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("%w: canvas %gx%g", marbling.ErrInvalidConfiguration, width, height)
	}
	s.cfg.Width, s.cfg.Height = width, height
	return nil
}

// Frame returns the number of frames counted so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Next advances the frame counter and returns a request if the new frame
// number is prime.
func (s *Scheduler) Next() (Request, bool) {
	s.frame++
	s.n.SetUint64(s.frame)
	if !s.n.ProbablyPrime(millerRabinRounds) {
		return Request{}, false
	}
	return s.Draw(), true
}

// Draw returns a random request without touching the frame counter.
func (s *Scheduler) Draw() Request {
	req := Request{
		X: s.rng.Float64() * s.cfg.Width,
		Y: s.rng.Float64() * s.cfg.Height,
	}
	if s.cfg.MaxRadius > 0 {
		req.R = s.cfg.MinRadius + s.rng.Float64()*(s.cfg.MaxRadius-s.cfg.MinRadius)
	}
	req.Color = s.cfg.Palette(s.rng)
	return req
}

// Apply advances one frame and spawns into eng if a request is due.
// It returns nil and no error on frames without a spawn.
func (s *Scheduler) Apply(eng *marbling.Engine) (*marbling.Drop, error) {
	req, ok := s.Next()
	if !ok {
		return nil, nil
	}
	return Spawn(eng, req)
}

// Spawn injects req into eng, using the default radius when req.R is zero.
func Spawn(eng *marbling.Engine, req Request) (*marbling.Drop, error) {
	if req.R == 0 {
		return eng.SpawnDefault(req.X, req.Y, req.Color)
	}
	return eng.Spawn(req.X, req.Y, req.R, req.Color)
}

// IsPrime reports whether n is prime.
func IsPrime(n uint64) bool {
	return new(big.Int).SetUint64(n).ProbablyPrime(millerRabinRounds)
}
