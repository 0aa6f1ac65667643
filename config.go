package marbling

import (
	"fmt"
	"math"
)

// Tuned defaults. The maturity fraction and opacity steps were found by
// trial; they are exposed as configuration rather than derived.
const (
	DefaultDetail          = 1000
	DefaultDropCap         = 60
	DefaultRadius          = 100.0
	DefaultOpacityIncrease = 0.02
	DefaultOpacityDecrease = 0.004
	DefaultMatureFraction  = 1.0 / 3.0
	DefaultEpsilon         = 1e-9
	DefaultWorkers         = 1
)

// Config holds the engine parameters. All fields are fixed once the engine
// is constructed.
type Config struct {
	// Detail is the number of vertices in every drop's ring.
	// Marbling cost per spawn is O(drops × Detail).
	Detail int

	// DropCap is the capacity of the drop buffer. Spawning beyond it
	// evicts the oldest drop.
	DropCap int

	// OpacityIncrease is added to a young drop's opacity every tick.
	OpacityIncrease float64

	// OpacityDecrease is subtracted from a mature drop's opacity every tick.
	OpacityDecrease float64

	// DefaultRadius is used by SpawnDefault.
	DefaultRadius float64

	// MatureAfter is the marble count a drop must exceed before it turns
	// mature and starts fading. Zero means DropCap × DefaultMatureFraction,
	// so a threshold of exactly zero cannot be requested; any value in
	// (0, 1) matures a drop on its first marble.
	MatureAfter float64

	// Epsilon is the lower bound applied to a vertex's squared distance
	// from a new drop's center, keeping the radial stretch finite.
	Epsilon float64

	// Workers is the number of goroutines marbling existing drops during
	// a spawn. 1 marbles sequentially; 0 uses GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the tuned default configuration.
func DefaultConfig() Config {
	return Config{
		Detail:          DefaultDetail,
		DropCap:         DefaultDropCap,
		OpacityIncrease: DefaultOpacityIncrease,
		OpacityDecrease: DefaultOpacityDecrease,
		DefaultRadius:   DefaultRadius,
		Epsilon:         DefaultEpsilon,
		Workers:         DefaultWorkers,
	}
}

// Validate reports the first unusable field, wrapped in
// ErrInvalidConfiguration.
func (c Config) Validate() error {
	switch {
	case c.Detail <= 0:
		return fmt.Errorf("%w: detail must be positive, got %d", ErrInvalidConfiguration, c.Detail)
	case c.DropCap <= 0:
		return fmt.Errorf("%w: drop cap must be positive, got %d", ErrInvalidConfiguration, c.DropCap)
	case !nonNegative(c.OpacityIncrease):
		return fmt.Errorf("%w: opacity increase must be >= 0, got %v", ErrInvalidConfiguration, c.OpacityIncrease)
	case !nonNegative(c.OpacityDecrease):
		return fmt.Errorf("%w: opacity decrease must be >= 0, got %v", ErrInvalidConfiguration, c.OpacityDecrease)
	case !(c.DefaultRadius > 0) || math.IsInf(c.DefaultRadius, 0):
		return fmt.Errorf("%w: default radius must be positive, got %v", ErrInvalidConfiguration, c.DefaultRadius)
	case !nonNegative(c.MatureAfter):
		return fmt.Errorf("%w: mature threshold must be >= 0, got %v", ErrInvalidConfiguration, c.MatureAfter)
	case !(c.Epsilon > 0) || math.IsInf(c.Epsilon, 0):
		return fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidConfiguration, c.Epsilon)
	case !stretchFinite(c.DefaultRadius, c.Epsilon):
		return fmt.Errorf("%w: default radius %v overflows with epsilon %v", ErrInvalidConfiguration, c.DefaultRadius, c.Epsilon)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfiguration, c.Workers)
	}
	return nil
}

// MatureThreshold returns the marble count a drop must exceed to mature.
func (c Config) MatureThreshold() float64 {
	if c.MatureAfter > 0 {
		return c.MatureAfter
	}
	return float64(c.DropCap) * DefaultMatureFraction
}

// stretchFinite reports whether the largest stretch factor a drop of
// radius r can apply, sqrt(1 + r²/eps), is finite.
func stretchFinite(r, eps float64) bool {
	return !math.IsInf(r*r/eps, 0)
}

func nonNegative(x float64) bool {
	return x >= 0 && !math.IsInf(x, 0)
}
