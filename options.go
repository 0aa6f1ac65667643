package marbling

// EngineOption configures an Engine during creation.
// Options are applied on top of DefaultConfig in order.
//
// Example:
//
//	// Default engine
//	eng, err := marbling.NewEngine()
//
//	// Coarser rings, smaller history
//	eng, err := marbling.NewEngine(marbling.WithDetail(200), marbling.WithDropCap(30))
type EngineOption func(*Config)

// WithConfig replaces the whole configuration.
// Options listed after it still apply.
func WithConfig(cfg Config) EngineOption {
	return func(c *Config) {
		*c = cfg
	}
}

// WithDetail sets the number of vertices per drop ring.
func WithDetail(n int) EngineOption {
	return func(c *Config) {
		c.Detail = n
	}
}

// WithDropCap sets the drop buffer capacity.
func WithDropCap(n int) EngineOption {
	return func(c *Config) {
		c.DropCap = n
	}
}

// WithOpacitySteps sets the per-tick fade-in and fade-out steps.
func WithOpacitySteps(increase, decrease float64) EngineOption {
	return func(c *Config) {
		c.OpacityIncrease = increase
		c.OpacityDecrease = decrease
	}
}

// WithDefaultRadius sets the radius used by SpawnDefault.
func WithDefaultRadius(r float64) EngineOption {
	return func(c *Config) {
		c.DefaultRadius = r
	}
}

// WithMatureAfter sets the marble count a drop must exceed to mature.
func WithMatureAfter(n float64) EngineOption {
	return func(c *Config) {
		c.MatureAfter = n
	}
}

// WithEpsilon sets the squared-distance floor used by the marbling
// transform.
func WithEpsilon(eps float64) EngineOption {
	return func(c *Config) {
		c.Epsilon = eps
	}
}

// WithWorkers sets how many goroutines marble existing drops during a
// spawn. 1 is sequential; 0 uses GOMAXPROCS.
//
// Spawn still returns only after every drop has been marbled, so the
// single-threaded frame loop contract is unchanged.
func WithWorkers(n int) EngineOption {
	return func(c *Config) {
		c.Workers = n
	}
}
