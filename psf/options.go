package psf

import (
	"log/slog"
)

// Strategy selects how the kernel is read from the singular spectrum.
type Strategy int

const (
	// StrategyKnee picks the degree at the knee of the normalized spectrum
	// and uses the right singular vector of that index.
	StrategyKnee Strategy = iota
	// StrategyNullVector uses the right singular vector of the smallest
	// singular value at the full maximum size.
	StrategyNullVector
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyKnee:
		return "knee"
	case StrategyNullVector:
		return "null-vector"
	default:
		return "unknown"
	}
}

// Option configures axis estimation.
type Option func(*config)

type config struct {
	strategy Strategy
	logger   *slog.Logger
	constTol float64
}

func defaultConfig() config {
	return config{
		strategy: StrategyKnee,
		constTol: 1e-12,
	}
}

// WithStrategy sets the kernel extraction strategy.
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithLogger routes degenerate-kernel warnings to l. A nil logger disables
// them.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithConstantTolerance sets the peak-to-peak range below which a sequence
// is treated as constant.
func WithConstantTolerance(tol float64) Option {
	return func(c *config) {
		if tol >= 0 {
			c.constTol = tol
		}
	}
}
