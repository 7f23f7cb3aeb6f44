package deconv

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-bid/psf"
	"github.com/cwbudde/algo-bid/quality"
)

// Config controls PSF estimation and restoration.
type Config struct {
	// MaxPSFSize bounds the estimated kernel length along each axis. It must
	// be at least 1 and smaller than both image dimensions.
	MaxPSFSize int

	// Regularization is added to the diagonal of both blur operators.
	// Typical values: 1e-8 to 1e-3.
	Regularization float64

	// SSIM selects the window geometry of the reported SSIM score.
	SSIM quality.SSIMMode

	// Clip limits restored samples to [0, 1].
	Clip bool

	// Strategy selects how each axis kernel is read from its spectrum.
	Strategy psf.Strategy

	// ConstantTolerance is the peak-to-peak range at or below which both
	// sequences of an axis count as constant and the axis falls back to a
	// uniform kernel.
	ConstantTolerance float64

	// Logger receives degenerate-PSF warnings. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxPSFSize:     15,
		Regularization: 1e-6,
		SSIM:           quality.SSIM2D,
		Clip:           true,
		Strategy:       psf.StrategyKnee,

		ConstantTolerance: 1e-12,
	}
}

// Validate checks the image-independent constraints of c.
func (c Config) Validate() error {
	if c.MaxPSFSize < 1 {
		return fmt.Errorf("%w: max psf size must be >= 1, got %d", ErrInvalidInput, c.MaxPSFSize)
	}
	if math.IsNaN(c.Regularization) || math.IsInf(c.Regularization, 0) || c.Regularization < 0 {
		return fmt.Errorf("%w: regularization must be finite and >= 0, got %v", ErrInvalidInput, c.Regularization)
	}
	if math.IsNaN(c.ConstantTolerance) || math.IsInf(c.ConstantTolerance, 0) || c.ConstantTolerance < 0 {
		return fmt.Errorf("%w: constant tolerance must be finite and >= 0, got %v", ErrInvalidInput, c.ConstantTolerance)
	}
	switch c.SSIM {
	case quality.SSIM2D, quality.SSIMFlat:
	default:
		return fmt.Errorf("%w: unknown ssim mode %d", ErrInvalidInput, c.SSIM)
	}
	switch c.Strategy {
	case psf.StrategyKnee, psf.StrategyNullVector:
	default:
		return fmt.Errorf("%w: unknown strategy %d", ErrInvalidInput, c.Strategy)
	}
	return nil
}

func (c Config) axisOptions() []psf.Option {
	return []psf.Option{
		psf.WithStrategy(c.Strategy),
		psf.WithLogger(c.Logger),
		psf.WithConstantTolerance(c.ConstantTolerance),
	}
}
