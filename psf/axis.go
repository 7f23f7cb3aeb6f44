package psf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/cwbudde/algo-bid/raster"
	"github.com/cwbudde/algo-bid/resultant"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Errors returned by PSF estimation.
var (
	ErrInvalidSize = errors.New("psf: invalid kernel size")
	ErrTooSmall    = errors.New("psf: image too small")
	ErrNonFinite   = errors.New("psf: non-finite sample")
	ErrEmptyKernel = errors.New("psf: empty kernel")
	ErrZeroSum     = errors.New("psf: kernel sums to zero")
	ErrInvalidAxis = errors.New("psf: invalid axis")
)

// Axis selects the image direction a 1D kernel is estimated along.
type Axis int

const (
	// Horizontal estimates the row kernel from the first two rows.
	Horizontal Axis = iota
	// Vertical estimates the column kernel from the first two columns.
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// zeroSumTol is the kernel sum, relative to the largest singular value,
// below which the kernel cannot be normalized.
const zeroSumTol = 1e-9

// AxisEstimate is the result of estimating a 1D kernel along one axis.
type AxisEstimate struct {
	Axis Axis
	// Kernel has unit sum. Its length is Degree, or the maximum size when
	// Degenerate is set.
	Kernel []float64
	// Degree is the support length read from the spectrum.
	Degree int
	// Degenerate reports that Kernel is the uniform fallback.
	Degenerate bool
	// Spectrum is the singular spectrum normalized by its largest value.
	Spectrum []float64
}

// EstimateAxis estimates the blur kernel along axis from the first two rows
// or columns of img. maxSize bounds the kernel length and must satisfy
// 1 <= maxSize < n, where n is the length of the sequences.
func EstimateAxis(img mat.Matrix, axis Axis, maxSize int, opts ...Option) (AxisEstimate, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	seq1, seq2, err := sequences(img, axis)
	if err != nil {
		return AxisEstimate{}, err
	}

	n := len(seq1)
	if maxSize < 1 || maxSize >= n {
		return AxisEstimate{}, fmt.Errorf("%w: %d must be in [1, %d) along %s axis", ErrInvalidSize, maxSize, n, axis)
	}
	if err := raster.Validate(mat.NewDense(2, n, slices.Concat(seq1, seq2))); err != nil {
		return AxisEstimate{}, fmt.Errorf("%w: %s axis: %w", ErrNonFinite, axis, err)
	}

	s, err := resultant.Build(seq1, seq2, maxSize)
	if err != nil {
		return AxisEstimate{}, err
	}
	sp, err := resultant.Decompose(s)
	if err != nil {
		return AxisEstimate{}, err
	}

	est := AxisEstimate{
		Axis:     axis,
		Spectrum: sp.Normalized(),
	}

	if isConstant(seq1, cfg.constTol) && isConstant(seq2, cfg.constTol) {
		est.Degree = resultant.EstimateDegree(sp, maxSize)
		return fallback(est, maxSize, cfg.logger, "constant sequences"), nil
	}

	var raw []float64
	switch cfg.strategy {
	case StrategyNullVector:
		est.Degree = maxSize
		k := sp.Len() - 1
		raw = sp.Vector(k)[:maxSize]
		floats.Scale(sp.Values[k], raw)
	default:
		est.Degree = resultant.EstimateDegree(sp, maxSize)
		k := est.Degree - 1
		raw = sp.Vector(k)[:est.Degree]
		floats.Scale(sp.Values[k], raw)
	}

	sum := floats.Sum(raw)
	if sp.Max() == 0 || math.Abs(sum) <= zeroSumTol*sp.Max() {
		return fallback(est, maxSize, cfg.logger, "kernel sum vanishes"), nil
	}

	floats.Scale(1/sum, raw)
	est.Kernel = raw

	return est, nil
}

// Clone returns a copy of e that shares no memory with it.
func (e AxisEstimate) Clone() AxisEstimate {
	c := e
	c.Kernel = slices.Clone(e.Kernel)
	c.Spectrum = slices.Clone(e.Spectrum)
	return c
}

func fallback(est AxisEstimate, maxSize int, logger *slog.Logger, reason string) AxisEstimate {
	est.Kernel = Uniform(maxSize)
	est.Degenerate = true
	if logger != nil {
		logger.LogAttrs(context.Background(), slog.LevelWarn, "degenerate psf, using uniform kernel",
			slog.String("axis", est.Axis.String()),
			slog.String("reason", reason),
			slog.Int("size", maxSize),
		)
	}
	return est
}

func sequences(img mat.Matrix, axis Axis) ([]float64, []float64, error) {
	if img == nil {
		return nil, nil, fmt.Errorf("%w: nil image", ErrTooSmall)
	}
	r, c := img.Dims()
	if r < 2 || c < 2 {
		return nil, nil, fmt.Errorf("%w: %dx%d, need at least 2x2", ErrTooSmall, r, c)
	}

	switch axis {
	case Horizontal:
		return mat.Row(nil, 0, img), mat.Row(nil, 1, img), nil
	case Vertical:
		return mat.Col(nil, 0, img), mat.Col(nil, 1, img), nil
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidAxis, axis)
	}
}

func isConstant(x []float64, tol float64) bool {
	return floats.Max(x)-floats.Min(x) <= tol
}
