package raster

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by raster helpers.
var (
	ErrEmpty           = errors.New("raster: empty image")
	ErrNonFinite       = errors.New("raster: non-finite sample")
	ErrChannelCount    = errors.New("raster: unsupported channel count")
	ErrChannelMismatch = errors.New("raster: channel shapes differ")
)

// Validate reports whether m is non-empty and holds only finite samples.
func Validate(m mat.Matrix) error {
	if m == nil {
		return ErrEmpty
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return ErrEmpty
	}
	for i := range r {
		for j := range c {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %v at (%d, %d)", ErrNonFinite, v, i, j)
			}
		}
	}
	return nil
}

// Clip limits every sample of m to [lo, hi] in place.
func Clip(m *mat.Dense, lo, hi float64) {
	m.Apply(func(_, _ int, v float64) float64 {
		return math.Min(hi, math.Max(lo, v))
	}, m)
}

// Summary holds sample statistics of an image.
type Summary struct {
	Min, Max     float64
	Mean, StdDev float64
}

// Summarize returns the sample statistics of m.
func Summarize(m mat.Matrix) Summary {
	data := mat.DenseCopyOf(m).RawMatrix().Data
	mean, std := stat.MeanStdDev(data, nil)
	return Summary{
		Min:    floats.Min(data),
		Max:    floats.Max(data),
		Mean:   mean,
		StdDev: std,
	}
}
