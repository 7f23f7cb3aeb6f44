package restore

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-bid/psf"
	"gonum.org/v1/gonum/mat"
)

// Errors returned by operator construction and solving.
var (
	ErrEmptyProfile         = errors.New("restore: empty profile")
	ErrInvalidSize          = errors.New("restore: invalid operator size")
	ErrInvalidRegularizer   = errors.New("restore: regularization must be finite and non-negative")
	ErrDimensionMismatch    = errors.New("restore: dimension mismatch")
	ErrSingular             = errors.New("restore: singular system")
	ErrNumericalInstability = errors.New("restore: numerical instability")
)

// Banded returns the n×n blur operator for a 1D profile with ε added to the
// diagonal.
//
// Row i applies the reversed profile ending at column i, so entry (i, i-t)
// receives profile[t]. Taps that would fall left of column 0 are folded into
// column 0, which replicates the first sample and keeps every row summing to
// the profile sum. The operator is lower-triangular with band width
// len(profile).
//
// Below row 0 the diagonal is profile[0]+ε, so a negative leading tap puts
// it under ε. The profile is not clamped.
func Banded(profile []float64, n int, eps float64) (*mat.Dense, error) {
	if len(profile) == 0 {
		return nil, ErrEmptyProfile
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegularizer, eps)
	}

	h := mat.NewDense(n, n, nil)
	raw := h.RawMatrix()
	for i := range n {
		row := raw.Data[i*raw.Stride : i*raw.Stride+n]
		for t, p := range profile {
			row[max(0, i-t)] += p
		}
		row[i] += eps
	}

	return h, nil
}

// Operators builds the column operator Hy (height×height) and the row
// operator Hx (width×width) from a 2D PSF. The profiles are the PSF
// marginals rescaled to unit sum, which for a separable PSF are its vertical
// and horizontal kernels.
func Operators(k mat.Matrix, height, width int, eps float64) (hy, hx *mat.Dense, err error) {
	if k == nil {
		return nil, nil, ErrEmptyProfile
	}
	r, c := k.Dims()
	if r == 0 || c == 0 {
		return nil, nil, ErrEmptyProfile
	}

	col, row := psf.Marginals(k)
	if !psf.Normalize(col) || !psf.Normalize(row) {
		return nil, nil, fmt.Errorf("%w: psf sums to zero", ErrSingular)
	}

	hy, err = Banded(col, height, eps)
	if err != nil {
		return nil, nil, fmt.Errorf("column operator: %w", err)
	}
	hx, err = Banded(row, width, eps)
	if err != nil {
		return nil, nil, fmt.Errorf("row operator: %w", err)
	}

	return hy, hx, nil
}
