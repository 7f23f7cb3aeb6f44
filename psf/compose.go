package psf

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Uniform returns a length-n kernel with every tap equal to 1/n.
// It returns nil for n < 1.
func Uniform(n int) []float64 {
	if n < 1 {
		return nil
	}
	k := make([]float64, n)
	for i := range k {
		k[i] = 1 / float64(n)
	}
	return k
}

// Compose returns the separable PSF vertical ⊗ horizontal, rescaled to unit
// sum. Row i of the result is vertical[i] times horizontal.
func Compose(vertical, horizontal []float64) (*mat.Dense, error) {
	if len(vertical) == 0 || len(horizontal) == 0 {
		return nil, ErrEmptyKernel
	}

	psf := mat.NewDense(len(vertical), len(horizontal), nil)
	psf.Outer(1, mat.NewVecDense(len(vertical), vertical), mat.NewVecDense(len(horizontal), horizontal))

	sum := mat.Sum(psf)
	if sum == 0 {
		return nil, fmt.Errorf("%w: outer product of %d and %d taps", ErrZeroSum, len(vertical), len(horizontal))
	}
	psf.Scale(1/sum, psf)

	return psf, nil
}

// Marginals returns the axis profiles of a 2D PSF. col holds the row sums
// (the kernel along the vertical axis) and row holds the column sums (the
// kernel along the horizontal axis). For a separable unit-sum PSF both
// marginals are its 1D factor kernels.
func Marginals(psf mat.Matrix) (col, row []float64) {
	r, c := psf.Dims()
	col = make([]float64, r)
	row = make([]float64, c)
	for i := range r {
		for j := range c {
			v := psf.At(i, j)
			col[i] += v
			row[j] += v
		}
	}
	return col, row
}

// Normalize scales k in place to unit sum. It reports false and leaves k
// unchanged when the sum is zero.
func Normalize(k []float64) bool {
	sum := floats.Sum(k)
	if sum == 0 {
		return false
	}
	floats.Scale(1/sum, k)
	return true
}

// Uniform2D returns a rows×cols PSF with every tap equal to 1/(rows·cols).
func Uniform2D(rows, cols int) *mat.Dense {
	k := mat.NewDense(rows, cols, nil)
	v := 1 / float64(rows*cols)
	for i := range rows {
		for j := range cols {
			k.Set(i, j, v)
		}
	}
	return k
}
