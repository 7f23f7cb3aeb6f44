package conv

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BoxKernel returns the normalized box (moving average) kernel of length n.
func BoxKernel(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}

	k := make([]float64, n)
	for i := range k {
		k[i] = 1 / float64(n)
	}
	return k, nil
}

// GaussianKernel returns a normalized sampled Gaussian of the given length.
// Taps sit at integer offsets; an odd size is centered on its middle tap and
// an even size leans one tap to the right.
func GaussianKernel(size int, sigma float64) ([]float64, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSigma, sigma)
	}

	k := make([]float64, size)
	first := -float64(size/2) + 1
	if size%2 == 1 {
		first = -float64(size / 2)
	}
	for i := range k {
		x := first + float64(i)
		k[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(k), k)
	return k, nil
}

// Blur2D applies the separable kernel colKernel ⊗ rowKernel to img.
// rowKernel runs along each row (horizontal blur), colKernel along each
// column (vertical blur). Edges are extended by replication and the result
// has the same shape as img. img is not modified.
func Blur2D(img mat.Matrix, colKernel, rowKernel []float64) (*mat.Dense, error) {
	if len(colKernel) == 0 || len(rowKernel) == 0 {
		return nil, ErrEmptyKernel
	}

	rows, cols := img.Dims()
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyInput
	}

	out := mat.DenseCopyOf(img)

	line := make([]float64, cols)
	for i := range rows {
		mat.Row(line, i, out)
		blurred, err := blurLine(line, rowKernel)
		if err != nil {
			return nil, err
		}
		out.SetRow(i, blurred)
	}

	line = make([]float64, rows)
	for j := range cols {
		mat.Col(line, j, out)
		blurred, err := blurLine(line, colKernel)
		if err != nil {
			return nil, err
		}
		out.SetCol(j, blurred)
	}

	return out, nil
}

// blurLine convolves x with kernel using replicate padding and returns a
// slice of len(x). Tap t of the kernel weights x[j+c-t] where c is the
// kernel center (len/2, rounded down).
func blurLine(x, kernel []float64) ([]float64, error) {
	k := len(kernel)
	c := k / 2
	left := k - 1 - c

	padded := make([]float64, len(x)+k-1)
	last := len(x) - 1
	for m := range padded {
		src := m - left
		if src < 0 {
			src = 0
		} else if src > last {
			src = last
		}
		padded[m] = x[src]
	}

	full, err := Convolve(padded, kernel)
	if err != nil {
		return nil, err
	}

	return full[k-1 : k-1+len(x)], nil
}
