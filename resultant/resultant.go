package resultant

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by resultant construction and decomposition.
var (
	ErrEmptySequence  = errors.New("resultant: empty sequence")
	ErrLengthMismatch = errors.New("resultant: sequence length mismatch")
	ErrInvalidDegree  = errors.New("resultant: degree out of range")
	ErrSVDFailed      = errors.New("resultant: singular value decomposition did not converge")
)

// order returns the order of the resultant matrix built from two sequences
// of length n at the given degree.
func order(n, degree int) int {
	return 2*n - degree
}

// Build returns the square resultant matrix of row1 and row2 at the given
// degree. Both sequences must have the same length n and 1 <= degree < n.
//
// The matrix has order 2n-degree. For every shift i in [0, n-degree) column i
// holds row1 at rows [i, i+n) and column (n-degree)+i holds row2 at the same
// rows. The trailing degree columns stay zero.
func Build(row1, row2 []float64, degree int) (*mat.Dense, error) {
	n := len(row1)
	if n == 0 || len(row2) == 0 {
		return nil, ErrEmptySequence
	}
	if len(row2) != n {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, n, len(row2))
	}
	if degree < 1 || degree >= n {
		return nil, fmt.Errorf("%w: degree %d must be in [1, %d)", ErrInvalidDegree, degree, n)
	}

	size := order(n, degree)
	shifts := n - degree
	s := mat.NewDense(size, size, nil)

	for i := range shifts {
		for j := range n {
			s.Set(i+j, i, row1[j])
			s.Set(i+j, shifts+i, row2[j])
		}
	}

	return s, nil
}
