package restore

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SolveSylvester solves A·X + X·C = B for X, where A is m×m, C is n×n and B
// is m×n.
//
// When A is lower-triangular and C is upper-triangular the solution is
// computed by forward substitution in O(mn(m+n)). Otherwise the equivalent
// Kronecker system (I⊗A + Cᵀ⊗I)·vec(X) = vec(B) of order mn is solved with
// an LU factorization.
func SolveSylvester(a, c, b mat.Matrix) (*mat.Dense, error) {
	m, ac := a.Dims()
	n, cc := c.Dims()
	br, bc := b.Dims()
	if m != ac || n != cc {
		return nil, fmt.Errorf("%w: coefficients must be square, got %dx%d and %dx%d", ErrDimensionMismatch, m, ac, n, cc)
	}
	if br != m || bc != n {
		return nil, fmt.Errorf("%w: rhs is %dx%d, want %dx%d", ErrDimensionMismatch, br, bc, m, n)
	}
	if m == 0 || n == 0 {
		return nil, fmt.Errorf("%w: empty system", ErrDimensionMismatch)
	}

	if isLowerTriangular(a) && isUpperTriangular(c) {
		return solveTriangular(a, c, b)
	}
	return solveKronecker(a, c, b)
}

// solveTriangular walks the unknowns in row-major order. Entry (i, j) only
// depends on X[k][j] for k < i and X[i][l] for l < j.
func solveTriangular(a, c, b mat.Matrix) (*mat.Dense, error) {
	m, _ := a.Dims()
	n, _ := c.Dims()
	x := mat.NewDense(m, n, nil)

	for i := range m {
		aii := a.At(i, i)
		for j := range n {
			pivot := aii + c.At(j, j)
			if pivot == 0 {
				return nil, fmt.Errorf("%w: zero pivot at row %d, column %d", ErrSingular, i, j)
			}

			acc := b.At(i, j)
			for k := range i {
				acc -= a.At(i, k) * x.At(k, j)
			}
			for l := range j {
				acc -= x.At(i, l) * c.At(l, j)
			}
			x.Set(i, j, acc/pivot)
		}
	}

	return x, nil
}

// solveKronecker stacks X column-major, so unknown (i, j) has index j*m+i.
func solveKronecker(a, c, b mat.Matrix) (*mat.Dense, error) {
	m, _ := a.Dims()
	n, _ := c.Dims()
	size := m * n

	k := mat.NewDense(size, size, nil)
	rhs := mat.NewVecDense(size, nil)
	for j := range n {
		for i := range m {
			p := j*m + i
			for q := range m {
				if v := a.At(i, q); v != 0 {
					k.Set(p, j*m+q, k.At(p, j*m+q)+v)
				}
			}
			for l := range n {
				if v := c.At(l, j); v != 0 {
					k.Set(p, l*m+i, k.At(p, l*m+i)+v)
				}
			}
			rhs.SetVec(p, b.At(i, j))
		}
	}

	var lu mat.LU
	lu.Factorize(k)
	if logDet, _ := lu.LogDet(); math.IsInf(logDet, -1) || math.IsInf(lu.Cond(), 1) {
		return nil, fmt.Errorf("%w: kronecker system of order %d", ErrSingular, size)
	}

	var sol mat.VecDense
	if err := lu.SolveVecTo(&sol, false, rhs); err != nil {
		// Ill-conditioned systems still produce a solution; the caller
		// checks it for finiteness.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
	}

	x := mat.NewDense(m, n, nil)
	for j := range n {
		for i := range m {
			x.Set(i, j, sol.AtVec(j*m+i))
		}
	}

	return x, nil
}

// Restore solves ½·Hy·X + X·(½·Hxᵀ) = B for the sharp image X. hy must be
// height×height and hx width×width for a height×width blurred image.
func Restore(hy, hx, blurred mat.Matrix) (*mat.Dense, error) {
	var a, c mat.Dense
	a.Scale(0.5, hy)
	c.Scale(0.5, hx.T())

	x, err := SolveSylvester(&a, &c, blurred)
	if err != nil {
		if errors.Is(err, ErrSingular) {
			return nil, fmt.Errorf("%w: %w", ErrNumericalInstability, err)
		}
		return nil, err
	}

	if i, j, ok := firstNonFinite(x); ok {
		return nil, fmt.Errorf("%w: non-finite value at row %d, column %d (column operator row %d, row operator column %d)",
			ErrNumericalInstability, i, j, i, j)
	}

	return x, nil
}

func firstNonFinite(m *mat.Dense) (int, int, bool) {
	r, c := m.Dims()
	for i := range r {
		for j, v := range m.RawRowView(i)[:c] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func isLowerTriangular(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := range r {
		for j := i + 1; j < c; j++ {
			if m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

func isUpperTriangular(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 1; i < r; i++ {
		for j := range min(i, c) {
			if m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}
