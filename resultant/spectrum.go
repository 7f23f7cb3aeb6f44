package resultant

import (
	"gonum.org/v1/gonum/mat"
)

// Spectrum holds the singular value decomposition of a resultant matrix.
type Spectrum struct {
	// Values are the singular values in descending order.
	Values []float64

	v *mat.Dense
}

// Decompose computes the singular values and right singular vectors of s.
func Decompose(s mat.Matrix) (Spectrum, error) {
	var svd mat.SVD
	if ok := svd.Factorize(s, mat.SVDFullV); !ok {
		return Spectrum{}, ErrSVDFailed
	}

	var v mat.Dense
	svd.VTo(&v)

	return Spectrum{
		Values: svd.Values(nil),
		v:      &v,
	}, nil
}

// Len returns the number of singular values.
func (sp Spectrum) Len() int {
	return len(sp.Values)
}

// Max returns the largest singular value, or 0 for an empty spectrum.
func (sp Spectrum) Max() float64 {
	if len(sp.Values) == 0 {
		return 0
	}
	return sp.Values[0]
}

// Normalized returns the singular values divided by the largest one.
// A spectrum whose largest value is zero normalizes to all zeros.
func (sp Spectrum) Normalized() []float64 {
	out := make([]float64, len(sp.Values))
	top := sp.Max()
	if top == 0 {
		return out
	}
	for i, v := range sp.Values {
		out[i] = v / top
	}
	return out
}

// Vector returns a copy of the k-th right singular vector (column k of V),
// paired with Values[k].
func (sp Spectrum) Vector(k int) []float64 {
	return mat.Col(nil, k, sp.v)
}
