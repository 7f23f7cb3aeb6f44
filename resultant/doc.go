// Package resultant builds Sylvester-style resultant matrices from pairs of
// image sequences and reads a blur support length off their singular
// spectrum.
//
// Two rows (or columns) of a blurred image behave like the coefficient
// vectors of two polynomials that share the blur kernel as a common factor.
// The resultant matrix of such a pair loses rank in proportion to the degree
// of that factor, so its singular values carry the kernel length.
//
// # Usage
//
//	s, err := resultant.Build(row1, row2, maxDegree)
//	sp, err := resultant.Decompose(s)
//	d := resultant.EstimateDegree(sp, maxDegree)
//	v := sp.Vector(d - 1)
package resultant
