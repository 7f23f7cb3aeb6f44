// Package restore recovers a sharp image from a blurred one given a
// separable PSF.
//
// The blur along each axis is modelled by a banded Toeplitz-like operator
// with replicate boundaries. Restoration solves the Sylvester equation
//
//	½·Hy·X + X·(½·Hxᵀ) = B
//
// for the sharp image X, where Hy acts along columns and Hx along rows. Both
// operators are lower-triangular, so the equation is solved directly by
// substitution without factorizing either side. SolveSylvester also accepts
// general dense coefficients and falls back to an LU solve of the Kronecker
// system for those.
package restore
