// Package psf estimates separable point spread functions from a single
// blurred image.
//
// Each axis is handled independently: the first two rows (or columns) of the
// image are paired into a resultant matrix, the degree of their common
// factor is read off the singular spectrum, and the matching right singular
// vector becomes the 1D kernel. Compose joins a vertical and a horizontal
// kernel into the 2D PSF by an outer product.
//
// Estimation never fails on well-formed but uninformative input. When the
// sequences carry no blur signature the estimator falls back to a uniform
// kernel and marks the estimate as degenerate.
package psf
