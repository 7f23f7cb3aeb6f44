// Package deconv performs algebraic blind deconvolution of single-channel
// images.
//
// EstimatePSF identifies a separable point spread function from the blurred
// image alone, and Deconvolve restores the image for a given PSF by solving
// a Sylvester equation. Both are pure functions; the caller owns the PSF and
// may reuse it across images. Engine wraps them with a one-entry PSF cache
// for callers that prefer an estimate-once, restore-many workflow.
//
// Images are gonum matrices with samples normalized to [0, 1]. Colour
// images are processed one channel at a time.
//
// # Errors
//
// Invalid images or configuration wrap ErrInvalidInput and are reported
// before any decomposition runs. A solve that still yields non-finite values
// despite regularization wraps ErrNumericalInstability. Kernels that carry
// no usable signal are not an error: they fall back to a uniform PSF and the
// estimate is flagged as degenerate.
package deconv
