// Package conv provides the convolution primitives used to model and
// synthesize spatial blur.
//
// The package offers two 1D strategies and a separable 2D blur built on top
// of them:
//
//   - Direct convolution: simple O(N*M) time-domain convolution, best for short kernels
//   - Overlap-add (OLA): FFT-based block convolution for long kernels
//   - Blur2D: separable row/column blur of an image with replicate edges
//
// # Usage
//
// For one-shot 1D convolution, use the simple functions:
//
//	result, err := conv.Convolve(signal, kernel)  // Auto-selects best algorithm
//	result, err := conv.Direct(signal, kernel)    // Force direct convolution
//
// To blur an image with a separable kernel:
//
//	k, _ := conv.BoxKernel(3)
//	blurred, err := conv.Blur2D(img, k, k)
//
// # Algorithm Selection
//
// The [Convolve] function automatically selects the algorithm based on kernel size:
//   - Kernel length <= 64: Direct convolution
//   - Kernel length > 64: FFT-based overlap-add
//
// # Boundaries
//
// [Blur2D] extends every row and column by replicating its edge samples, so
// the output has the same shape as the input and a constant image stays
// constant. This matches the clamp-to-edge handling used by the banded
// operators in package restore.
package conv
