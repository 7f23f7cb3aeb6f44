package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// minBlockSize is the smallest block size chosen automatically.
const minBlockSize = 256

// overlapAdd implements FFT-based convolution using the overlap-add method.
// This is efficient for convolving long image rows with long kernels.
//
// The algorithm:
// 1. Divide input signal into non-overlapping blocks
// 2. Zero-pad each block and the kernel to FFT size
// 3. Convolve via FFT multiplication in frequency domain
// 4. Overlap-add the results to form the output
type overlapAdd struct {
	kernelFFT []complex128

	kernelLen int // kernel length before padding
	blockSize int // input block size
	fftSize   int // blockSize + kernelLen - 1, rounded to power of 2

	plan *algofft.Plan[complex128]

	inputPadded  []complex128
	outputPadded []complex128
}

// newOverlapAdd creates an overlap-add convolver for kernel. The block size
// is the kernel length rounded up to a power of 2, and at least minBlockSize.
func newOverlapAdd(kernel []float64) (*overlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	kernelLen := len(kernel)
	blockSize := max(nextPowerOf2(kernelLen), minBlockSize)

	fftSize := nextPowerOf2(blockSize + kernelLen - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	oa := &overlapAdd{
		kernelFFT:    make([]complex128, fftSize),
		kernelLen:    kernelLen,
		blockSize:    blockSize,
		fftSize:      fftSize,
		plan:         plan,
		inputPadded:  make([]complex128, fftSize),
		outputPadded: make([]complex128, fftSize),
	}

	kernelPadded := make([]complex128, fftSize)
	for i, v := range kernel {
		kernelPadded[i] = complex(v, 0)
	}

	err = plan.Forward(oa.kernelFFT, kernelPadded)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return oa, nil
}

// process convolves the input signal with the kernel.
// Returns the full linear convolution result.
func (oa *overlapAdd) process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	outputLen := len(input) + oa.kernelLen - 1
	output := make([]float64, outputLen)

	numBlocks := (len(input) + oa.blockSize - 1) / oa.blockSize

	for blockIdx := range numBlocks {
		start := blockIdx * oa.blockSize
		end := min(start+oa.blockSize, len(input))
		blockLen := end - start

		for i := range oa.inputPadded {
			oa.inputPadded[i] = 0
		}
		for i := range blockLen {
			oa.inputPadded[i] = complex(input[start+i], 0)
		}

		err := oa.plan.Forward(oa.inputPadded, oa.inputPadded)
		if err != nil {
			return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
		}

		for i := range oa.outputPadded {
			oa.outputPadded[i] = oa.inputPadded[i] * oa.kernelFFT[i]
		}

		err = oa.plan.Inverse(oa.outputPadded, oa.outputPadded)
		if err != nil {
			return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		// A block of length L convolved with a kernel of length M spans
		// L + M - 1 output samples starting at the block offset.
		resultLen := blockLen + oa.kernelLen - 1
		for i := 0; i < resultLen && start+i < outputLen; i++ {
			output[start+i] += real(oa.outputPadded[i])
		}
	}

	return output, nil
}

// OverlapAddConvolve performs one-shot overlap-add convolution.
// The convolver and its FFT plan are built per call.
func OverlapAddConvolve(signal, kernel []float64) ([]float64, error) {
	oa, err := newOverlapAdd(kernel)
	if err != nil {
		return nil, err
	}
	return oa.process(signal)
}
