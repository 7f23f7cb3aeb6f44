package quality

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Errors returned by the metrics.
var (
	ErrEmpty         = errors.New("quality: empty image")
	ErrShapeMismatch = errors.New("quality: image shapes differ")
	ErrInvalidMode   = errors.New("quality: unknown SSIM mode")
)

// Metrics holds the scores of one image pair.
type Metrics struct {
	MSE  float64
	PSNR float64 // dB, +Inf for identical images
	SSIM float64
}

// Evaluate computes all metrics for a reference image and a test image.
func Evaluate(ref, test mat.Matrix, mode SSIMMode) (Metrics, error) {
	mse, err := MSE(ref, test)
	if err != nil {
		return Metrics{}, err
	}
	ssim, err := SSIM(ref, test, mode)
	if err != nil {
		return Metrics{}, err
	}

	return Metrics{
		MSE:  mse,
		PSNR: PSNR(mse),
		SSIM: ssim,
	}, nil
}

// MSE returns the mean squared difference between a and b.
func MSE(a, b mat.Matrix) (float64, error) {
	x, y, err := flatten(a, b)
	if err != nil {
		return 0, err
	}

	diff := make([]float64, len(x))
	floats.SubTo(diff, x, y)

	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// PSNR converts a mean squared error into decibels relative to a peak of 1.
// A zero error yields +Inf.
func PSNR(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(1/mse)
}

// flatten returns copies of a and b in row-major order.
func flatten(a, b mat.Matrix) ([]float64, []float64, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar == 0 || ac == 0 {
		return nil, nil, ErrEmpty
	}
	if ar != br || ac != bc {
		return nil, nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, ar, ac, br, bc)
	}

	x := make([]float64, 0, ar*ac)
	y := make([]float64, 0, ar*ac)
	for i := range ar {
		x = append(x, mat.Row(nil, i, a)...)
		y = append(y, mat.Row(nil, i, b)...)
	}

	return x, y, nil
}
