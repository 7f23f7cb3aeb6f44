package deconv

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-bid/psf"
	"github.com/cwbudde/algo-bid/quality"
	"github.com/cwbudde/algo-bid/raster"
	"github.com/cwbudde/algo-bid/restore"
	"github.com/cwbudde/algo-bid/resultant"
	"gonum.org/v1/gonum/mat"
)

// Canonical error kinds. Errors from the lower-level packages are wrapped
// so that errors.Is matches both this kind and the underlying sentinel.
var (
	ErrInvalidInput         = errors.New("deconv: invalid input")
	ErrNumericalInstability = errors.New("deconv: numerical instability")
)

// Estimate is an identified separable PSF together with the per-axis
// diagnostics it was built from.
type Estimate struct {
	// PSF is Vertical.Kernel ⊗ Horizontal.Kernel with unit sum.
	PSF        *mat.Dense
	Horizontal psf.AxisEstimate
	Vertical   psf.AxisEstimate
}

// Degenerate reports whether either axis fell back to a uniform kernel.
func (e Estimate) Degenerate() bool {
	return e.Horizontal.Degenerate || e.Vertical.Degenerate
}

func (e Estimate) clone() Estimate {
	c := e
	if e.PSF != nil {
		c.PSF = mat.DenseCopyOf(e.PSF)
	}
	c.Horizontal = e.Horizontal.Clone()
	c.Vertical = e.Vertical.Clone()
	return c
}

// Result is the outcome of a restoration.
type Result struct {
	// Restored has the shape of the input image.
	Restored *mat.Dense
	// PSF is the kernel the image was restored with.
	PSF *mat.Dense

	// MSE, PSNR and SSIM compare the blurred input with Restored. They
	// measure self-consistency, not fidelity to an unknown sharp image.
	MSE  float64
	PSNR float64
	SSIM float64
}

// EstimatePSF identifies a separable PSF from the first two rows and the
// first two columns of img.
func EstimatePSF(img mat.Matrix, cfg Config) (Estimate, error) {
	if err := validate(img, cfg); err != nil {
		return Estimate{}, err
	}

	opts := cfg.axisOptions()

	horizontal, err := psf.EstimateAxis(img, psf.Horizontal, cfg.MaxPSFSize, opts...)
	if err != nil {
		return Estimate{}, wrap(fmt.Errorf("horizontal axis: %w", err))
	}
	vertical, err := psf.EstimateAxis(img, psf.Vertical, cfg.MaxPSFSize, opts...)
	if err != nil {
		return Estimate{}, wrap(fmt.Errorf("vertical axis: %w", err))
	}

	k, err := psf.Compose(vertical.Kernel, horizontal.Kernel)
	if err != nil {
		return Estimate{}, wrap(err)
	}

	return Estimate{
		PSF:        k,
		Horizontal: horizontal,
		Vertical:   vertical,
	}, nil
}

// Deconvolve restores img blurred by the separable PSF k.
func Deconvolve(img, k mat.Matrix, cfg Config) (Result, error) {
	if err := validate(img, cfg); err != nil {
		return Result{}, err
	}
	if err := validatePSF(k); err != nil {
		return Result{}, err
	}

	h, w := img.Dims()
	hy, hx, err := restore.Operators(k, h, w, cfg.Regularization)
	if err != nil {
		return Result{}, wrap(err)
	}

	restored, err := restore.Restore(hy, hx, img)
	if err != nil {
		return Result{}, wrap(err)
	}
	if cfg.Clip {
		raster.Clip(restored, 0, 1)
	}

	metrics, err := quality.Evaluate(img, restored, cfg.SSIM)
	if err != nil {
		return Result{}, wrap(err)
	}

	return Result{
		Restored: restored,
		PSF:      mat.DenseCopyOf(k),
		MSE:      metrics.MSE,
		PSNR:     metrics.PSNR,
		SSIM:     metrics.SSIM,
	}, nil
}

// Run estimates the PSF of img and restores it in one step.
func Run(img mat.Matrix, cfg Config) (Result, Estimate, error) {
	est, err := EstimatePSF(img, cfg)
	if err != nil {
		return Result{}, Estimate{}, err
	}
	res, err := Deconvolve(img, est.PSF, cfg)
	if err != nil {
		return Result{}, est, err
	}
	return res, est, nil
}

func validate(img mat.Matrix, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidInput)
	}

	h, w := img.Dims()
	if h < 2 || w < 2 {
		return fmt.Errorf("%w: image is %dx%d, need at least 2x2", ErrInvalidInput, h, w)
	}
	if cfg.MaxPSFSize >= min(h, w) {
		return fmt.Errorf("%w: max psf size %d must be smaller than min(height, width) = %d",
			ErrInvalidInput, cfg.MaxPSFSize, min(h, w))
	}

	if err := raster.Validate(img); err != nil {
		return fmt.Errorf("%w: image: %w", ErrInvalidInput, err)
	}
	return nil
}

func validatePSF(k mat.Matrix) error {
	if err := raster.Validate(k); err != nil {
		return fmt.Errorf("%w: psf: %w", ErrInvalidInput, err)
	}
	return nil
}

// wrap tags a lower-level error with its canonical kind.
func wrap(err error) error {
	switch {
	case errors.Is(err, restore.ErrNumericalInstability),
		errors.Is(err, restore.ErrSingular),
		errors.Is(err, resultant.ErrSVDFailed):
		return fmt.Errorf("%w: %w", ErrNumericalInstability, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
}
