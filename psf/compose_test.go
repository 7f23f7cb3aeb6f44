package psf

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-bid/internal/testutil"
	"gonum.org/v1/gonum/mat"
)

func TestCompose(t *testing.T) {
	v := []float64{1, 2, 1}
	h := []float64{1, 1}

	psf, err := Compose(v, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := mat.NewDense(3, 2, []float64{
		0.125, 0.125,
		0.25, 0.25,
		0.125, 0.125,
	})
	testutil.RequireMatrixNearlyEqual(t, psf, want, 1e-15)

	if sum := mat.Sum(psf); math.Abs(sum-1) > 1e-12 {
		t.Errorf("sum = %g, want 1", sum)
	}
}

func TestComposeErrors(t *testing.T) {
	if _, err := Compose(nil, []float64{1}); !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}
	if _, err := Compose([]float64{1, -1}, []float64{1}); !errors.Is(err, ErrZeroSum) {
		t.Errorf("expected ErrZeroSum, got %v", err)
	}
}

func TestMarginalsRecoverFactors(t *testing.T) {
	v := []float64{0.2, 0.5, 0.3}
	h := []float64{0.1, 0.6, 0.2, 0.1}

	psf, err := Compose(v, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	col, row := Marginals(psf)
	testutil.RequireSliceNearlyEqual(t, col, v, 1e-12)
	testutil.RequireSliceNearlyEqual(t, row, h, 1e-12)
}

func TestUniform(t *testing.T) {
	testutil.RequireSliceNearlyEqual(t, Uniform(4), []float64{0.25, 0.25, 0.25, 0.25}, 0)
	if Uniform(0) != nil {
		t.Error("Uniform(0) should be nil")
	}
}

func TestNormalize(t *testing.T) {
	k := []float64{1, 3}
	if !Normalize(k) {
		t.Fatal("Normalize reported zero sum")
	}
	testutil.RequireSliceNearlyEqual(t, k, []float64{0.25, 0.75}, 0)

	z := []float64{1, -1}
	if Normalize(z) {
		t.Error("expected false for zero-sum kernel")
	}
}

func TestUniform2D(t *testing.T) {
	k := Uniform2D(2, 4)
	if r, c := k.Dims(); r != 2 || c != 4 {
		t.Fatalf("dims %dx%d, want 2x4", r, c)
	}
	if sum := mat.Sum(k); math.Abs(sum-1) > 1e-15 {
		t.Errorf("sum = %g, want 1", sum)
	}
}
