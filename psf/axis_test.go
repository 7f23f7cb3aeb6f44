package psf

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-bid/conv"
	"github.com/cwbudde/algo-bid/internal/testutil"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func blurredGradient(t *testing.T, n int) *mat.Dense {
	t.Helper()

	box, err := conv.BoxKernel(3)
	if err != nil {
		t.Fatalf("BoxKernel: %v", err)
	}
	blurred, err := conv.Blur2D(testutil.Gradient(n, n, float64(2*(n-1))), box, box)
	if err != nil {
		t.Fatalf("Blur2D: %v", err)
	}
	return blurred
}

func TestEstimateAxisRecoversBox(t *testing.T) {
	blurred := blurredGradient(t, 32)
	box := Uniform(3)

	for _, axis := range []Axis{Horizontal, Vertical} {
		t.Run(axis.String(), func(t *testing.T) {
			est, err := EstimateAxis(blurred, axis, 3)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if est.Degenerate {
				t.Fatal("unexpected degenerate estimate")
			}
			if est.Degree != 3 {
				t.Fatalf("degree = %d, want 3", est.Degree)
			}
			if sum := floats.Sum(est.Kernel); math.Abs(sum-1) > 1e-9 {
				t.Errorf("kernel sum = %g, want 1", sum)
			}
			if cs := testutil.CosineSimilarity(est.Kernel, box); cs < 0.8 {
				t.Errorf("cosine similarity to box = %g (kernel %v)", cs, est.Kernel)
			}
		})
	}
}

func TestEstimateAxisConstantFallsBack(t *testing.T) {
	for _, n := range []int{4, 5, 8, 16} {
		img := testutil.Constant(n, n, 0.5)
		for _, axis := range []Axis{Horizontal, Vertical} {
			est, err := EstimateAxis(img, axis, 3)
			if err != nil {
				t.Fatalf("n=%d %s: unexpected error: %v", n, axis, err)
			}
			if !est.Degenerate {
				t.Errorf("n=%d %s: expected degenerate estimate", n, axis)
			}
			testutil.RequireSliceNearlyEqual(t, est.Kernel, Uniform(3), 0)
		}
	}
}

func TestEstimateAxisSmallGradientFallsBack(t *testing.T) {
	img := testutil.Gradient(4, 4, 6)

	for _, axis := range []Axis{Horizontal, Vertical} {
		est, err := EstimateAxis(img, axis, 3)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", axis, err)
		}
		if !est.Degenerate {
			t.Errorf("%s: expected degenerate estimate, kernel %v", axis, est.Kernel)
		}
		if est.Degree < 1 || est.Degree > 3 {
			t.Errorf("%s: degree %d out of range", axis, est.Degree)
		}
		testutil.RequireSliceNearlyEqual(t, est.Kernel, Uniform(3), 1e-15)
	}
}

func TestEstimateAxisProperties(t *testing.T) {
	for seed := range int64(6) {
		img := testutil.DeterministicNoise(seed, 12, 14)
		for maxSize := 1; maxSize < 12; maxSize++ {
			for _, axis := range []Axis{Horizontal, Vertical} {
				est, err := EstimateAxis(img, axis, maxSize)
				if err != nil {
					t.Fatalf("seed=%d max=%d %s: %v", seed, maxSize, axis, err)
				}
				if est.Degree < 1 || est.Degree > maxSize {
					t.Errorf("seed=%d max=%d %s: degree %d out of range", seed, maxSize, axis, est.Degree)
				}
				if len(est.Kernel) < 1 || len(est.Kernel) > maxSize {
					t.Errorf("seed=%d max=%d %s: kernel length %d", seed, maxSize, axis, len(est.Kernel))
				}
				if sum := floats.Sum(est.Kernel); math.Abs(sum-1) > 1e-6 {
					t.Errorf("seed=%d max=%d %s: kernel sum %g", seed, maxSize, axis, sum)
				}
				testutil.RequireFinite(t, est.Kernel)
			}
		}
	}
}

func TestEstimateAxisNullVector(t *testing.T) {
	blurred := blurredGradient(t, 16)

	est, err := EstimateAxis(blurred, Horizontal, 5, WithStrategy(StrategyNullVector))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Degree != 5 || len(est.Kernel) != 5 {
		t.Fatalf("degree %d, kernel length %d, want 5", est.Degree, len(est.Kernel))
	}
	if sum := floats.Sum(est.Kernel); math.Abs(sum-1) > 1e-6 {
		t.Errorf("kernel sum = %g, want 1", sum)
	}
}

func TestEstimateAxisLogsFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := EstimateAxis(testutil.Constant(6, 6, 1), Vertical, 2, WithLogger(logger))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "axis=vertical") {
		t.Errorf("missing warning in log output: %q", out)
	}
}

func TestEstimateAxisErrors(t *testing.T) {
	nan := testutil.Constant(4, 4, 0.5)
	nan.Set(1, 2, math.NaN())

	tests := []struct {
		name    string
		img     mat.Matrix
		axis    Axis
		maxSize int
		want    error
	}{
		{name: "one row", img: testutil.Constant(1, 8, 1), axis: Horizontal, maxSize: 2, want: ErrTooSmall},
		{name: "max equals width", img: testutil.Constant(8, 4, 1), axis: Horizontal, maxSize: 4, want: ErrInvalidSize},
		{name: "max equals height", img: testutil.Constant(4, 8, 1), axis: Vertical, maxSize: 4, want: ErrInvalidSize},
		{name: "zero max", img: testutil.Constant(4, 4, 1), axis: Vertical, maxSize: 0, want: ErrInvalidSize},
		{name: "nan in second row", img: nan, axis: Horizontal, maxSize: 2, want: ErrNonFinite},
		{name: "bad axis", img: testutil.Constant(4, 4, 1), axis: Axis(7), maxSize: 2, want: ErrInvalidAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateAxis(tt.img, tt.axis, tt.maxSize)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAxisEstimateClone(t *testing.T) {
	est, err := EstimateAxis(testutil.Gradient(8, 8, 3), Horizontal, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := est.Clone()
	c.Kernel[0] = 42
	c.Spectrum[0] = 42
	if est.Kernel[0] == 42 || est.Spectrum[0] == 42 {
		t.Error("Clone shares memory with its source")
	}
}
