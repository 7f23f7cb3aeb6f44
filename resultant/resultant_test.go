package resultant

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-bid/internal/testutil"
	"gonum.org/v1/gonum/mat"
)

func TestBuildLayout(t *testing.T) {
	row1 := []float64{1, 2, 3, 4}
	row2 := []float64{5, 6, 7, 8}

	s, err := Build(row1, row2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, c := s.Dims()
	if r != 6 || c != 6 {
		t.Fatalf("dims = %dx%d, want 6x6", r, c)
	}

	want := mat.NewDense(6, 6, []float64{
		1, 0, 5, 0, 0, 0,
		2, 1, 6, 5, 0, 0,
		3, 2, 7, 6, 0, 0,
		4, 3, 8, 7, 0, 0,
		0, 4, 0, 8, 0, 0,
		0, 0, 0, 0, 0, 0,
	})
	testutil.RequireMatrixNearlyEqual(t, s, want, 0)
}

func TestBuildSizes(t *testing.T) {
	for _, tt := range []struct {
		n, degree int
	}{
		{n: 2, degree: 1},
		{n: 4, degree: 3},
		{n: 16, degree: 3},
		{n: 32, degree: 15},
	} {
		row := make([]float64, tt.n)
		for i := range row {
			row[i] = float64(i + 1)
		}

		s, err := Build(row, row, tt.degree)
		if err != nil {
			t.Fatalf("n=%d degree=%d: unexpected error: %v", tt.n, tt.degree, err)
		}

		r, c := s.Dims()
		if want := order(tt.n, tt.degree); r != want || c != want {
			t.Errorf("n=%d degree=%d: dims %dx%d, want %d", tt.n, tt.degree, r, c, want)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		row1   []float64
		row2   []float64
		degree int
		want   error
	}{
		{name: "empty", row1: nil, row2: nil, degree: 1, want: ErrEmptySequence},
		{name: "mismatch", row1: []float64{1, 2, 3}, row2: []float64{1, 2}, degree: 1, want: ErrLengthMismatch},
		{name: "zero degree", row1: []float64{1, 2, 3}, row2: []float64{1, 2, 3}, degree: 0, want: ErrInvalidDegree},
		{name: "degree equals length", row1: []float64{1, 2, 3}, row2: []float64{1, 2, 3}, degree: 3, want: ErrInvalidDegree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.row1, tt.row2, tt.degree)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDecompose(t *testing.T) {
	s, err := Build([]float64{1, 2, 3, 4}, []float64{4, 1, 0, 2}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sp, err := Decompose(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sp.Len() != 7 {
		t.Fatalf("len = %d, want 7", sp.Len())
	}

	for i := 1; i < sp.Len(); i++ {
		if sp.Values[i] > sp.Values[i-1] {
			t.Fatalf("values not descending at %d: %v", i, sp.Values)
		}
	}

	// The trailing zero column forces a zero singular value.
	if last := sp.Values[sp.Len()-1]; last > 1e-10*sp.Max() {
		t.Errorf("smallest singular value = %g, want ~0", last)
	}

	// Right singular vectors satisfy |S v_k| = σ_k.
	for k := range sp.Len() {
		v := mat.NewVecDense(sp.Len(), sp.Vector(k))
		var sv mat.VecDense
		sv.MulVec(s, v)
		if got := mat.Norm(&sv, 2); math.Abs(got-sp.Values[k]) > 1e-9 {
			t.Errorf("k=%d: |Sv| = %g, want %g", k, got, sp.Values[k])
		}
		if n := mat.Norm(v, 2); math.Abs(n-1) > 1e-12 {
			t.Errorf("k=%d: |v| = %g, want 1", k, n)
		}
	}
}

func TestNormalized(t *testing.T) {
	sp := Spectrum{Values: []float64{4, 2, 1, 0}}
	testutil.RequireSliceNearlyEqual(t, sp.Normalized(), []float64{1, 0.5, 0.25, 0}, 0)

	zero := Spectrum{Values: []float64{0, 0, 0}}
	testutil.RequireSliceNearlyEqual(t, zero.Normalized(), []float64{0, 0, 0}, 0)

	if got := (Spectrum{}).Max(); got != 0 {
		t.Errorf("empty max = %g, want 0", got)
	}
}
