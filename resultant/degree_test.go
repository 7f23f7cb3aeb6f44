package resultant

import (
	"testing"

	"github.com/cwbudde/algo-bid/internal/testutil"
)

func TestEstimateDegree(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		maxDegree int
		want      int
	}{
		{name: "flat", values: []float64{1, 1, 1, 1}, maxDegree: 3, want: 1},
		{name: "all zero", values: []float64{0, 0, 0, 0}, maxDegree: 3, want: 1},
		{name: "smallest drop last", values: []float64{1, 0.6198, 0.3336, 0.2227}, maxDegree: 3, want: 3},
		{name: "smallest drop first", values: []float64{1, 0.9, 0.5, 0.1}, maxDegree: 3, want: 1},
		{name: "restricted to max", values: []float64{1, 0.5, 0.3, 0.29}, maxDegree: 2, want: 2},
		{name: "tie takes first", values: []float64{1, 0.75, 0.5, 0.25}, maxDegree: 3, want: 1},
		{name: "single value", values: []float64{3}, maxDegree: 3, want: 1},
		{name: "max beyond length", values: []float64{2, 1, 0.9}, maxDegree: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateDegree(Spectrum{Values: tt.values}, tt.maxDegree)
			if got != tt.want {
				t.Errorf("EstimateDegree = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimateDegreeRange(t *testing.T) {
	img := testutil.DeterministicNoise(7, 2, 24)
	for maxDegree := 1; maxDegree < 24; maxDegree++ {
		s, err := Build(img.RawRowView(0), img.RawRowView(1), maxDegree)
		if err != nil {
			t.Fatalf("max=%d: %v", maxDegree, err)
		}
		sp, err := Decompose(s)
		if err != nil {
			t.Fatalf("max=%d: %v", maxDegree, err)
		}

		d := EstimateDegree(sp, maxDegree)
		if d < 1 || d > maxDegree {
			t.Errorf("max=%d: degree %d out of range", maxDegree, d)
		}
	}
}

func TestKneeIndexShortInput(t *testing.T) {
	if got := KneeIndex(nil, 3); got != 0 {
		t.Errorf("nil: got %d, want 0", got)
	}
	if got := KneeIndex([]float64{1, 0}, 0); got != 0 {
		t.Errorf("zero limit: got %d, want 0", got)
	}
}
