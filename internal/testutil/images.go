package testutil

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Gradient returns a rows×cols image whose pixel (i, j) is (i+j)/scale.
// A scale of rows+cols-2 spans exactly [0, 1].
func Gradient(rows, cols int, scale float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for i := range rows {
		for j := range cols {
			m.Set(i, j, float64(i+j)/scale)
		}
	}
	return m
}

// Constant returns a rows×cols image filled with value.
func Constant(rows, cols int, value float64) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = value
	}
	return mat.NewDense(rows, cols, data)
}

// DeterministicNoise returns a rows×cols image of uniform samples in [0, 1)
// drawn from a fixed seed for reproducibility.
func DeterministicNoise(seed int64, rows, cols int) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64()
	}
	return mat.NewDense(rows, cols, data)
}

// Impulse returns a rows×cols zero image with a single 1 at (r, c).
func Impulse(rows, cols, r, c int) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	if r >= 0 && r < rows && c >= 0 && c < cols {
		m.Set(r, c, 1)
	}
	return m
}
