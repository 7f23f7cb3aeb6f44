package resultant_test

import (
	"fmt"

	"github.com/cwbudde/algo-bid/resultant"
)

func ExampleBuild() {
	s, _ := resultant.Build([]float64{1, 2}, []float64{3, 4}, 1)
	for i := range 3 {
		fmt.Printf("%.0f\n", s.RawRowView(i))
	}
	// Output:
	// [1 3 0]
	// [2 4 0]
	// [0 0 0]
}

func ExampleEstimateDegree() {
	sp := resultant.Spectrum{Values: []float64{4, 2.4, 1.3, 0.9}}
	fmt.Println(resultant.EstimateDegree(sp, 3))
	// Output:
	// 3
}
