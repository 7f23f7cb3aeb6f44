package resultant

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-bid/internal/testutil"
)

func BenchmarkBuildDecompose(b *testing.B) {
	for _, n := range []int{32, 128, 256} {
		img := testutil.DeterministicNoise(1, 2, n)

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s, err := Build(img.RawRowView(0), img.RawRowView(1), 15)
				if err != nil {
					b.Fatal(err)
				}
				if _, err := Decompose(s); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
