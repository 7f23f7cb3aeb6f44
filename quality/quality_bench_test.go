package quality

import (
	"testing"

	"github.com/cwbudde/algo-bid/internal/testutil"
)

func BenchmarkSSIM(b *testing.B) {
	x := testutil.DeterministicNoise(1, 256, 256)
	y := testutil.DeterministicNoise(2, 256, 256)

	for _, mode := range []SSIMMode{SSIM2D, SSIMFlat} {
		b.Run(mode.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := SSIM(x, y, mode); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
