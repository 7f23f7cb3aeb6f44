package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Channels splits img into planes of samples in [0, 1]. With gray set the
// result is a single luminance plane, otherwise it holds the red, green and
// blue planes in that order. Alpha is ignored.
func Channels(img image.Image, gray bool) ([]*mat.Dense, error) {
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()
	if h == 0 || w == 0 {
		return nil, ErrEmpty
	}

	if gray {
		plane := mat.NewDense(h, w, nil)
		for y := range h {
			for x := range w {
				g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				plane.Set(y, x, float64(g.Y)/0xffff)
			}
		}
		return []*mat.Dense{plane}, nil
	}

	planes := []*mat.Dense{
		mat.NewDense(h, w, nil),
		mat.NewDense(h, w, nil),
		mat.NewDense(h, w, nil),
	}
	for y := range h {
		for x := range w {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			planes[0].Set(y, x, float64(c.R)/0xffff)
			planes[1].Set(y, x, float64(c.G)/0xffff)
			planes[2].Set(y, x, float64(c.B)/0xffff)
		}
	}
	return planes, nil
}

// Compose assembles one (gray) or three (RGB) planes into an image. Samples
// are clamped to [0, 1] and quantized to 16 bits.
func Compose(planes []*mat.Dense) (image.Image, error) {
	if len(planes) != 1 && len(planes) != 3 {
		return nil, fmt.Errorf("%w: %d", ErrChannelCount, len(planes))
	}

	h, w := planes[0].Dims()
	if h == 0 || w == 0 {
		return nil, ErrEmpty
	}
	for i, p := range planes[1:] {
		if r, c := p.Dims(); r != h || c != w {
			return nil, fmt.Errorf("%w: plane %d is %dx%d, want %dx%d", ErrChannelMismatch, i+1, r, c, h, w)
		}
	}

	rect := image.Rect(0, 0, w, h)
	if len(planes) == 1 {
		out := image.NewGray16(rect)
		for y := range h {
			for x := range w {
				out.SetGray16(x, y, color.Gray16{Y: quantize(planes[0].At(y, x))})
			}
		}
		return out, nil
	}

	out := image.NewNRGBA64(rect)
	for y := range h {
		for x := range w {
			out.SetNRGBA64(x, y, color.NRGBA64{
				R: quantize(planes[0].At(y, x)),
				G: quantize(planes[1].At(y, x)),
				B: quantize(planes[2].At(y, x)),
				A: 0xffff,
			})
		}
	}
	return out, nil
}

func quantize(v float64) uint16 {
	if math.IsNaN(v) {
		return 0
	}
	return uint16(math.Round(math.Min(1, math.Max(0, v)) * 0xffff))
}
