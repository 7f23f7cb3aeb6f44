package quality

import (
	"fmt"

	"github.com/cwbudde/algo-bid/conv"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SSIMMode selects the window geometry of SSIM.
type SSIMMode int

const (
	// SSIM2D slides an 11×11 uniform window over the image.
	SSIM2D SSIMMode = iota
	// SSIMFlat slides a 121-sample uniform window over the row-major
	// flattened image.
	SSIMFlat
)

// String returns the mode name.
func (m SSIMMode) String() string {
	switch m {
	case SSIM2D:
		return "2d"
	case SSIMFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// ParseSSIMMode maps "2d" and "flat" to their modes.
func ParseSSIMMode(s string) (SSIMMode, error) {
	switch s {
	case "2d", "":
		return SSIM2D, nil
	case "flat":
		return SSIMFlat, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

const (
	windowSide = 11
	c1         = (0.01 * 255) * (0.01 * 255)
	c2         = (0.03 * 255) * (0.03 * 255)
)

// SSIM returns the mean structural similarity of a and b. Windows larger
// than the image are clamped to it. Identical inputs score exactly 1.
func SSIM(a, b mat.Matrix, mode SSIMMode) (float64, error) {
	x, y, err := flatten(a, b)
	if err != nil {
		return 0, err
	}

	m := newMoments(x, y)

	switch mode {
	case SSIM2D:
		rows, cols := a.Dims()
		return ssim2D(m, rows, cols), nil
	case SSIMFlat:
		return ssimFlat(m)
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}
}

// moments holds the five per-sample fields SSIM averages over each window.
type moments struct {
	x, y, xx, yy, xy []float64
}

func newMoments(x, y []float64) moments {
	n := len(x)
	m := moments{
		x:  x,
		y:  y,
		xx: make([]float64, n),
		yy: make([]float64, n),
		xy: make([]float64, n),
	}
	vecmath.MulBlock(m.xx, x, x)
	vecmath.MulBlock(m.yy, y, y)
	vecmath.MulBlock(m.xy, x, y)
	return m
}

// index evaluates the SSIM formula from window means.
func index(mx, my, mxx, myy, mxy float64) float64 {
	mxSq := mx * mx
	mySq := my * my
	mxMy := mx * my

	vx := mxx - mxSq
	vy := myy - mySq
	cov := mxy - mxMy

	return ((2*mxMy + c1) * (2*cov + c2)) / ((mxSq + mySq + c1) * (vx + vy + c2))
}

func ssim2D(m moments, rows, cols int) float64 {
	wh := min(windowSide, rows)
	ww := min(windowSide, cols)
	area := float64(wh * ww)

	sx := newIntegral(m.x, rows, cols)
	sy := newIntegral(m.y, rows, cols)
	sxx := newIntegral(m.xx, rows, cols)
	syy := newIntegral(m.yy, rows, cols)
	sxy := newIntegral(m.xy, rows, cols)

	outR := rows - wh + 1
	outC := cols - ww + 1
	values := make([]float64, 0, outR*outC)
	for i := range outR {
		for j := range outC {
			values = append(values, index(
				sx.sum(i, j, wh, ww)/area,
				sy.sum(i, j, wh, ww)/area,
				sxx.sum(i, j, wh, ww)/area,
				syy.sum(i, j, wh, ww)/area,
				sxy.sum(i, j, wh, ww)/area,
			))
		}
	}

	return stat.Mean(values, nil)
}

func ssimFlat(m moments) (float64, error) {
	n := min(windowSide*windowSide, len(m.x))
	box, err := conv.BoxKernel(n)
	if err != nil {
		return 0, err
	}

	means := make([][]float64, 5)
	for k, field := range [][]float64{m.x, m.y, m.xx, m.yy, m.xy} {
		means[k], err = conv.ConvolveMode(field, box, conv.ModeValid)
		if err != nil {
			return 0, err
		}
	}

	values := make([]float64, len(means[0]))
	for i := range values {
		values[i] = index(means[0][i], means[1][i], means[2][i], means[3][i], means[4][i])
	}

	return stat.Mean(values, nil), nil
}

// integral is a summed-area table with a zero first row and column.
type integral struct {
	data   []float64
	stride int
}

func newIntegral(src []float64, rows, cols int) integral {
	stride := cols + 1
	data := make([]float64, (rows+1)*stride)
	for i := range rows {
		var run float64
		for j := range cols {
			run += src[i*cols+j]
			data[(i+1)*stride+j+1] = data[i*stride+j+1] + run
		}
	}
	return integral{data: data, stride: stride}
}

// sum returns the total over the h×w block whose top-left corner is (i, j).
func (s integral) sum(i, j, h, w int) float64 {
	d, st := s.data, s.stride
	return d[(i+h)*st+j+w] - d[i*st+j+w] - d[(i+h)*st+j] + d[i*st+j]
}
