package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// plotSpectra draws the normalized singular spectrum of every channel and
// axis into a single PNG (or any format plot.Save infers from the path).
func plotSpectra(path string, results []channelResult) error {
	p := plot.New()
	p.Title.Text = "Resultant singular spectra"
	p.X.Label.Text = "index"
	p.Y.Label.Text = "σ / σmax"
	p.Add(plotter.NewGrid())

	i := 0
	for _, r := range results {
		for _, axis := range []struct {
			label    string
			spectrum []float64
		}{
			{"H", r.estimate.Horizontal.Spectrum},
			{"V", r.estimate.Vertical.Spectrum},
		} {
			xys := make(plotter.XYs, len(axis.spectrum))
			for k, v := range axis.spectrum {
				xys[k].X = float64(k)
				xys[k].Y = v
			}

			line, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("spectrum %s/%s: %w", r.name, axis.label, err)
			}
			line.Color = plotutil.Color(i)
			line.Dashes = plotutil.Dashes(i)
			i++

			p.Add(line)
			p.Legend.Add(fmt.Sprintf("%s %s", r.name, axis.label), line)
		}
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
