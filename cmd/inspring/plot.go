package main

import (
	"fmt"
	"image/color"

	"github.com/cwbudde/algo-gw/waveform"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// writePlot saves the plus and cross strain of w as a PNG, with a marker at
// the start of the ringdown.
func writePlot(w *waveform.Waveform, ringStart float64, path string) error {
	p := plot.New()
	p.Title.Text = "Inspiral, merger and ringdown"
	p.X.Label.Text = "Time since epoch (s)"
	p.Y.Label.Text = "Strain"

	series := []struct {
		name   string
		fplus  float64
		fcross float64
		color  color.Color
	}{
		{"h+", 1, 0, color.RGBA{R: 31, G: 119, B: 180, A: 255}},
		{"hx", 0, 1, color.RGBA{R: 255, G: 127, B: 14, A: 255}},
	}

	for _, s := range series {
		h := w.Strain(s.fplus, s.fcross)
		pts := make(plotter.XYs, len(h))
		for i, v := range h {
			pts[i] = plotter.XY{X: float64(i) * w.DeltaT, Y: v}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot %s: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	marker, err := plotter.NewLine(plotter.XYs{{X: ringStart, Y: p.Y.Min}, {X: ringStart, Y: p.Y.Max}})
	if err != nil {
		return fmt.Errorf("plot ringdown marker: %w", err)
	}
	marker.Color = color.Gray{Y: 128}
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(marker)

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
