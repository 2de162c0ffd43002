package waveform

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Strain projects the waveform onto a detector with antenna factors fplus
// and fcross:
//
//	h = F+ (A+ cos Φ cos ψ − A× sin Φ sin ψ) + F× (A+ cos Φ sin ψ + A× sin Φ cos ψ)
//
// where ψ is the polarization shift (zero when the channel is absent).
func (w *Waveform) Strain(fplus, fcross float64) []float64 {
	n := w.Len()
	if n == 0 {
		return nil
	}

	plus := make([]float64, n)
	cross := make([]float64, n)
	for i := range n {
		sinPhi, cosPhi := math.Sincos(w.Phi[i])
		hp := float64(w.A[2*i]) * cosPhi
		hc := float64(w.A[2*i+1]) * sinPhi

		if w.Shift != nil {
			sinPsi, cosPsi := math.Sincos(float64(w.Shift[i]))
			plus[i] = hp*cosPsi - hc*sinPsi
			cross[i] = hp*sinPsi + hc*cosPsi
			continue
		}
		plus[i] = hp
		cross[i] = hc
	}

	out := make([]float64, n)
	vecmath.ScaleBlock(out, plus, fplus)
	vecmath.ScaleBlock(plus, cross, fcross)
	vecmath.AddBlockInPlace(out, plus)
	return out
}

// WriteText dumps one line per sample: index, plus and cross amplitude,
// phase and frequency.
func (w *Waveform) WriteText(dst io.Writer) error {
	bw := bufio.NewWriter(dst)
	for i := range w.Len() {
		if _, err := fmt.Fprintf(bw, "%d %e %e %e %e\n",
			i, w.A[2*i], w.A[2*i+1], w.Phi[i], w.F[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
