package inspring

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-gw/waveform"
)

// ringEFolds sets the ring window: 24Q/(2πf dt) samples damp the amplitude
// by e^12.
const ringEFolds = 24

// Asymptote relaxes the frequency exponentially onto the ring frequency,
//
//	f(t) = FRing − A e^(−λt)
//
// matching value and slope at the hand-off.
type Asymptote struct {
	FRing  float64 // Hz
	A      float64 // Hz
	Lambda float64 // 1/s
}

// NewAsymptote matches the asymptote to a hand-off frequency f and slope
// fdot (Hz/s): A = FRing − f, λ = fdot/A.
func NewAsymptote(fRing, f, fdot float64) (Asymptote, error) {
	a := fRing - f
	if !(a > 0) || !(fdot > 0) {
		return Asymptote{}, fmt.Errorf("%w: hand-off f=%v Hz fdot=%v Hz/s ring=%v Hz",
			ErrDegenerateBoundary, f, fdot, fRing)
	}
	return Asymptote{FRing: fRing, A: a, Lambda: fdot / a}, nil
}

// Frequency returns f(t).
func (a Asymptote) Frequency(t float64) float64 {
	return a.FRing - a.A*math.Exp(-a.Lambda*t)
}

// RingLength returns the number of samples over which a ringdown of
// frequency fRing and quality q decays by e^12: ceil(24Q/(2π fRing dt)).
func RingLength(fRing, q, dt float64) int {
	return int(math.Ceil(ringEFolds * q / (2 * math.Pi * fRing * dt)))
}

// relax writes count asymptote samples starting at sample start. Phase is
// integrated with the frequency of the previous sample; the polarization
// slope polDot decays with e^(−λ dt) per sample.
//
// It returns endMerger, the k−1 of the first step k whose stored frequency
// equals the stored ring frequency (0 if none does), and the last
// polarization.
func relax(w *waveform.Waveform, a Asymptote, start, count int, freq, phase, pol, polDot float64) (endMerger int, lastPol float64) {
	dt := w.DeltaT
	ring := float32(a.FRing)
	decay := math.Exp(-a.Lambda * dt)
	found := false

	for k := 1; k <= count; k++ {
		i := start + k - 1

		phase += 2 * math.Pi * freq * dt
		w.Phi[i] = phase

		w.F[i] = float32(a.Frequency(float64(k) * dt))
		freq = float64(w.F[i])
		if !found && w.F[i] == ring {
			endMerger = k - 1
			found = true
		}

		if w.Shift != nil {
			polDot *= decay
			pol += polDot
			w.Shift[i] = float32(pol)
		}
	}

	return endMerger, pol
}
