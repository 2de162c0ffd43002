package inspring

import (
	"math"

	"github.com/cwbudde/algo-gw/waveform"
)

// DampFactor returns the per-sample amplitude decay e^(−π fRing dt/Q).
func DampFactor(fRing, q, dt float64) float64 {
	return math.Exp(-math.Pi * fRing * dt / q)
}

// Quadratic is an amplitude track a₀ + a₁n + a₂n² in samples.
type Quadratic struct {
	A0, A1, A2 float64
}

// FitQuadratic returns the quadratic with value a0 and slope a1 at n = 0
// whose relative slope at n = N equals damp − 1:
//
//	a₂ = ((d−1)(a₀ + N a₁) − a₁) / (2N − N²(d−1))
//
// N = 0 leaves a₂ at zero; no quadratic samples are drawn in that case.
func FitQuadratic(a0, a1, damp float64, n int) Quadratic {
	q := Quadratic{A0: a0, A1: a1}
	if n == 0 {
		return q
	}
	N := float64(n)
	q.A2 = ((damp-1)*(a0+N*a1) - a1) / (2*N - N*N*(damp-1))
	return q
}

// At evaluates the quadratic at sample n.
func (q Quadratic) At(n float64) float64 {
	return q.A0 + q.A1*n + q.A2*n*n
}

// amplitudeFit is the result of fitAmplitudes.
type amplitudeFit struct {
	Plus, Cross Quadratic
	// Handoff is the sample index of the last quadratic sample, where pure
	// decay begins.
	Handoff int
}

// fitAmplitudes fills both polarizations from sample b.Length on: N−1
// quadratic samples with N = 2·mergerLength, then geometric decay by damp
// until the end of the waveform (ringLength samples when N > 0).
func fitAmplitudes(w *waveform.Waveform, b waveform.Boundary, mergerLength int, damp float64) amplitudeFit {
	n := b.Length
	N := 2 * mergerLength

	fit := amplitudeFit{
		Plus:  FitQuadratic(b.AmpPlus, b.AmpPlusDot, damp, N),
		Cross: FitQuadratic(b.AmpCross, b.AmpCrossDot, damp, N),
	}

	i := n
	for k := 1; k < N; k++ {
		w.A[2*i] = float32(fit.Plus.At(float64(k)))
		w.A[2*i+1] = float32(fit.Cross.At(float64(k)))
		i++
	}
	fit.Handoff = i - 1

	plus := float64(w.A[2*fit.Handoff])
	cross := float64(w.A[2*fit.Handoff+1])
	for ; i < w.Len(); i++ {
		plus *= damp
		cross *= damp
		w.A[2*i] = float32(plus)
		w.A[2*i+1] = float32(cross)
	}

	return fit
}
