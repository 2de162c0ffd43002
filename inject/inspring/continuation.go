package inspring

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-gw/waveform"
)

// handoffFraction is the fraction of the ring frequency at which the power
// law continuation hands over to the exponential asymptote.
const handoffFraction = 0.9

// maxMergerPhase bounds the phase accumulated by the continuation.
const maxMergerPhase = 4 * math.Pi

// Continuation extends an inspiral past its last sample assuming
// ḟ ∝ f^(11/3), which gives
//
//	f(t) = f₀ (1 − 8ḟ₀t/(3f₀))^(−3/8)
//	φ(t) = φ₀ − 2π (3/5) f₀²/ḟ₀ (1 − 8ḟ₀t/(3f₀))^(5/8)
//
// with φ₀ chosen so that φ(0) equals the boundary phase.
type Continuation struct {
	F0    float64 // Hz
	FDot0 float64 // Hz/s
	Phase float64 // phase at t = 0
}

// NewContinuation starts a continuation at the boundary b.
func NewContinuation(b waveform.Boundary) (Continuation, error) {
	if !(b.Freq > 0) || !(b.FreqDot > 0) {
		return Continuation{}, fmt.Errorf("%w: f=%v Hz fdot=%v Hz/s",
			ErrDegenerateBoundary, b.Freq, b.FreqDot)
	}
	return Continuation{F0: b.Freq, FDot0: b.FreqDot, Phase: b.Phase}, nil
}

// chirpPhase is 2π·3f₀²/(5ḟ₀), the phase still to come before the power law
// diverges.
func (c Continuation) chirpPhase() float64 {
	return 2 * math.Pi * 3 * c.F0 * c.F0 / (5 * c.FDot0)
}

func (c Continuation) factor(t float64) float64 {
	return 1 - 8*c.FDot0*t/(3*c.F0)
}

// Phi0 returns the phase constant φ₀.
func (c Continuation) Phi0() float64 {
	return c.Phase + c.chirpPhase()
}

// Frequency returns f(t).
func (c Continuation) Frequency(t float64) float64 {
	return c.F0 * math.Pow(c.factor(t), -3.0/8.0)
}

// PhaseAt returns φ(t).
func (c Continuation) PhaseAt(t float64) float64 {
	return c.Phi0() - c.chirpPhase()*math.Pow(c.factor(t), 5.0/8.0)
}

// TimeToFrequency returns the time at which the continuation reaches f.
// It is negative when f is below f₀.
func (c Continuation) TimeToFrequency(f float64) float64 {
	return 3 * c.F0 / (8 * c.FDot0) * (1 - math.Pow(c.F0/f, 8.0/3.0))
}

// MergerLength returns the number of samples generated before the hand-off
// at 90% of fRing: ceil(t/dt) − 1.
func (c Continuation) MergerLength(fRing, dt float64) int {
	t := c.TimeToFrequency(handoffFraction * fRing)
	return int(math.Ceil(t/dt)) - 1
}

// MergerPhase returns the phase accumulated between the boundary and the
// hand-off at 90% of fRing.
func (c Continuation) MergerPhase(fRing float64) float64 {
	return c.PhaseAt(c.TimeToFrequency(handoffFraction*fRing)) - c.Phase
}

// handoff returns the last frequency the continuation stores after
// mergerLength samples and its one-sided slope (Hz/s), both at storage
// precision. With no merger samples the hand-off is the boundary itself.
func (c Continuation) handoff(mergerLength int, dt float64) (freq, fdot float64) {
	if mergerLength == 0 {
		return c.F0, c.FDot0
	}
	stored := func(k int) float64 {
		if k == 0 {
			return c.F0
		}
		return float64(float32(c.Frequency(float64(k) * dt)))
	}
	freq = stored(mergerLength)
	return freq, (freq - stored(mergerLength-1)) / dt
}

// continueMerger writes mergerLength continuation samples of frequency and
// phase starting at sample n, and extrapolates the polarization linearly
// with the boundary slope. It returns the last frequency, phase and
// polarization written.
func continueMerger(w *waveform.Waveform, b waveform.Boundary, c Continuation, mergerLength int) (freq, phase, pol float64) {
	n, dt := b.Length, w.DeltaT
	freq, phase, pol = b.Freq, b.Phase, b.Polarization

	for k := 1; k <= mergerLength; k++ {
		t := float64(k) * dt
		i := n + k - 1

		w.F[i] = float32(c.Frequency(t))
		w.Phi[i] = c.PhaseAt(t)
		freq, phase = float64(w.F[i]), w.Phi[i]

		if w.Shift != nil {
			pol += b.PolDot
			w.Shift[i] = float32(pol)
		}
	}

	return freq, phase, pol
}
