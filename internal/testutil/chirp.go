package testutil

import (
	"fmt"
	"math"
)

// ChirpTail describes a synthetic inspiral tail whose frequency grows
// linearly and reaches FinalFreq on the last sample.
type ChirpTail struct {
	Samples   int
	DeltaT    float64
	FinalFreq float64 // Hz
	FreqDot   float64 // Hz/s

	// Amplitude is the overall strain amplitude on the last sample. Earlier
	// samples are reduced by AmpSlope (fraction of Amplitude) per sample.
	Amplitude float64
	AmpSlope  float64
	// CosIota sets the plus/cross split: A+ = A(1+cos²ι), A× = 2A cosι.
	CosIota float64

	// WithShift adds a polarization channel growing by ShiftSlope per sample.
	WithShift  bool
	ShiftSlope float64
}

// HeadFreq returns the frequency of the first sample.
func (c ChirpTail) HeadFreq() float64 {
	return c.FinalFreq - c.FreqDot*c.DeltaT*float64(c.Samples-1)
}

// Channels returns the interleaved amplitude, frequency, phase and
// polarization channels. shift is nil unless WithShift is set. It panics
// if the tail would start at a non-positive frequency.
func (c ChirpTail) Channels() (a, f []float32, phi []float64, shift []float32) {
	if c.Samples > 0 && !(c.HeadFreq() > 0) {
		panic(fmt.Sprintf("testutil: chirp tail starts at %v Hz", c.HeadFreq()))
	}
	n := c.Samples
	a = make([]float32, 2*n)
	f = make([]float32, n)
	phi = make([]float64, n)
	if c.WithShift {
		shift = make([]float32, n)
	}

	plus := 1 + c.CosIota*c.CosIota
	cross := 2 * c.CosIota
	for i := range n {
		back := float64(n - 1 - i)
		amp := c.Amplitude * (1 - c.AmpSlope*back)
		a[2*i] = float32(amp * plus)
		a[2*i+1] = float32(amp * cross)

		f[i] = float32(c.FinalFreq - c.FreqDot*c.DeltaT*back)
		if i > 0 {
			phi[i] = phi[i-1] + 2*math.Pi*float64(f[i-1])*c.DeltaT
		}
		if shift != nil {
			shift[i] = float32(c.ShiftSlope * float64(i))
		}
	}
	return a, f, phi, shift
}
