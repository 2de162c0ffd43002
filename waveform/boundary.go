package waveform

import "fmt"

// Boundary holds the terminal state of a waveform and one-step backward
// differences of each channel.
type Boundary struct {
	Length int

	AmpPlus     float64
	AmpPlusDot  float64 // per sample
	AmpCross    float64
	AmpCrossDot float64 // per sample

	Freq    float64
	FreqDot float64 // Hz/s
	Phase   float64

	HasShift     bool
	Polarization float64
	PolDot       float64 // per sample
}

// Boundary reads the last sample of w and its backward differences.
func (w *Waveform) Boundary() (Boundary, error) {
	if err := w.Valid(); err != nil {
		return Boundary{}, err
	}

	n := w.Len()
	if n < 2 {
		return Boundary{}, fmt.Errorf("%w: have %d", ErrTooShort, n)
	}

	b := Boundary{
		Length:      n,
		AmpPlus:     float64(w.A[2*n-2]),
		AmpPlusDot:  float64(w.A[2*n-2]) - float64(w.A[2*n-4]),
		AmpCross:    float64(w.A[2*n-1]),
		AmpCrossDot: float64(w.A[2*n-1]) - float64(w.A[2*n-3]),
		Freq:        float64(w.F[n-1]),
		FreqDot:     (float64(w.F[n-1]) - float64(w.F[n-2])) / w.DeltaT,
		Phase:       w.Phi[n-1],
	}

	if w.Shift != nil {
		b.HasShift = true
		b.Polarization = float64(w.Shift[n-1])
		b.PolDot = float64(w.Shift[n-1]) - float64(w.Shift[n-2])
	}

	return b, nil
}
