// Package waveform models a gravitational waveform as uniformly sampled
// amplitude, frequency, phase and optional polarization-shift channels.
//
// Amplitudes are interleaved: A[2i] is the plus and A[2i+1] the cross
// amplitude of sample i. Phase is kept in double precision because it
// accumulates over the full duration; the other channels are single
// precision.
//
// A Waveform is grown with [Waveform.Extend], which either succeeds for all
// channels or leaves the waveform untouched. [Waveform.Release] drops every
// channel and is how producers signal that a waveform must not be consumed.
package waveform

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-gw/gps"
)

// Errors returned by waveform validation and boundary extraction.
var (
	ErrNilWaveform    = errors.New("waveform: nil waveform")
	ErrMissingChannel = errors.New("waveform: amplitude, frequency or phase channel missing")
	ErrLengthMismatch = errors.New("waveform: channel lengths differ")
	ErrTooShort       = errors.New("waveform: at least 2 samples required")
	ErrInvalidDeltaT  = errors.New("waveform: sample interval must be positive")
	ErrInvalidLength  = errors.New("waveform: length must be non-negative")
)

// Waveform is a sampled gravitational waveform.
type Waveform struct {
	// DeltaT is the sample interval in seconds.
	DeltaT float64
	// Epoch is the GPS time of sample 0.
	Epoch gps.Time

	A     []float32 // interleaved plus/cross amplitude
	F     []float32 // instantaneous frequency (Hz)
	Phi   []float64 // cumulative phase (rad)
	Shift []float32 // polarization shift (rad), nil when absent
}

// New allocates a zero-filled waveform of n samples.
func New(n int, dt float64, withShift bool) (*Waveform, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeltaT, dt)
	}

	w := &Waveform{
		DeltaT: dt,
		A:      make([]float32, 2*n),
		F:      make([]float32, n),
		Phi:    make([]float64, n),
	}
	if withShift {
		w.Shift = make([]float32, n)
	}
	return w, nil
}

// Len returns the number of samples.
func (w *Waveform) Len() int {
	return len(w.F)
}

// HasShift reports whether the waveform carries a polarization channel.
func (w *Waveform) HasShift() bool {
	return w.Shift != nil
}

// Released reports whether the channels have been dropped.
func (w *Waveform) Released() bool {
	return w.A == nil && w.F == nil && w.Phi == nil && w.Shift == nil
}

// Release drops all channels. The waveform is unusable afterwards.
func (w *Waveform) Release() {
	w.A = nil
	w.F = nil
	w.Phi = nil
	w.Shift = nil
}

// Valid checks the channel invariants.
func (w *Waveform) Valid() error {
	if w == nil {
		return ErrNilWaveform
	}
	if w.A == nil || w.F == nil || w.Phi == nil {
		return ErrMissingChannel
	}
	if w.DeltaT <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDeltaT, w.DeltaT)
	}

	n := len(w.F)
	if len(w.A) != 2*n || len(w.Phi) != n || (w.Shift != nil && len(w.Shift) != n) {
		return fmt.Errorf("%w: a=%d f=%d phi=%d shift=%d",
			ErrLengthMismatch, len(w.A), len(w.F), len(w.Phi), len(w.Shift))
	}
	return nil
}

// Extend grows every channel by extra zero-valued samples.
//
// All channels are resized before any is committed, so on error the waveform
// is exactly as it was.
func (w *Waveform) Extend(extra int) error {
	if err := w.Valid(); err != nil {
		return err
	}
	if extra < 0 {
		return fmt.Errorf("%w: extend by %d", ErrInvalidLength, extra)
	}

	n := w.Len() + extra
	a := resize(w.A, 2*n)
	f := resize(w.F, n)
	phi := resize(w.Phi, n)

	var shift []float32
	if w.Shift != nil {
		shift = resize(w.Shift, n)
	}

	w.A, w.F, w.Phi, w.Shift = a, f, phi, shift
	return nil
}

// ZeroHead clears the first n interleaved amplitude values. n is clamped
// to the amplitude length.
func (w *Waveform) ZeroHead(n int) {
	n = max(0, min(n, len(w.A)))
	clear(w.A[:n])
}

// resize returns s with length n, reusing capacity when possible. Elements
// beyond the previous length are zeroed.
func resize[T float32 | float64](s []T, n int) []T {
	old := len(s)
	if n <= cap(s) {
		s = s[:n]
		if n > old {
			clear(s[old:])
		}
		return s
	}

	grown := make([]T, n)
	copy(grown, s)
	return grown
}
