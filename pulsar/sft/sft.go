// Package sft provides short Fourier transforms (SFTs), the fixed-duration
// frequency-domain data products consumed by continuous-wave searches.
//
// An [SFT] holds a contiguous band of complex bins starting at F0 with
// spacing DeltaF = 1/Tsft. A [Vector] is an ordered list of SFTs that share
// the same number of bins.
//
// # Usage
//
//	ts, _ := sft.MakeTimestamps(start, 3600, 1800)
//	sfts, err := sft.Compute(strain, start, 1.0/4096, 1800, "H1", sft.WithBand(240, 20))
//	if err != nil {
//		return err
//	}
//	k, f := sfts[0].PeakBin()
package sft

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-gw/gps"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by SFT construction and manipulation.
var (
	ErrInvalidBins      = errors.New("sft: number of bins must be non-negative")
	ErrBinMismatch      = errors.New("sft: SFT vectors must have the same number of frequency bins")
	ErrShortDuration    = errors.New("sft: duration shorter than one SFT")
	ErrInvalidTsft      = errors.New("sft: SFT length must be positive")
	ErrSampleCount      = errors.New("sft: samples per SFT must be a power of two")
	ErrBandOutOfRange   = errors.New("sft: band outside the transform")
	ErrInsufficientData = errors.New("sft: strain shorter than one SFT")
)

// SFT is one short Fourier transform.
type SFT struct {
	// Name is the two-character channel prefix of the detector.
	Name   string
	Epoch  gps.Time
	F0     float64 // Hz, frequency of bin 0
	DeltaF float64 // Hz
	Data   []complex128
}

// Vector is an ordered collection of SFTs.
type Vector []SFT

// New allocates an SFT with numBins zeroed bins.
func New(numBins int) (*SFT, error) {
	if numBins < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, numBins)
	}
	return &SFT{Data: make([]complex128, numBins)}, nil
}

// NewVector allocates numSFTs SFTs of numBins bins each.
func NewVector(numSFTs, numBins int) (Vector, error) {
	if numSFTs < 0 || numBins < 0 {
		return nil, fmt.Errorf("%w: %d SFTs of %d bins", ErrInvalidBins, numSFTs, numBins)
	}
	v := make(Vector, numSFTs)
	for i := range v {
		v[i].Data = make([]complex128, numBins)
	}
	return v, nil
}

// NumBins returns the number of frequency bins.
func (s *SFT) NumBins() int {
	return len(s.Data)
}

// Frequency returns the frequency of bin k.
func (s *SFT) Frequency(k int) float64 {
	return s.F0 + float64(k)*s.DeltaF
}

// Copy returns a deep copy of s, header and data.
func (s *SFT) Copy() *SFT {
	c := *s
	if s.Data != nil {
		c.Data = append([]complex128(nil), s.Data...)
	}
	return &c
}

// PeakBin returns the bin with the largest power and its frequency. It
// returns -1 for an empty SFT.
func (s *SFT) PeakBin() (int, float64) {
	n := len(s.Data)
	if n == 0 {
		return -1, math.NaN()
	}

	re := make([]float64, n)
	im := make([]float64, n)
	for i, c := range s.Data {
		re[i] = real(c)
		im[i] = imag(c)
	}
	power := make([]float64, n)
	vecmath.Power(power, re, im)

	best := 0
	for i, p := range power {
		if p > power[best] {
			best = i
		}
	}
	return best, s.Frequency(best)
}

// numBins returns the bin count of the first SFT, or 0 for an empty vector.
func (v Vector) numBins() int {
	if len(v) == 0 {
		return 0
	}
	return len(v[0].Data)
}

// Concat returns a new vector holding deep copies of a followed by b.
func Concat(a, b Vector) (Vector, error) {
	if na, nb := a.numBins(), b.numBins(); na != nb {
		return nil, fmt.Errorf("%w: %d vs %d", ErrBinMismatch, na, nb)
	}

	out := make(Vector, 0, len(a)+len(b))
	for _, v := range []Vector{a, b} {
		for i := range v {
			out = append(out, *v[i].Copy())
		}
	}
	return out, nil
}

// Append adds a deep copy of s to the end of v. No consistency checks are
// made against the SFTs already present.
func (v *Vector) Append(s *SFT) {
	*v = append(*v, *s.Copy())
}

// MakeTimestamps returns the start times of the floor(duration/tsft) SFTs
// covering [start, start+duration). Timestamps are built by successive
// addition of tsft so that nanosecond rounding does not grow with the index.
func MakeTimestamps(start gps.Time, duration, tsft float64) ([]gps.Time, error) {
	if !(tsft > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTsft, tsft)
	}
	if duration < tsft {
		return nil, fmt.Errorf("%w: %v s < %v s", ErrShortDuration, duration, tsft)
	}

	n := int(duration / tsft)
	ts := make([]gps.Time, n)
	t := start
	for i := range ts {
		ts[i] = t
		t = t.Add(tsft)
	}
	return ts, nil
}
