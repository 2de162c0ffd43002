package sft

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Shape summarizes the magnitude spectrum of one SFT. Frequencies are in Hz
// and refer to the SFT band, not to bin indices.
type Shape struct {
	PeakBin  int
	PeakFreq float64
	Peak     float64 // |X| at PeakBin

	Centroid  float64 // magnitude-weighted mean frequency
	Spread    float64 // magnitude-weighted standard deviation around Centroid
	Rolloff   float64 // frequency below which 85% of the energy lies
	Bandwidth float64 // width between the -3 dB points around the peak
	Flatness  float64 // geometric over arithmetic mean of |X|, 0..1
}

const rolloffFraction = 0.85

// Magnitude returns |X| for every bin.
func (s *SFT) Magnitude() []float64 {
	n := len(s.Data)
	re := make([]float64, n)
	im := make([]float64, n)
	for i, c := range s.Data {
		re[i] = real(c)
		im[i] = imag(c)
	}
	mag := make([]float64, n)
	vecmath.Magnitude(mag, re, im)
	return mag
}

// Shape computes the spectral shape of s. An empty or all-zero SFT yields
// a zero Shape with PeakBin -1.
func (s *SFT) Shape() Shape {
	mag := s.Magnitude()
	if len(mag) == 0 {
		return Shape{PeakBin: -1}
	}

	var sh Shape
	var sum, energy float64
	for i, v := range mag {
		sum += v
		energy += v * v
		if v > sh.Peak {
			sh.Peak, sh.PeakBin = v, i
		}
	}
	if sum == 0 {
		return Shape{PeakBin: -1}
	}
	sh.PeakFreq = s.Frequency(sh.PeakBin)

	var weighted float64
	for i, v := range mag {
		weighted += s.Frequency(i) * v
	}
	sh.Centroid = weighted / sum

	var sq float64
	for i, v := range mag {
		d := s.Frequency(i) - sh.Centroid
		sq += d * d * v
	}
	sh.Spread = math.Sqrt(sq / sum)

	sh.Rolloff = s.Frequency(len(mag) - 1)
	var cum float64
	for i, v := range mag {
		cum += v * v
		if cum >= rolloffFraction*energy {
			sh.Rolloff = s.Frequency(i)
			break
		}
	}

	sh.Bandwidth = s.bandwidth(mag, sh.PeakBin, sh.Peak)
	sh.Flatness = flatness(mag)
	return sh
}

func (s *SFT) bandwidth(mag []float64, peakBin int, peak float64) float64 {
	n := len(mag)
	threshold := peak / math.Sqrt2

	lower := s.Frequency(0)
	for i := peakBin; i >= 1; i-- {
		if mag[i-1] <= threshold && mag[i] > threshold {
			lower = s.crossing(i-1, mag[i-1], mag[i], threshold)
			break
		}
	}

	upper := s.Frequency(n - 1)
	for i := peakBin; i < n-1; i++ {
		if mag[i+1] <= threshold && mag[i] > threshold {
			upper = s.crossing(i, mag[i], mag[i+1], threshold)
			break
		}
	}

	return max(upper-lower, 0)
}

// crossing interpolates the frequency between bins k and k+1 at which the
// magnitude passes threshold.
func (s *SFT) crossing(k int, m0, m1, threshold float64) float64 {
	if m1 == m0 {
		return s.Frequency(k) + s.DeltaF/2
	}
	return s.Frequency(k) + (threshold-m0)/(m1-m0)*s.DeltaF
}

// flatness is the Wiener entropy over all bins; a single zero bin makes it 0.
func flatness(mag []float64) float64 {
	var sumLin, sumLog float64
	for _, v := range mag {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	n := float64(len(mag))
	return math.Exp(sumLog/n) / (sumLin / n)
}
