package sft

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-gw/gps"
	"github.com/cwbudde/algo-vecmath"
)

const defaultTukeyAlpha = 0.001

// Option configures Compute.
type Option func(*computeConfig) error

type computeConfig struct {
	alpha   float64
	fmin    float64
	band    float64
	hasBand bool
}

// WithTukey sets the Tukey taper fraction in [0, 1]. 0 is rectangular.
func WithTukey(alpha float64) Option {
	return func(c *computeConfig) error {
		if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
			return fmt.Errorf("sft: tukey alpha must be in [0, 1]: %v", alpha)
		}
		c.alpha = alpha
		return nil
	}
}

// WithBand keeps only the bins in [fmin, fmin+band].
func WithBand(fmin, band float64) Option {
	return func(c *computeConfig) error {
		if fmin < 0 || band < 0 {
			return fmt.Errorf("%w: fmin=%v band=%v", ErrBandOutOfRange, fmin, band)
		}
		c.fmin, c.band, c.hasBand = fmin, band, true
		return nil
	}
}

// Compute splits strain, sampled every dt seconds from epoch, into
// contiguous SFTs of tsft seconds. Each segment is Tukey windowed and
// transformed; bins are scaled by dt so that they approximate the
// continuous Fourier transform. Trailing samples that do not fill an SFT are
// dropped.
func Compute(strain []float64, epoch gps.Time, dt, tsft float64, name string, opts ...Option) (Vector, error) {
	cfg := computeConfig{alpha: defaultTukeyAlpha}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if !(dt > 0) || !(tsft > 0) {
		return nil, fmt.Errorf("%w: dt=%v tsft=%v", ErrInvalidTsft, dt, tsft)
	}
	n := int(math.Round(tsft / dt))
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleCount, n)
	}
	if len(strain) < n {
		return nil, fmt.Errorf("%w: %d < %d samples", ErrInsufficientData, len(strain), n)
	}

	first, numBins := 0, n/2+1
	if cfg.hasBand {
		first = int(math.Round(cfg.fmin * tsft))
		numBins = int(math.Round(cfg.band*tsft)) + 1
		if first+numBins > n/2+1 {
			return nil, fmt.Errorf("%w: [%v, %v] Hz above Nyquist %v Hz",
				ErrBandOutOfRange, cfg.fmin, cfg.fmin+cfg.band, 0.5/dt)
		}
	}

	timestamps, err := MakeTimestamps(epoch, float64(len(strain))*dt, tsft)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("sft: failed to create FFT plan: %w", err)
	}

	win := tukey(n, cfg.alpha)
	seg := make([]float64, n)
	in := make([]complex128, n)
	out := make([]complex128, n)

	sfts := make(Vector, len(timestamps))
	for i, ts := range timestamps {
		vecmath.MulBlock(seg, strain[i*n:(i+1)*n], win)
		vecmath.ScaleBlockInPlace(seg, dt)
		for j, v := range seg {
			in[j] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("sft: transform %d: %w", i, err)
		}

		sfts[i] = SFT{
			Name:   name,
			Epoch:  ts,
			F0:     float64(first) / tsft,
			DeltaF: 1 / tsft,
			Data:   append([]complex128(nil), out[first:first+numBins]...),
		}
	}

	return sfts, nil
}

// tukey returns a symmetric Tukey window with taper fraction alpha.
func tukey(n int, alpha float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = tukeyAt(float64(i)/float64(n-1), alpha)
	}
	return w
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}
