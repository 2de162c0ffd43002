package sft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeOfPureTone(t *testing.T) {
	const dt, tsft = 1.0 / 256, 4.0
	sfts, err := Compute(sinusoid(1024, dt, 20, 1), epoch, dt, tsft, "H1", WithTukey(0))
	require.NoError(t, err)

	sh := sfts[0].Shape()
	assert.Equal(t, 80, sh.PeakBin)
	assert.Equal(t, 20.0, sh.PeakFreq)
	assert.InEpsilon(t, tsft/2, sh.Peak, 1e-9)
	assert.InDelta(t, 20, sh.Centroid, 1e-6)
	assert.Less(t, sh.Spread, 1e-3)
	assert.Equal(t, 20.0, sh.Rolloff)
	assert.InDelta(t, 2*(1-1/math.Sqrt2)*0.25, sh.Bandwidth, 1e-6)
	assert.Less(t, sh.Flatness, 1e-3)
}

func TestShapeOfFlatSpectrum(t *testing.T) {
	s := &SFT{F0: 10, DeltaF: 0.5, Data: []complex128{1, 1i, -1, 1, 1}}

	sh := s.Shape()
	assert.Equal(t, 0, sh.PeakBin)
	assert.Equal(t, 10.0, sh.PeakFreq)
	assert.InDelta(t, 11, sh.Centroid, 1e-12)
	assert.InDelta(t, math.Sqrt(0.5), sh.Spread, 1e-12)
	assert.Equal(t, 12.0, sh.Rolloff)
	assert.InDelta(t, 2, sh.Bandwidth, 1e-12)
	assert.InDelta(t, 1, sh.Flatness, 1e-12)
}

func TestShapeDegenerate(t *testing.T) {
	assert.Equal(t, Shape{PeakBin: -1}, (&SFT{}).Shape())
	assert.Equal(t, Shape{PeakBin: -1}, (&SFT{Data: make([]complex128, 4)}).Shape())
}

func TestMagnitude(t *testing.T) {
	s := &SFT{Data: []complex128{3 + 4i, -2, 1i}}
	assert.Equal(t, []float64{5, 2, 1}, s.Magnitude())
}
