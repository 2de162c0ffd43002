package chirp

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-gw/gps"
	"github.com/cwbudde/algo-gw/inject/inspring"
	"github.com/cwbudde/algo-gw/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equalMass() Params {
	return Params{
		Mass1:       10,
		Mass2:       10,
		Distance:    100,
		Inclination: 1,
		FLow:        40,
		DeltaT:      1.0 / 16384,
	}
}

func TestChirpMassAndLightRing(t *testing.T) {
	assert.InDelta(t, 8.705505632961241, ChirpMass(10, 10), 1e-12)
	assert.InDelta(t, 621.8544182617234, LightRingFrequency(20), 1e-9)
	assert.InDelta(t, 0.938493332342253, TimeToCoalescence(ChirpMass(10, 10), 40), 1e-12)

	// inverse of TimeToCoalescence
	mc := ChirpMass(3, 7)
	tc := TimeToCoalescence(mc, 123)
	assert.InDelta(t, 123, frequencyAt(mc*solarTime, tc), 1e-9)
}

func TestNewtonianSamples(t *testing.T) {
	w, err := Newtonian(equalMass())
	require.NoError(t, err)
	require.NoError(t, w.Valid())

	assert.Equal(t, 15367, w.Len())
	assert.InDelta(t, 40, w.F[0], 1e-4)
	assert.InDelta(t, 620.4614865493678, w.F[w.Len()-1], 1e-3)
	assert.LessOrEqual(t, float64(w.F[w.Len()-1]), LightRingFrequency(20))

	testutil.RequireFinite(t, w.A)
	testutil.RequireFinite(t, w.Phi)

	ci := math.Cos(1)
	for i := 1; i < w.Len(); i++ {
		require.Greater(t, w.F[i], w.F[i-1], "frequency must rise at %d", i)
		require.GreaterOrEqual(t, w.A[2*i], w.A[2*i-2], "amplitude must rise at %d", i)

		// the phase advances by 2π times the mean frequency of the step
		want := math.Pi * float64(w.F[i]+w.F[i-1]) * w.DeltaT
		require.InEpsilon(t, want, w.Phi[i]-w.Phi[i-1], 1e-3, "phase step at %d", i)
	}
	assert.InEpsilon(t, (1+ci*ci)/(2*ci), float64(w.A[0]/w.A[1]), 1e-6)
}

func TestNewtonianCustomFinalFrequency(t *testing.T) {
	p := equalMass()
	p.FFinal = 100
	p.Phase = 0.5

	w, err := Newtonian(p)
	require.NoError(t, err)
	assert.Equal(t, 0.5, w.Phi[0])
	assert.LessOrEqual(t, float64(w.F[w.Len()-1]), 100.0)
	assert.Greater(t, float64(w.F[w.Len()-1]), 99.0)
}

func TestNewtonianRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{name: "zero mass", modify: func(p *Params) { p.Mass2 = 0 }},
		{name: "negative distance", modify: func(p *Params) { p.Distance = -1 }},
		{name: "zero dt", modify: func(p *Params) { p.DeltaT = 0 }},
		{name: "zero low frequency", modify: func(p *Params) { p.FLow = 0 }},
		{name: "final below low", modify: func(p *Params) { p.FFinal = 30 }},
		{name: "above nyquist", modify: func(p *Params) { p.DeltaT = 1.0 / 1024 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := equalMass()
			tt.modify(&p)
			if _, err := Newtonian(p); !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("Newtonian() error = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestNewtonianFeedsMergerRingdown(t *testing.T) {
	w, err := Newtonian(equalMass())
	require.NoError(t, err)
	n := w.Len()

	inj, err := inspring.Generate(w, &inspring.Params{
		Mass1:       10,
		Mass2:       10,
		Inclination: 1,
		Distance:    100,
		EndTime:     gps.Time{Sec: 1000000000},
	}, inspring.InspiralMergerRing)
	require.NoError(t, err)

	assert.Greater(t, w.Len(), n)
	assert.InDelta(t, 1, inj.Inclination, 1e-3)
	assert.InDelta(t, 943.5201547392371, inj.Frequency, 1e-6)
	assert.Equal(t, int64(1000000000), inj.GeocentStartTime.Sec)
	require.Len(t, inj.Sites, 2)
}
