// Package chirp synthesizes leading-order (Newtonian) inspiral waveforms in
// the amplitude, frequency and phase representation used by package
// waveform.
//
// The waveform starts at FLow and stops on the last sample below FFinal,
// which defaults to the light-ring frequency of the total mass. It is meant
// as input for the merger-ringdown extension in package inspring, not as an
// accurate template.
//
// # Usage
//
//	w, err := chirp.Newtonian(chirp.Params{
//		Mass1: 10, Mass2: 10, Distance: 100, Inclination: 1,
//		FLow: 40, DeltaT: 1.0 / 16384,
//	})
package chirp

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-gw/inject/remnant"
	"github.com/cwbudde/algo-gw/inject/ringdown"
	"github.com/cwbudde/algo-gw/waveform"
)

// ErrInvalidParams is returned for masses, distances or frequencies that do
// not describe an inspiral.
var ErrInvalidParams = errors.New("chirp: invalid parameters")

// solarTime is G·M☉/c³ in seconds.
const solarTime = remnant.Gravitation * remnant.SolarMass /
	(remnant.SpeedOfLight * remnant.SpeedOfLight * remnant.SpeedOfLight)

// Params describes a non-spinning binary and the sampling of its inspiral.
type Params struct {
	Mass1, Mass2 float64 // solar masses
	Distance     float64 // Mpc
	Inclination  float64 // rad
	Phase        float64 // GW phase at FLow, rad

	FLow   float64 // Hz
	FFinal float64 // Hz, 0 selects the light-ring frequency
	DeltaT float64 // s
}

// ChirpMass returns (m₁m₂)^(3/5) / (m₁+m₂)^(1/5).
func ChirpMass(m1, m2 float64) float64 {
	return math.Pow(m1*m2, 3.0/5.0) / math.Pow(m1+m2, 1.0/5.0)
}

// LightRingFrequency returns the gravitational-wave frequency of a circular
// orbit at the light ring of a Schwarzschild black hole of the given mass
// in solar masses: c³/(3^(3/2) π G M).
func LightRingFrequency(mass float64) float64 {
	return 1 / (math.Pow(3, 1.5) * math.Pi * solarTime * mass)
}

// TimeToCoalescence returns the leading-order time left before coalescence
// once the frequency reaches f, for a chirp mass mc in solar masses.
func TimeToCoalescence(mc, f float64) float64 {
	t := mc * solarTime
	return 5.0 / 256.0 * math.Pow(t, -5.0/3.0) * math.Pow(math.Pi*f, -8.0/3.0)
}

// frequencyAt inverts TimeToCoalescence.
func frequencyAt(t, tau float64) float64 {
	return math.Pow(5/(256*tau), 3.0/8.0) * math.Pow(t, -5.0/8.0) / math.Pi
}

// Newtonian returns the inspiral of p sampled every p.DeltaT.
func Newtonian(p Params) (*waveform.Waveform, error) {
	switch {
	case !(p.Mass1 > 0) || !(p.Mass2 > 0):
		return nil, fmt.Errorf("%w: masses %v, %v", ErrInvalidParams, p.Mass1, p.Mass2)
	case !(p.Distance > 0):
		return nil, fmt.Errorf("%w: distance %v", ErrInvalidParams, p.Distance)
	case !(p.DeltaT > 0):
		return nil, fmt.Errorf("%w: sample interval %v", ErrInvalidParams, p.DeltaT)
	case !(p.FLow > 0):
		return nil, fmt.Errorf("%w: low frequency %v", ErrInvalidParams, p.FLow)
	}

	fFinal := p.FFinal
	if fFinal == 0 {
		fFinal = LightRingFrequency(p.Mass1 + p.Mass2)
	}
	if !(fFinal > p.FLow) || fFinal >= 0.5/p.DeltaT {
		return nil, fmt.Errorf("%w: band [%v, %v] Hz at %v Hz sampling",
			ErrInvalidParams, p.FLow, fFinal, 1/p.DeltaT)
	}

	mc := ChirpMass(p.Mass1, p.Mass2)
	t := mc * solarTime
	tau0 := TimeToCoalescence(mc, p.FLow)
	tauEnd := TimeToCoalescence(mc, fFinal)

	n := int(math.Floor((tau0-tauEnd)/p.DeltaT)) + 1
	w, err := waveform.New(n, p.DeltaT, false)
	if err != nil {
		return nil, err
	}

	ci := math.Cos(p.Inclination)
	plus, cross := 1+ci*ci, 2*ci
	// half the strain amplitude 4c(GM/c³)^(5/3)(πf)^(2/3)/D
	scale := 2 * remnant.SpeedOfLight * math.Pow(t, 5.0/3.0) / (p.Distance * ringdown.Megaparsec)
	phase0 := 2 * math.Pow(tau0/(5*t), 5.0/8.0)

	for i := range n {
		tau := tau0 - float64(i)*p.DeltaT
		f := frequencyAt(t, tau)
		amp := scale * math.Pow(math.Pi*f, 2.0/3.0)

		w.A[2*i] = float32(amp * plus)
		w.A[2*i+1] = float32(amp * cross)
		w.F[i] = float32(f)
		w.Phi[i] = p.Phase + phase0 - 2*math.Pow(tau/(5*t), 5.0/8.0)
	}

	return w, nil
}
