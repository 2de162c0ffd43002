// Package remnant estimates the final black hole left by a compact binary
// merger and the frequency and quality factor of its dominant ringdown mode.
//
// The estimates are closed-form fits to numerical-relativity results. They
// are approximate and are not guaranteed to be physical for every input.
//
// # Usage
//
//	b := remnant.Binary{Mass1: 10, Mass2: 10, Inclination: 0.3}
//	r, err := remnant.Estimate(b)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("M=%.2f a=%.3f f=%.1f Hz Q=%.2f\n", r.Mass, r.Spin, r.Frequency, r.Quality)
package remnant

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Physical constants in SI units.
const (
	SpeedOfLight = 299792458.0         // m/s
	Gravitation  = 6.67430e-11         // m^3 kg^-1 s^-2
	SolarMass    = 1.988409870698051e30 // kg
)

const (
	// orbitalAngMomFactor is the dimensionless orbital angular momentum per
	// unit η carried into the remnant.
	orbitalAngMomFactor = 4 * 0.7

	// Spins at or above spinLimit are replaced by spinFallback.
	spinLimit    = 0.99
	spinFallback = 0.95
)

// ErrInvalidMass is returned when a component mass is not positive.
var ErrInvalidMass = errors.New("remnant: component masses must be positive")

// Binary holds the source parameters of a compact binary.
type Binary struct {
	Mass1, Mass2 float64 // solar masses
	Spin1, Spin2 r3.Vec  // dimensionless spin vectors
	Inclination  float64 // rad
}

// TotalMass returns Mass1 + Mass2.
func (b Binary) TotalMass() float64 {
	return b.Mass1 + b.Mass2
}

// Eta returns the symmetric mass ratio m1 m2 / M².
func (b Binary) Eta() float64 {
	m := b.TotalMass()
	return b.Mass1 * b.Mass2 / (m * m)
}

// Remnant is the estimated final state.
type Remnant struct {
	// OrbitalAngMom is the dimensionless orbital angular momentum at merger.
	OrbitalAngMom float64
	// AngMom is the total dimensionless angular momentum vector.
	AngMom r3.Vec

	Mass      float64 // solar masses
	Spin      float64 // dimensionless
	Frequency float64 // Hz
	Quality   float64
}

// Estimate computes the remnant of b.
//
// The orbital angular momentum 4η·0.7 lies along the inclination in the x-z
// plane and is added to the component spins weighted by mᵢ²/M². The norm of
// the sum is the raw spin. The radiated mass fraction 0.01(1+6|J|²) uses the
// raw value; the reported spin falls back to 0.95 when the raw value reaches
// 0.99.
func Estimate(b Binary) (Remnant, error) {
	if !(b.Mass1 > 0) || !(b.Mass2 > 0) {
		return Remnant{}, fmt.Errorf("%w: m1=%v m2=%v", ErrInvalidMass, b.Mass1, b.Mass2)
	}

	m := b.TotalMass()
	orb := orbitalAngMomFactor * b.Eta()

	sinI, cosI := math.Sincos(b.Inclination)
	j := r3.Vec{X: orb * sinI, Z: orb * cosI}
	j = r3.Add(j, r3.Scale(b.Mass1*b.Mass1/(m*m), b.Spin1))
	j = r3.Add(j, r3.Scale(b.Mass2*b.Mass2/(m*m), b.Spin2))

	raw := r3.Norm(j)
	spin := raw
	if raw >= spinLimit {
		spin = spinFallback
	}

	mass := m * (1 - 0.01*(1+6*raw*raw))

	return Remnant{
		OrbitalAngMom: orb,
		AngMom:        j,
		Mass:          mass,
		Spin:          spin,
		Frequency:     RingFrequency(mass, spin),
		Quality:       RingQuality(spin),
	}, nil
}

// RingFrequency returns the central frequency in Hz of the fundamental
// l=m=2 mode of a black hole with the given mass (solar masses) and spin.
func RingFrequency(mass, spin float64) float64 {
	return massFrequency / mass * (1 - 0.63*math.Pow(1-spin, 0.3))
}

// RingQuality returns the quality factor of the fundamental l=m=2 mode.
func RingQuality(spin float64) float64 {
	return 2 * math.Pow(1-spin, -0.45)
}

// massFrequency is c³/(2πG M☉) in Hz.
var massFrequency = SpeedOfLight * SpeedOfLight * SpeedOfLight /
	(2 * math.Pi * Gravitation * SolarMass)
