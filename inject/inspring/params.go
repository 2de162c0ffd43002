package inspring

import (
	"github.com/cwbudde/algo-gw/detector"
	"github.com/cwbudde/algo-gw/gps"
	"github.com/cwbudde/algo-gw/inject/remnant"
	"gonum.org/v1/gonum/spatial/r3"
)

// Params describes the inspiral the waveform was generated from.
type Params struct {
	Mass1, Mass2 float64 // solar masses
	Spin1, Spin2 r3.Vec
	Inclination  float64 // rad

	Longitude    float64 // right ascension, rad
	Latitude     float64 // declination, rad
	Distance     float64 // Mpc
	Polarization float64 // rad, used when the waveform has no shift channel

	// EndTime is the geocentric GPS time of the last inspiral sample.
	EndTime gps.Time
}

// Binary returns the component parameters.
func (p *Params) Binary() remnant.Binary {
	return remnant.Binary{
		Mass1:       p.Mass1,
		Mass2:       p.Mass2,
		Spin1:       p.Spin1,
		Spin2:       p.Spin2,
		Inclination: p.Inclination,
	}
}

// Sky returns the source position.
func (p *Params) Sky() detector.Sky {
	return detector.Sky{Longitude: p.Longitude, Latitude: p.Latitude}
}

// Kind selects which part of the extended waveform is kept.
type Kind int

const (
	// InspiralMergerRing keeps the whole waveform.
	InspiralMergerRing Kind = iota
	// RingOnly zeroes the amplitude before the ringdown starts.
	RingOnly
)

func (k Kind) String() string {
	switch k {
	case InspiralMergerRing:
		return "imr"
	case RingOnly:
		return "ring"
	default:
		return "unknown"
	}
}
