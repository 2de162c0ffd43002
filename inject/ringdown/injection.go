// Package ringdown describes black-hole ringdown injections and the closed
// form quantities derived from a damped sinusoid: root-sum-square strain,
// effective distance and the radiated energy fraction epsilon.
package ringdown

import (
	"github.com/cwbudde/algo-gw/detector"
	"github.com/cwbudde/algo-gw/gps"
	"github.com/google/uuid"
)

// Descriptor constants.
const (
	WaveformName = "Ringdown"
	Equatorial   = "EQUATORIAL"
)

// SiteInjection holds the per-detector view of an injection.
type SiteInjection struct {
	Site      string // two-letter prefix, e.g. "H1"
	StartTime gps.Time
	Response  detector.Response
	EffDist   float64 // Mpc
	HRSS      float64
}

// Injection is a fully populated ringdown injection.
type Injection struct {
	SimulationID uuid.UUID
	Waveform     string
	Coordinates  string

	GeocentStartTime gps.Time
	Longitude        float64 // rad
	Latitude         float64 // rad
	Distance         float64 // Mpc

	Mass      float64 // solar masses
	Spin      float64
	Frequency float64 // Hz
	Quality   float64

	Phase        float64 // rad
	Polarization float64 // rad
	Inclination  float64 // rad

	Amplitude float64
	HRSS      float64
	Epsilon   float64

	Sites []SiteInjection
}

// Site returns the entry for the given prefix, or nil.
func (inj *Injection) Site(prefix string) *SiteInjection {
	for i := range inj.Sites {
		if inj.Sites[i].Site == prefix {
			return &inj.Sites[i]
		}
	}
	return nil
}
