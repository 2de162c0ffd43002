package detector

import (
	"math"

	"github.com/cwbudde/algo-gw/gps"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// SpeedOfLight is c in m/s.
const SpeedOfLight = 299792458.0

// Sky is a position in equatorial coordinates, in radians.
// Longitude is the right ascension and Latitude the declination.
type Sky struct {
	Longitude float64
	Latitude  float64
}

// Source is a sky position plus the wave polarization angle ψ.
type Source struct {
	Sky
	Polarization float64
}

// Response holds the antenna-pattern factors F+ and F×.
type Response struct {
	Plus  float64
	Cross float64
}

// AMResponse returns the plus and cross antenna-pattern response of site to
// a wave from src arriving at GPS time t.
func AMResponse(site *Site, src Source, t gps.Time) Response {
	gha := gps.GMST(t) - src.Longitude
	sinGHA, cosGHA := math.Sincos(gha)
	sinDec, cosDec := math.Sincos(src.Latitude)
	sinPsi, cosPsi := math.Sincos(src.Polarization)

	x := mat.NewVecDense(3, []float64{
		-cosPsi*sinGHA - sinPsi*cosGHA*sinDec,
		-cosPsi*cosGHA + sinPsi*sinGHA*sinDec,
		sinPsi * cosDec,
	})
	y := mat.NewVecDense(3, []float64{
		sinPsi*sinGHA - cosPsi*cosGHA*sinDec,
		sinPsi*cosGHA + cosPsi*sinGHA*sinDec,
		cosPsi * cosDec,
	})

	d := site.Response
	return Response{
		Plus:  mat.Inner(x, d, x) - mat.Inner(y, d, y),
		Cross: mat.Inner(x, d, y) + mat.Inner(y, d, x),
	}
}

// TimeDelay returns the arrival time at site minus the arrival time at the
// geocentre, in seconds, for a plane wave from sky at GPS time t.
func TimeDelay(site *Site, sky Sky, t gps.Time) float64 {
	return -r3.Dot(site.Vertex, Direction(sky, t)) / SpeedOfLight
}

// Direction returns the Earth-fixed unit vector pointing from the geocentre
// towards sky at GPS time t.
func Direction(sky Sky, t gps.Time) r3.Vec {
	lon := sky.Longitude - gps.GMST(t)
	sinLon, cosLon := math.Sincos(lon)
	sinLat, cosLat := math.Sincos(sky.Latitude)
	return r3.Vec{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}
}

// Earth evaluates site responses with the rigid-Earth model of this package.
// It is the default collaborator used by injection code.
type Earth struct{}

// AMResponse implements the antenna-pattern capability.
func (Earth) AMResponse(site *Site, src Source, t gps.Time) Response {
	return AMResponse(site, src, t)
}

// TimeDelay implements the geocentre-to-site delay capability.
func (Earth) TimeDelay(site *Site, sky Sky, t gps.Time) float64 {
	return TimeDelay(site, sky, t)
}
