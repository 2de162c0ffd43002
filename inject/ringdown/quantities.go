package ringdown

import (
	"math"

	"github.com/cwbudde/algo-gw/detector"
	"github.com/cwbudde/algo-gw/inject/remnant"
)

// Megaparsec in metres.
const Megaparsec = 1e6 * 3.085677581491367e16

// HRSS returns the root-sum-square strain of a ringdown with peak amplitude
// amp, central frequency f (Hz) and quality factor q:
//
//	amp √(2/(πf)) √((2Q³+Q)/(1+4Q²))
func HRSS(amp, f, q float64) float64 {
	return amp * math.Sqrt(2/(math.Pi*f)) * math.Sqrt((2*q*q*q+q)/(1+4*q*q))
}

// SiteHRSS returns the root-sum-square strain seen at a detector with
// antenna response resp, for polarization coefficients splus and scross.
func SiteHRSS(amp, f, q, splus, scross float64, resp detector.Response) float64 {
	fp := splus * resp.Plus
	fc := scross * resp.Cross
	num := (2*q*q*q+q)*fp*fp + 2*q*q*fp*fc + 2*q*q*q*fc*fc
	return amp * math.Sqrt(num/(2*math.Pi*f*(1+4*q*q)))
}

// EffectiveDistance returns 2·dist / √(s+²F+² + s×²F×²).
func EffectiveDistance(dist, splus, scross float64, resp detector.Response) float64 {
	fp := splus * resp.Plus
	fc := scross * resp.Cross
	return 2 * dist / math.Sqrt(fp*fp+fc*fc)
}

// BlackHoleSpin inverts the quality factor fit Q = 2(1−a)^−0.45.
func BlackHoleSpin(q float64) float64 {
	return 1 - math.Pow(2/q, 20.0/9.0)
}

// BlackHoleMass returns the mass in solar masses that rings at frequency f
// (Hz) with quality factor q.
func BlackHoleMass(f, q float64) float64 {
	return massFrequencyScale / (2 * math.Pi * f) * spinFactor(BlackHoleSpin(q))
}

// Epsilon returns the fraction of the remnant mass radiated by a ringdown of
// amplitude amp observed at distance r (Mpc).
func Epsilon(f, q, r, amp float64) float64 {
	a := BlackHoleSpin(q)
	m := BlackHoleMass(f, q)
	h := amp / lengthScale(m, r)
	return 2.0 / 5.0 * h * h * q * qualityFactor(q) * spinFactor(a)
}

// Amplitude is the inverse of [Epsilon].
func Amplitude(f, q, r, eps float64) float64 {
	a := BlackHoleSpin(q)
	m := BlackHoleMass(f, q)
	return math.Sqrt(5.0/2.0*eps) * lengthScale(m, r) / math.Sqrt(q*qualityFactor(q)*spinFactor(a))
}

// massFrequencyScale is c³/(G M☉) in Hz.
var massFrequencyScale = remnant.SpeedOfLight * remnant.SpeedOfLight * remnant.SpeedOfLight /
	(remnant.Gravitation * remnant.SolarMass)

func spinFactor(a float64) float64 {
	return 1 - 0.63*math.Pow(1-a, 0.3)
}

func qualityFactor(q float64) float64 {
	return 1 + 7/(24*q*q)
}

// lengthScale returns G M / (c² r) for mass m in solar masses and r in Mpc.
func lengthScale(m, r float64) float64 {
	return remnant.Gravitation * m * remnant.SolarMass /
		(remnant.SpeedOfLight * remnant.SpeedOfLight * r * Megaparsec)
}
