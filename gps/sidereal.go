package gps

import "math"

// leapEpochs lists the GPS second at which each leap second took effect.
// The GPS-UTC offset is the number of entries at or before a given time.
var leapEpochs = []int64{
	46828800,   // 1981-07-01
	78364801,   // 1982-07-01
	109900802,  // 1983-07-01
	173059203,  // 1985-07-01
	252028804,  // 1988-01-01
	315187205,  // 1990-01-01
	346723206,  // 1991-01-01
	393984007,  // 1992-07-01
	425520008,  // 1993-07-01
	457056009,  // 1994-07-01
	504489610,  // 1996-01-01
	551750411,  // 1997-07-01
	599184012,  // 1999-01-01
	820108813,  // 2006-01-01
	914803214,  // 2009-01-01
	1025136015, // 2012-07-01
	1119744016, // 2015-07-01
	1167264017, // 2017-01-01
}

const (
	// gpsEpochJD is the Julian date of the GPS epoch, 1980-01-06 00:00 UTC.
	gpsEpochJD = 2444244.5
	j2000JD    = 2451545.0
	secPerDay  = 86400.0
)

// LeapSeconds returns GPS-UTC in seconds at t.
func LeapSeconds(t Time) int {
	n := 0
	for _, e := range leapEpochs {
		if t.Sec < e {
			break
		}
		n++
	}
	return n
}

// JulianDate returns the UTC Julian date of t.
func JulianDate(t Time) float64 {
	utc := float64(t.Sec-int64(LeapSeconds(t))) + float64(t.Nano)/nanosPerSecond
	return gpsEpochJD + utc/secPerDay
}

// GMST returns the Greenwich mean sidereal angle at t in radians, in [0, 2π).
//
// The angle is the IERS 2003 expression: Earth rotation angle plus the
// accumulated precession in right ascension, with UT1 and TT approximated by
// UTC.
func GMST(t Time) float64 {
	utc := float64(t.Sec-int64(LeapSeconds(t))) + float64(t.Nano)/nanosPerSecond
	du := utc/secPerDay + (gpsEpochJD - j2000JD)

	// 1.00273781191135448*du, with the whole turns of du dropped early
	whole := math.Floor(du)
	turns := 0.7790572732640 + 0.00273781191135448*du + (du - whole)
	turns -= math.Floor(turns)
	era := 2 * math.Pi * turns

	c := du / 36525
	arcsec := 0.014506 + c*(4612.156534+c*(1.3915817+c*(-0.00000044+c*(-0.000029956))))
	gmst := math.Mod(era+arcsec*math.Pi/(180*3600), 2*math.Pi)
	if gmst < 0 {
		gmst += 2 * math.Pi
	}
	return gmst
}
