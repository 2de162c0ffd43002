package inspring

import (
	"fmt"
	"math"
)

// Inclination is the orientation recovered from the plus and cross
// amplitudes at the start of the ringdown.
type Inclination struct {
	Cos   float64
	Angle float64 // rad, in (0, π)

	// Amplitude is |A+ / (1 + cos²ι)|.
	Amplitude float64
	// SPlus and SCross are the polarization coefficients −(1+cos²ι) and
	// −2cosι.
	SPlus, SCross float64
}

// SolveInclination recovers cos ι from A+ = A(1+cos²ι), A× = 2A cos ι.
//
// The two roots (A+/A×)(1 ± √(1 − (A×/A+)²)) are evaluated as (1+q)/r and
// r/(1+q) with r = A×/A+ and q = √(1−r²), which avoids the cancellation in
// the minus branch. The first root strictly inside (−1, 1) is taken.
func SolveInclination(ampPlus, ampCross float64) (Inclination, error) {
	r := ampCross / ampPlus
	q := math.Sqrt(1 - r*r)

	c := math.NaN()
	for _, root := range [2]float64{(1 + q) / r, r / (1 + q)} {
		if root > -1 && root < 1 {
			c = root
			break
		}
	}
	if math.IsNaN(c) {
		return Inclination{}, fmt.Errorf("%w: A+=%g A×=%g", ErrInclinationRange, ampPlus, ampCross)
	}

	plus := 1 + c*c
	return Inclination{
		Cos:       c,
		Angle:     math.Acos(c),
		Amplitude: math.Abs(ampPlus / plus),
		SPlus:     -plus,
		SCross:    -2 * c,
	}, nil
}
