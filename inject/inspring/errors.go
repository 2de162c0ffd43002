package inspring

import "errors"

// Invalid input. The waveform is left untouched.
var (
	ErrNilParams          = errors.New("inspring: nil parameters")
	ErrDegenerateBoundary = errors.New("inspring: inspiral boundary cannot be continued")
	ErrInvalidOption      = errors.New("inspring: invalid option")
)

// Unphysical results. The waveform has been released and the same inputs
// will fail again.
var (
	ErrMergerTooLong    = errors.New("inspring: merger exceeds 4π of GW phase")
	ErrInclinationRange = errors.New("inspring: inclination root outside (-1, 1)")
)

// IsUnphysical reports whether err means the source parameters cannot be
// matched onto a ringdown.
func IsUnphysical(err error) bool {
	return errors.Is(err, ErrMergerTooLong) || errors.Is(err, ErrInclinationRange)
}
