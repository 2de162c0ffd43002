// Package gps provides nanosecond-resolution GPS timestamps and the small
// amount of time arithmetic needed by injection and SFT code.
//
// A Time counts seconds since the GPS epoch (1980-01-06 00:00:00 UTC) with no
// leap seconds. Conversions to UTC or sidereal time go through the
// leap-second table in this package.
//
// # Usage
//
//	t := gps.Time{Sec: 815155213}
//	t = t.Add(0.25)
//	fmt.Println(t, gps.GMST(t))
package gps

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const nanosPerSecond = 1_000_000_000

// ErrInvalidTime is returned when a timestamp cannot be parsed or represented.
var ErrInvalidTime = errors.New("gps: invalid time")

// Time is a GPS timestamp split into whole seconds and nanoseconds.
// A normalized Time has 0 <= Nano < 1e9.
type Time struct {
	Sec  int64
	Nano int32
}

// FromSeconds converts floating-point GPS seconds to a Time, rounding to the
// nearest nanosecond.
func FromSeconds(s float64) Time {
	sec := math.Floor(s)
	nano := math.Round((s - sec) * nanosPerSecond)
	return normalize(int64(sec), int64(nano))
}

// Seconds returns t as floating-point GPS seconds. Precision degrades to
// roughly 100 ns for present-day epochs.
func (t Time) Seconds() float64 {
	return float64(t.Sec) + float64(t.Nano)/nanosPerSecond
}

// Add returns t shifted by dt seconds. The whole-second part of dt is added
// exactly so that long accumulations do not drift.
func (t Time) Add(dt float64) Time {
	whole := math.Trunc(dt)
	frac := math.Round((dt - whole) * nanosPerSecond)
	return normalize(t.Sec+int64(whole), int64(t.Nano)+int64(frac))
}

// Sub returns t-u in seconds.
func (t Time) Sub(u Time) float64 {
	return float64(t.Sec-u.Sec) + float64(t.Nano-u.Nano)/nanosPerSecond
}

// Before reports whether t is strictly earlier than u.
func (t Time) Before(u Time) bool {
	if t.Sec != u.Sec {
		return t.Sec < u.Sec
	}
	return t.Nano < u.Nano
}

// IsZero reports whether t is the GPS epoch.
func (t Time) IsZero() bool {
	return t.Sec == 0 && t.Nano == 0
}

// String formats t as "seconds.nanoseconds".
func (t Time) String() string {
	t = normalize(t.Sec, int64(t.Nano))
	if t.Sec < 0 && t.Nano > 0 {
		// -1.5 s is stored as {-2, 5e8}
		return fmt.Sprintf("-%d.%09d", -(t.Sec + 1), nanosPerSecond-int64(t.Nano))
	}
	return fmt.Sprintf("%d.%09d", t.Sec, t.Nano)
}

// Parse reads a timestamp in the "seconds[.fraction]" form produced by
// String. Fractions longer than nine digits are rejected.
func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Time{}, fmt.Errorf("%w: empty string", ErrInvalidTime)
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	sec, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	var nano int64
	if fracPart != "" {
		if len(fracPart) > 9 {
			return Time{}, fmt.Errorf("%w: more than nanosecond precision in %q", ErrInvalidTime, s)
		}
		nano, err = strconv.ParseInt(fracPart+strings.Repeat("0", 9-len(fracPart)), 10, 64)
		if err != nil {
			return Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	}

	if neg {
		return normalize(-sec, -nano), nil
	}
	return normalize(sec, nano), nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func normalize(sec, nano int64) Time {
	sec += nano / nanosPerSecond
	nano %= nanosPerSecond
	if nano < 0 {
		nano += nanosPerSecond
		sec--
	}
	return Time{Sec: sec, Nano: int32(nano)}
}
