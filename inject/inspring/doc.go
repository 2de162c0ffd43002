// Package inspring extends an inspiral waveform with a merger and ringdown
// and derives the ringdown injection the result corresponds to.
//
// The extension runs in fixed stages:
//
//   - read the last samples of the inspiral and their backward differences
//   - estimate the remnant black hole and its ring frequency and quality
//   - continue the frequency with the leading-order chirp law until 90% of
//     the ring frequency is reached
//   - relax the frequency exponentially onto the ring frequency, matching
//     the slope at the hand-off
//   - blend each amplitude from a quadratic into geometric decay
//   - recover the inclination from the plus/cross amplitude ratio at the
//     start of the ringdown
//   - compute hrss, epsilon and the per-detector start time, effective
//     distance and hrss
//
// Two results are treated as unphysical and make Generate release the
// waveform: a merger spanning more than 4π of phase, and an amplitude ratio
// with no inclination in (−1, 1).
//
// # Usage
//
//	w := ... // inspiral from an external generator
//	inj, err := inspring.Generate(w, &inspring.Params{
//	    Mass1: 10, Mass2: 10, Distance: 100,
//	    EndTime: gps.Time{Sec: 900000000},
//	}, inspring.InspiralMergerRing)
//	switch {
//	case inspring.IsUnphysical(err):
//	    // skip this source, w is no longer usable
//	case err != nil:
//	    return err
//	}
//	fmt.Println(inj.Frequency, inj.Quality, inj.Site("H1").EffDist)
package inspring
