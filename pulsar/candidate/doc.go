// Package candidate post-processes continuous-wave search candidates for
// coincidence analysis.
//
// Candidates from many work units are read from a combined result file,
// their frequencies are propagated with the fitted spindown to one fiducial
// GPS time, and the loudest few per (data stretch, file) group are written
// back out.
//
// # Usage
//
//	cands, err := candidate.Read(in, 0)
//	if err != nil {
//		return err
//	}
//	if _, err := candidate.Shift(cands, setup, candidate.DefaultFiducial, 0); err != nil {
//		return err
//	}
//	candidate.Sort(cands)
//	err = candidate.Write(out, cands)
package candidate
