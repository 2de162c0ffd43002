package candidate

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cwbudde/algo-gw/gps"
)

// DefaultFiducial is the start of the first data stretch of the S4 run.
var DefaultFiducial = gps.Time{Sec: 793555944}

// jobsPerCandidate scales the minimum job count into a per-stretch budget.
const jobsPerCandidate = 13000

// ErrUnknownResult is returned when a result name has no search setup.
var ErrUnknownResult = errors.New("candidate: no search setup for result")

// Stretch describes the search setup of one work unit.
type Stretch struct {
	StartTime  gps.Time `yaml:"start"`
	EndTime    gps.Time `yaml:"end"`
	FBand      float64  `yaml:"fband"`
	MinNumJobs int      `yaml:"min_jobs"`
}

// Index numbers the stretch by how many stretch lengths fit before its end.
func (s Stretch) Index() int {
	return int(s.EndTime.Seconds() / s.EndTime.Sub(s.StartTime))
}

// Setup resolves the search setup that produced a result file.
type Setup interface {
	Lookup(resultName string) (Stretch, error)
}

// Table is a Setup keyed by work-unit name. A result matches the longest
// work-unit name that prefixes it.
type Table map[string]Stretch

// Lookup implements Setup.
func (t Table) Lookup(resultName string) (Stretch, error) {
	best := ""
	for name := range t {
		if strings.HasPrefix(resultName, name) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return Stretch{}, fmt.Errorf("%w: %q", ErrUnknownResult, resultName)
	}
	return t[best], nil
}

// FiducialFrequency propagates f with spindown f1dot from start back to the
// fiducial time.
func FiducialFrequency(f, f1dot float64, start, fiducial gps.Time) float64 {
	return f - f1dot*start.Sub(fiducial)
}

// Shift moves every candidate frequency to the fiducial time and assigns
// its data stretch and per-file keep count. candThr is the number of
// candidates kept per data stretch; 0 derives it from the smallest job
// count among the stretches. The effective threshold is returned.
func Shift(cands []Candidate, setup Setup, fiducial gps.Time, candThr int) (int, error) {
	stretches := make([]Stretch, len(cands))
	minJobs := 0
	for i := range cands {
		s, err := setup.Lookup(cands[i].ResultName)
		if err != nil {
			return 0, err
		}
		if !(s.FBand > 0) || !s.StartTime.Before(s.EndTime) {
			return 0, fmt.Errorf("%w: degenerate setup for %q", ErrInvalidValue, cands[i].ResultName)
		}
		stretches[i] = s
		if i == 0 || s.MinNumJobs < minJobs {
			minJobs = s.MinNumJobs
		}
	}

	if candThr == 0 {
		candThr = minJobs * jobsPerCandidate
	}

	for i := range cands {
		s := stretches[i]
		c := &cands[i]
		c.F = FiducialFrequency(c.F, c.F1dot, s.StartTime, fiducial)
		c.DataStretch = s.Index()
		if files := int(0.5 / s.FBand); files > 0 {
			c.Keep = candThr / files
		} else {
			c.Keep = candThr
		}
	}

	return candThr, nil
}

// Sort orders candidates by data stretch and file, then by decreasing 2F.
func Sort(cands []Candidate) {
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		if c := cmp.Compare(a.DataStretch, b.DataStretch); c != 0 {
			return c
		}
		if c := cmp.Compare(a.FileID, b.FileID); c != 0 {
			return c
		}
		return cmp.Compare(b.TwoF, a.TwoF)
	})
}

// Write prints sorted candidates, keeping at most Keep entries of each
// (stretch, file) group, and terminates the output with DoneMarker.
func Write(w io.Writer, cands []Candidate) error {
	bw := bufio.NewWriter(w)

	kept := 0
	for i, c := range cands {
		if i == 0 || c.DataStretch != cands[i-1].DataStretch || c.FileID != cands[i-1].FileID {
			kept = 0
		}
		if kept >= c.Keep {
			continue
		}
		kept++
		fmt.Fprintf(bw, "%d %.13g %.7g %.7g %.5g %.6g\n",
			c.DataStretch, c.F, c.Alpha, c.Delta, c.F1dot, c.TwoF)
	}
	fmt.Fprintln(bw, DoneMarker)

	return bw.Flush()
}
