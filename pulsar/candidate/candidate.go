package candidate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// DoneMarker terminates every well-formed candidate file.
const DoneMarker = "%DONE"

// angleSlack is the tolerance on the sky-position range checks.
const angleSlack = 1e-5

// Errors returned while reading candidate files.
var (
	ErrInvalidFile  = errors.New("candidate: invalid candidate file")
	ErrMissingDone  = errors.New("candidate: file not terminated by " + DoneMarker)
	ErrInvalidValue = errors.New("candidate: invalid candidate values")
)

// Candidate is one F-statistic outlier from a search work unit.
type Candidate struct {
	// ResultName identifies the result file the candidate came from.
	ResultName string
	FileID     int
	F          float64 // Hz
	Alpha      float64 // right ascension, rad
	Delta      float64 // declination, rad
	F1dot      float64 // Hz/s
	TwoF       float64

	// DataStretch and Keep are filled by Shift.
	DataStretch int
	Keep        int
}

// Read parses a combined candidate file. Each line holds
//
//	resultName fileID f alpha delta f1dot 2F
//
// and the file must end with a DoneMarker line. Candidates with 2F below
// minTwoF are skipped without validation.
func Read(r io.Reader, minTwoF float64) ([]Candidate, error) {
	sc := bufio.NewScanner(r)

	var (
		cands []Candidate
		done  bool
		line  int
	)
	for sc.Scan() {
		line++
		text := sc.Text()
		if done {
			return nil, fmt.Errorf("%w: data after %s on line %d", ErrInvalidFile, DoneMarker, line)
		}
		if text == DoneMarker {
			done = true
			continue
		}

		c, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if c.TwoF < minTwoF {
			continue
		}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cands = append(cands, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("candidate: read: %w", err)
	}
	if !done {
		return nil, ErrMissingDone
	}

	return cands, nil
}

func parseLine(text string) (Candidate, error) {
	fields := strings.Fields(text)
	if len(fields) != 7 {
		return Candidate{}, fmt.Errorf("%w: found %d not 7 values", ErrInvalidFile, len(fields))
	}

	var c Candidate
	c.ResultName = fields[0]

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: file id %q", ErrInvalidFile, fields[1])
	}
	c.FileID = id

	for i, dst := range []*float64{&c.F, &c.Alpha, &c.Delta, &c.F1dot, &c.TwoF} {
		v, err := strconv.ParseFloat(fields[i+2], 64)
		if err != nil {
			return Candidate{}, fmt.Errorf("%w: column %d %q", ErrInvalidFile, i+3, fields[i+2])
		}
		*dst = v
	}

	return c, nil
}

func (c *Candidate) validate() error {
	for _, v := range []float64{c.F, c.Alpha, c.Delta, c.F1dot, c.TwoF} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite field", ErrInvalidValue)
		}
	}

	switch {
	case c.FileID < 0:
		return fmt.Errorf("%w: file id %d", ErrInvalidValue, c.FileID)
	case c.F < 0:
		return fmt.Errorf("%w: frequency %g", ErrInvalidValue, c.F)
	case c.TwoF < 0:
		return fmt.Errorf("%w: 2F %g", ErrInvalidValue, c.TwoF)
	case c.Alpha < -angleSlack || c.Alpha > 2*math.Pi+angleSlack:
		return fmt.Errorf("%w: alpha %g outside [0, 2pi]", ErrInvalidValue, c.Alpha)
	case c.Delta < -math.Pi/2-angleSlack || c.Delta > math.Pi/2+angleSlack:
		return fmt.Errorf("%w: delta %g outside [-pi/2, pi/2]", ErrInvalidValue, c.Delta)
	}
	return nil
}
