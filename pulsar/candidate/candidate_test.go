package candidate

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-gw/gps"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const combined = `z1_0123_0_0 3 100.5 1.0 0.5 -1e-9 40
z1_0123_0_0 3 100.7 1.1 0.4 -2e-9 50
z1_0123_0_0 4 101.0 2.0 -0.3 0 30
r1_0456_0_0 1 200 3.0 0.1 1e-10 60
z1_0123_0_0 3 100.1 9.0 0.5 0 5
%DONE
`

func testSetup() Table {
	z := DefaultFiducial.Add(1000)
	r := DefaultFiducial.Add(40000)
	return Table{
		"z1_0123": {StartTime: z, EndTime: z.Add(30000), FBand: 0.25, MinNumJobs: 1},
		"r1_0456": {StartTime: r, EndTime: r.Add(30000), FBand: 0.25, MinNumJobs: 2},
		"r1":      {StartTime: r, EndTime: r.Add(1), FBand: 1},
	}
}

func TestReadSkipsBelowThreshold(t *testing.T) {
	cands, err := Read(strings.NewReader(combined), 10)
	require.NoError(t, err)
	require.Len(t, cands, 4)

	want := Candidate{ResultName: "r1_0456_0_0", FileID: 1, F: 200, Alpha: 3, Delta: 0.1, F1dot: 1e-10, TwoF: 60}
	if diff := cmp.Diff(want, cands[3]); diff != "" {
		t.Fatalf("Read() mismatch (-want +got):\n%s", diff)
	}

	// without a threshold the out-of-range alpha is rejected
	_, err = Read(strings.NewReader(combined), 0)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{name: "empty", in: "", want: ErrMissingDone},
		{name: "no marker", in: "a 1 1 1 0 0 1\n", want: ErrMissingDone},
		{name: "data after marker", in: "%DONE\na 1 1 1 0 0 1\n", want: ErrInvalidFile},
		{name: "short line", in: "a 1 1 1 0 0\n%DONE\n", want: ErrInvalidFile},
		{name: "extra column", in: "a 1 1 1 0 0 1 2\n%DONE\n", want: ErrInvalidFile},
		{name: "bad number", in: "a 1 x 1 0 0 1\n%DONE\n", want: ErrInvalidFile},
		{name: "negative file id", in: "a -1 1 1 0 0 1\n%DONE\n", want: ErrInvalidValue},
		{name: "negative frequency", in: "a 1 -1 1 0 0 1\n%DONE\n", want: ErrInvalidValue},
		{name: "declination", in: "a 1 1 1 1.6 0 1\n%DONE\n", want: ErrInvalidValue},
		{name: "infinite spindown", in: "a 1 1 1 0 Inf 1\n%DONE\n", want: ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.in), 0); !errors.Is(err, tt.want) {
				t.Fatalf("Read() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadEmptyList(t *testing.T) {
	cands, err := Read(strings.NewReader("%DONE\n"), 0)
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestTableLookupLongestPrefix(t *testing.T) {
	s, err := testSetup().Lookup("r1_0456_0_0")
	require.NoError(t, err)
	assert.Equal(t, 2, s.MinNumJobs)

	s, err = testSetup().Lookup("r1_9999_0_0")
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.FBand)

	_, err = testSetup().Lookup("h1_0001")
	assert.ErrorIs(t, err, ErrUnknownResult)
}

func TestFiducialFrequency(t *testing.T) {
	start := gps.Time{Sec: 793556944}
	assert.InDelta(t, 100.000001, FiducialFrequency(100, -1e-9, start, DefaultFiducial), 1e-12)
	assert.Equal(t, 100.0, FiducialFrequency(100, -1e-9, DefaultFiducial, DefaultFiducial))
}

func TestShiftDerivesThreshold(t *testing.T) {
	cands, err := Read(strings.NewReader(combined), 10)
	require.NoError(t, err)

	thr, err := Shift(cands, testSetup(), DefaultFiducial, 0)
	require.NoError(t, err)
	assert.Equal(t, 13000, thr)

	for _, c := range cands {
		assert.Equal(t, 6500, c.Keep)
	}
	assert.Equal(t, 26452, cands[0].DataStretch)
	assert.Equal(t, 26454, cands[3].DataStretch)
	assert.InDelta(t, 199.999996, cands[3].F, 1e-9)
}

func TestShiftErrors(t *testing.T) {
	cands := []Candidate{{ResultName: "h1_0001"}}
	_, err := Shift(cands, testSetup(), DefaultFiducial, 0)
	assert.ErrorIs(t, err, ErrUnknownResult)

	bad := Table{"h1": {StartTime: DefaultFiducial, EndTime: DefaultFiducial, FBand: 1}}
	_, err = Shift(cands, bad, DefaultFiducial, 0)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSortOrder(t *testing.T) {
	cands := []Candidate{
		{DataStretch: 2, FileID: 0, TwoF: 10},
		{DataStretch: 1, FileID: 5, TwoF: 10},
		{DataStretch: 1, FileID: 5, TwoF: 30},
		{DataStretch: 1, FileID: 2, TwoF: 1},
	}
	Sort(cands)

	got := make([][3]float64, len(cands))
	for i, c := range cands {
		got[i] = [3]float64{float64(c.DataStretch), float64(c.FileID), c.TwoF}
	}
	want := [][3]float64{{1, 2, 1}, {1, 5, 30}, {1, 5, 10}, {2, 0, 10}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Sort() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteKeepsLoudestPerFile(t *testing.T) {
	cands, err := Read(strings.NewReader(combined), 10)
	require.NoError(t, err)
	_, err = Shift(cands, testSetup(), DefaultFiducial, 2)
	require.NoError(t, err)
	Sort(cands)

	var sb strings.Builder
	require.NoError(t, Write(&sb, cands))

	want := `26452 100.700002 1.1 0.4 -2e-09 50
26452 101 2 -0.3 0 30
26454 199.999996 3 0.1 1e-10 60
%DONE
`
	assert.Equal(t, want, sb.String())
}

func TestWriteEmpty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Write(&sb, nil))
	assert.Equal(t, "%DONE\n", sb.String())
}
