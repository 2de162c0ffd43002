package sft

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-gw/gps"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = gps.Time{Sec: 1000000000}

func sinusoid(n int, dt, freq, amp float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return x
}

func TestNewAndNewVector(t *testing.T) {
	s, err := New(8)
	require.NoError(t, err)
	assert.Equal(t, 8, s.NumBins())

	v, err := NewVector(3, 5)
	require.NoError(t, err)
	require.Len(t, v, 3)
	for i := range v {
		assert.Equal(t, 5, v[i].NumBins())
	}

	_, err = New(-1)
	assert.ErrorIs(t, err, ErrInvalidBins)
	_, err = NewVector(2, -1)
	assert.ErrorIs(t, err, ErrInvalidBins)
}

func TestCopyIsDeep(t *testing.T) {
	s := &SFT{Name: "H1", Epoch: epoch, F0: 10, DeltaF: 0.5, Data: []complex128{1, 2i, 3}}
	c := s.Copy()
	if diff := cmp.Diff(s, c); diff != "" {
		t.Fatalf("Copy() mismatch (-want +got):\n%s", diff)
	}

	c.Data[0] = 42
	assert.Equal(t, complex128(1), s.Data[0])
}

func TestFrequency(t *testing.T) {
	s := SFT{F0: 100, DeltaF: 1.0 / 1800}
	assert.Equal(t, 100.0, s.Frequency(0))
	assert.InDelta(t, 101, s.Frequency(1800), 1e-12)
}

func TestConcat(t *testing.T) {
	a, _ := NewVector(2, 4)
	b, _ := NewVector(1, 4)
	a[0].Data[1] = 7

	got, err := Concat(a, b)
	require.NoError(t, err)
	require.Len(t, got, 3)

	got[0].Data[1] = 0
	assert.Equal(t, complex128(7), a[0].Data[1], "inputs must not be aliased")

	empty, err := Concat(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestConcatBinMismatch(t *testing.T) {
	a, _ := NewVector(1, 4)
	b, _ := NewVector(1, 5)

	tests := []struct {
		name string
		a, b Vector
	}{
		{name: "different bins", a: a, b: b},
		{name: "empty first", a: nil, b: b},
		{name: "empty second", a: a, b: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Concat(tt.a, tt.b); !errors.Is(err, ErrBinMismatch) {
				t.Fatalf("Concat() error = %v, want ErrBinMismatch", err)
			}
		})
	}
}

func TestAppendCopies(t *testing.T) {
	var v Vector
	s := &SFT{Name: "L1", Data: []complex128{1, 2}}
	v.Append(s)
	v.Append(s)

	require.Len(t, v, 2)
	s.Data[0] = 9
	assert.Equal(t, complex128(1), v[0].Data[0])
	assert.Equal(t, "L1", v[1].Name)
}

func TestMakeTimestamps(t *testing.T) {
	ts, err := MakeTimestamps(epoch, 3600, 1800)
	require.NoError(t, err)
	want := []gps.Time{epoch, {Sec: 1000001800}}
	if diff := cmp.Diff(want, ts); diff != "" {
		t.Fatalf("MakeTimestamps() mismatch (-want +got):\n%s", diff)
	}

	// partial SFTs are dropped
	ts, err = MakeTimestamps(epoch, 3599, 1800)
	require.NoError(t, err)
	assert.Len(t, ts, 1)

	ts, err = MakeTimestamps(epoch, 1, 0.25)
	require.NoError(t, err)
	require.Len(t, ts, 4)
	assert.Equal(t, gps.Time{Sec: 1000000000, Nano: 750000000}, ts[3])

	_, err = MakeTimestamps(epoch, 1000, 1800)
	assert.ErrorIs(t, err, ErrShortDuration)
	_, err = MakeTimestamps(epoch, 1000, 0)
	assert.ErrorIs(t, err, ErrInvalidTsft)
}

func TestComputeFindsSinusoid(t *testing.T) {
	const (
		dt   = 1.0 / 256
		tsft = 4.0
		freq = 20.0
		amp  = 1e-21
	)
	n := int(tsft / dt)
	strain := sinusoid(5*n/2, dt, freq, amp)

	sfts, err := Compute(strain, epoch, dt, tsft, "H1")
	require.NoError(t, err)
	require.Len(t, sfts, 2)

	assert.Equal(t, epoch, sfts[0].Epoch)
	assert.Equal(t, epoch.Add(tsft), sfts[1].Epoch)

	for _, s := range sfts {
		assert.Equal(t, "H1", s.Name)
		assert.Equal(t, n/2+1, s.NumBins())
		assert.Equal(t, 0.0, s.F0)
		assert.Equal(t, 1/tsft, s.DeltaF)

		k, f := s.PeakBin()
		assert.Equal(t, 80, k)
		assert.Equal(t, freq, f)
		// a bin-centred sinusoid carries A*Tsft/2 in its bin
		assert.InEpsilon(t, amp*tsft/2, cmplx.Abs(s.Data[k]), 1e-3)
	}
}

func TestComputeWithBand(t *testing.T) {
	const dt, tsft = 1.0 / 256, 4.0
	strain := sinusoid(1024, dt, 20, 1)

	full, err := Compute(strain, epoch, dt, tsft, "L1")
	require.NoError(t, err)
	band, err := Compute(strain, epoch, dt, tsft, "L1", WithBand(15, 10))
	require.NoError(t, err)

	require.Len(t, band, 1)
	s := band[0]
	assert.Equal(t, 41, s.NumBins())
	assert.Equal(t, 15.0, s.F0)

	k, f := s.PeakBin()
	assert.Equal(t, 20, k)
	assert.Equal(t, 20.0, f)
	if diff := cmp.Diff(full[0].Data[60:101], s.Data); diff != "" {
		t.Fatalf("band mismatch (-full +band):\n%s", diff)
	}
}

func TestComputeErrors(t *testing.T) {
	strain := make([]float64, 2048)

	tests := []struct {
		name string
		dt   float64
		tsft float64
		data []float64
		opts []Option
		want error
	}{
		{name: "zero dt", dt: 0, tsft: 4, data: strain, want: ErrInvalidTsft},
		{name: "non power of two", dt: 1.0 / 256, tsft: 3, data: strain, want: ErrSampleCount},
		{name: "short strain", dt: 1.0 / 256, tsft: 4, data: strain[:1000], want: ErrInsufficientData},
		{name: "band above nyquist", dt: 1.0 / 256, tsft: 4, data: strain, opts: []Option{WithBand(100, 100)}, want: ErrBandOutOfRange},
		{name: "negative band", dt: 1.0 / 256, tsft: 4, data: strain, opts: []Option{WithBand(10, -1)}, want: ErrBandOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.data, epoch, tt.dt, tt.tsft, "H1", tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compute() error = %v, want %v", err, tt.want)
			}
		})
	}

	_, err := Compute(strain, epoch, 1.0/256, 4, "H1", WithTukey(2))
	assert.Error(t, err)
}

func TestPeakBinEmpty(t *testing.T) {
	k, f := (&SFT{}).PeakBin()
	assert.Equal(t, -1, k)
	assert.True(t, math.IsNaN(f))
}

func TestTukeyWindow(t *testing.T) {
	w := tukey(101, 0.2)
	assert.InDelta(t, 0, w[0], 1e-15)
	assert.InDelta(t, 0, w[100], 1e-15)
	assert.Equal(t, 1.0, w[50])
	for i := range w {
		assert.InDelta(t, w[i], w[100-i], 1e-12)
		assert.GreaterOrEqual(t, w[i], 0.0)
		assert.LessOrEqual(t, w[i], 1.0)
	}

	rect := tukey(16, 0)
	for _, v := range rect {
		assert.Equal(t, 1.0, v)
	}
}
