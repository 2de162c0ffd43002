package simtable

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-gw/detector"
	"github.com/cwbudde/algo-gw/gps"
	"github.com/cwbudde/algo-gw/inject/ringdown"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "inj.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testInjection(sec int64) *ringdown.Injection {
	start := gps.Time{Sec: sec, Nano: 12451172}
	return &ringdown.Injection{
		SimulationID:     uuid.New(),
		Waveform:         ringdown.WaveformName,
		Coordinates:      ringdown.Equatorial,
		GeocentStartTime: start,
		Longitude:        1.2,
		Latitude:         -0.4,
		Distance:         50,
		Mass:             19.2,
		Spin:             0.7,
		Frequency:        250,
		Quality:          10,
		Phase:            0.3,
		Polarization:     0.8,
		Inclination:      1.047,
		Amplitude:        1.1e-21,
		HRSS:             1.2e-22,
		Epsilon:          1.3e-3,
		Sites: []ringdown.SiteInjection{
			{Site: "L1", StartTime: start.Add(-0.01), Response: detector.Response{Plus: 0.3, Cross: -0.6}, EffDist: 80, HRSS: 5e-23},
			{Site: "H1", StartTime: start.Add(0.002), Response: detector.Response{Plus: -0.2, Cross: 0.5}, EffDist: 95, HRSS: 4e-23},
		},
	}
}

func TestOpenAppliesMigrations(t *testing.T) {
	s := openTestStore(t)
	v, err := s.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
}

func TestReopenIsNoChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inj.db")
	s, err := Open(path)
	require.NoError(t, err)
	inj := testInjection(1000000000)
	require.NoError(t, s.Insert(context.Background(), inj))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(context.Background(), inj.SimulationID)
	require.NoError(t, err)
	assert.Equal(t, inj.SimulationID, got.SimulationID)
}

func TestInsertGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	inj := testInjection(1000000000)
	require.NoError(t, s.Insert(ctx, inj))

	got, err := s.Get(ctx, inj.SimulationID)
	require.NoError(t, err)
	if diff := cmp.Diff(inj, got); diff != "" {
		t.Fatalf("Get() mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertDuplicateFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	inj := testInjection(1000000000)
	require.NoError(t, s.Insert(ctx, inj))
	assert.Error(t, s.Insert(ctx, inj))

	// the failed transaction leaves no extra site rows behind
	got, err := s.Get(ctx, inj.SimulationID)
	require.NoError(t, err)
	assert.Len(t, got.Sites, 2)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersByStartTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	late := testInjection(1000000100)
	early := testInjection(1000000000)
	noSites := testInjection(1000000050)
	noSites.Sites = nil
	for _, inj := range []*ringdown.Injection{late, early, noSites} {
		require.NoError(t, s.Insert(ctx, inj))
	}

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, early.SimulationID, got[0].SimulationID)
	assert.Equal(t, noSites.SimulationID, got[1].SimulationID)
	assert.Equal(t, late.SimulationID, got[2].SimulationID)
	assert.Empty(t, got[1].Sites)
	assert.Len(t, got[2].Sites, 2)
}

func TestDeleteCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	inj := testInjection(1000000000)
	require.NoError(t, s.Insert(ctx, inj))
	require.NoError(t, s.Delete(ctx, inj.SimulationID))

	_, err := s.Get(ctx, inj.SimulationID)
	assert.ErrorIs(t, err, ErrNotFound)

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM sim_ringdown_site").Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, s.Delete(ctx, inj.SimulationID), ErrNotFound)
}
