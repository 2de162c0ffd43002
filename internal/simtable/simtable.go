// Package simtable persists ringdown injections in a SQLite database.
//
// The schema is versioned with golang-migrate; migrations are embedded and
// applied by Open.
package simtable

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-gw/detector"
	"github.com/cwbudde/algo-gw/gps"
	"github.com/cwbudde/algo-gw/inject/ringdown"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when no injection has the requested id.
var ErrNotFound = errors.New("simtable: injection not found")

// Store is a handle on an injection database.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Option configures Open.
type Option func(*Store)

// WithLogger routes migration messages to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open opens or creates the database at path and migrates it to the latest
// schema version.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("simtable: open %s: %w", path, err)
	}
	// a single connection serializes writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Version returns the applied schema version.
func (s *Store) Version() (uint, error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("simtable: schema version: %w", err)
	}
	if dirty {
		return v, fmt.Errorf("simtable: schema version %d is dirty", v)
	}
	return v, nil
}

func (s *Store) migrateUp() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// m is not closed: that would close the shared *sql.DB
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("simtable: migration up failed: %w", err)
	}
	return nil
}

func (s *Store) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("simtable: migration source: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("simtable: sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("simtable: migrate instance: %w", err)
	}
	m.Log = migrateLogger{s.log}
	return m, nil
}

// migrateLogger adapts slog to migrate.Logger.
type migrateLogger struct{ log *slog.Logger }

func (l migrateLogger) Printf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...), "component", "migrate")
}

func (l migrateLogger) Verbose() bool { return false }

const insertInjection = `
INSERT INTO sim_ringdown (
	simulation_id, waveform, coordinates,
	geocent_start_time, geocent_start_time_ns,
	longitude, latitude, distance,
	mass, spin, frequency, quality,
	phase, polarization, inclination,
	amplitude, hrss, epsilon
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertSite = `
INSERT INTO sim_ringdown_site (
	simulation_id, site, start_time, start_time_ns,
	f_plus, f_cross, eff_dist, hrss
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// Insert stores inj and its per-site rows in one transaction.
func (s *Store) Insert(ctx context.Context, inj *ringdown.Injection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("simtable: begin: %w", err)
	}
	defer tx.Rollback()

	id := inj.SimulationID.String()
	_, err = tx.ExecContext(ctx, insertInjection,
		id, inj.Waveform, inj.Coordinates,
		inj.GeocentStartTime.Sec, inj.GeocentStartTime.Nano,
		inj.Longitude, inj.Latitude, inj.Distance,
		inj.Mass, inj.Spin, inj.Frequency, inj.Quality,
		inj.Phase, inj.Polarization, inj.Inclination,
		inj.Amplitude, inj.HRSS, inj.Epsilon,
	)
	if err != nil {
		return fmt.Errorf("simtable: insert %s: %w", id, err)
	}

	for _, site := range inj.Sites {
		_, err = tx.ExecContext(ctx, insertSite,
			id, site.Site, site.StartTime.Sec, site.StartTime.Nano,
			site.Response.Plus, site.Response.Cross, site.EffDist, site.HRSS,
		)
		if err != nil {
			return fmt.Errorf("simtable: insert %s site %s: %w", id, site.Site, err)
		}
	}

	return tx.Commit()
}

// Get loads the injection with the given id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*ringdown.Injection, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT simulation_id, waveform, coordinates,
			geocent_start_time, geocent_start_time_ns,
			longitude, latitude, distance,
			mass, spin, frequency, quality,
			phase, polarization, inclination,
			amplitude, hrss, epsilon
		FROM sim_ringdown WHERE simulation_id = ?`, id.String())

	inj, err := scanInjection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	inj.Sites, err = s.sites(ctx, id)
	if err != nil {
		return nil, err
	}
	return inj, nil
}

// List returns all injections ordered by geocentric start time.
func (s *Store) List(ctx context.Context) ([]*ringdown.Injection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT simulation_id FROM sim_ringdown
		ORDER BY geocent_start_time, geocent_start_time_ns, rowid`)
	if err != nil {
		return nil, fmt.Errorf("simtable: list: %w", err)
	}

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			rows.Close()
			return nil, fmt.Errorf("simtable: list: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("simtable: stored id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("simtable: list: %w", err)
	}
	// release the connection before the per-id queries
	rows.Close()

	out := make([]*ringdown.Injection, 0, len(ids))
	for _, id := range ids {
		inj, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, inj)
	}
	return out, nil
}

// Delete removes the injection and its site rows.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sim_ringdown WHERE simulation_id = ?", id.String())
	if err != nil {
		return fmt.Errorf("simtable: delete %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func scanInjection(row *sql.Row) (*ringdown.Injection, error) {
	var (
		inj  ringdown.Injection
		raw  string
		sec  int64
		nano int32
	)
	err := row.Scan(&raw, &inj.Waveform, &inj.Coordinates,
		&sec, &nano,
		&inj.Longitude, &inj.Latitude, &inj.Distance,
		&inj.Mass, &inj.Spin, &inj.Frequency, &inj.Quality,
		&inj.Phase, &inj.Polarization, &inj.Inclination,
		&inj.Amplitude, &inj.HRSS, &inj.Epsilon,
	)
	if err != nil {
		return nil, err
	}

	inj.SimulationID, err = uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("simtable: stored id %q: %w", raw, err)
	}
	inj.GeocentStartTime = gps.Time{Sec: sec, Nano: nano}
	return &inj, nil
}

func (s *Store) sites(ctx context.Context, id uuid.UUID) ([]ringdown.SiteInjection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT site, start_time, start_time_ns, f_plus, f_cross, eff_dist, hrss
		FROM sim_ringdown_site WHERE simulation_id = ? ORDER BY rowid`, id.String())
	if err != nil {
		return nil, fmt.Errorf("simtable: sites of %s: %w", id, err)
	}
	defer rows.Close()

	var sites []ringdown.SiteInjection
	for rows.Next() {
		var (
			si   ringdown.SiteInjection
			sec  int64
			nano int32
			resp detector.Response
		)
		if err := rows.Scan(&si.Site, &sec, &nano, &resp.Plus, &resp.Cross, &si.EffDist, &si.HRSS); err != nil {
			return nil, fmt.Errorf("simtable: sites of %s: %w", id, err)
		}
		si.StartTime = gps.Time{Sec: sec, Nano: nano}
		si.Response = resp
		sites = append(sites, si)
	}
	return sites, rows.Err()
}
