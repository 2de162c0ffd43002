package inspring

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-gw/detector"
	"github.com/cwbudde/algo-gw/gps"
	"github.com/google/uuid"
)

// SiteModel supplies antenna patterns and arrival-time offsets.
// detector.Earth is the default.
type SiteModel interface {
	AMResponse(site *detector.Site, src detector.Source, t gps.Time) detector.Response
	TimeDelay(site *detector.Site, sky detector.Sky, t gps.Time) float64
}

// Option configures Generate and PlanFor.
type Option func(*config) error

type config struct {
	ringOverride bool
	ringFreq     float64
	ringQuality  float64

	sites  []string
	model  SiteModel
	logger *slog.Logger
	id     uuid.UUID
}

func defaultConfig() config {
	return config{
		sites:  []string{"H1", "L1"},
		model:  detector.Earth{},
		logger: slog.New(slog.DiscardHandler),
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// WithRemnant replaces the remnant estimate with a fixed ring frequency (Hz)
// and quality factor. Mass and spin are derived from them.
func WithRemnant(freq, quality float64) Option {
	return func(c *config) error {
		if !(freq > 0) || !(quality > 2) {
			return fmt.Errorf("%w: remnant f=%v Q=%v", ErrInvalidOption, freq, quality)
		}
		c.ringOverride = true
		c.ringFreq = freq
		c.ringQuality = quality
		return nil
	}
}

// WithSites sets the detectors to compute per-site quantities for.
func WithSites(names ...string) Option {
	return func(c *config) error {
		c.sites = append([]string(nil), names...)
		return nil
	}
}

// WithSiteModel replaces the antenna pattern and time delay model.
func WithSiteModel(m SiteModel) Option {
	return func(c *config) error {
		if m == nil {
			return fmt.Errorf("%w: nil site model", ErrInvalidOption)
		}
		c.model = m
		return nil
	}
}

// WithLogger enables stage diagnostics. Generation is silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithSimulationID sets the injection identifier instead of a random one.
func WithSimulationID(id uuid.UUID) Option {
	return func(c *config) error {
		c.id = id
		return nil
	}
}
