package inspring

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-gw/inject/remnant"
	"github.com/cwbudde/algo-gw/inject/ringdown"
	"github.com/cwbudde/algo-gw/waveform"
	"github.com/google/uuid"
)

// Plan holds the boundary state, remnant estimate and segment lengths of an
// extension, computed without touching the waveform.
type Plan struct {
	Boundary     waveform.Boundary
	Remnant      remnant.Remnant
	Continuation Continuation
	Asymptote    Asymptote

	TimeToRing  float64 // s, boundary to 90% of the ring frequency
	MergerPhase float64 // rad

	MergerLength int
	RingLength   int
	OutputLength int // input + 2·merger − 1 + ring

	DampFactor float64
}

// PlanFor computes the extension plan for w. It fails with ErrMergerTooLong
// when the continuation would exceed 4π of phase, and with
// ErrDegenerateBoundary when no asymptote can be matched at the hand-off;
// w is not modified either way.
func PlanFor(w *waveform.Waveform, p *Params, opts ...Option) (Plan, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return Plan{}, err
	}
	return plan(w, p, &cfg)
}

func plan(w *waveform.Waveform, p *Params, cfg *config) (Plan, error) {
	if p == nil {
		return Plan{}, ErrNilParams
	}

	b, err := w.Boundary()
	if err != nil {
		return Plan{}, err
	}
	cfg.logger.Debug("inspiral boundary",
		"samples", b.Length, "freq", b.Freq, "fdot", b.FreqDot,
		"phase", b.Phase, "amp_plus", b.AmpPlus, "amp_cross", b.AmpCross)

	rem, err := estimateRemnant(p, cfg)
	if err != nil {
		return Plan{}, err
	}
	cfg.logger.Debug("remnant estimate",
		"mass", rem.Mass, "spin", rem.Spin, "freq", rem.Frequency, "quality", rem.Quality)

	c, err := NewContinuation(b)
	if err != nil {
		return Plan{}, err
	}

	dt := w.DeltaT
	pl := Plan{
		Boundary:     b,
		Remnant:      rem,
		Continuation: c,
		TimeToRing:   c.TimeToFrequency(handoffFraction * rem.Frequency),
		MergerPhase:  c.MergerPhase(rem.Frequency),
		MergerLength: c.MergerLength(rem.Frequency, dt),
		RingLength:   RingLength(rem.Frequency, rem.Quality, dt),
		DampFactor:   DampFactor(rem.Frequency, rem.Quality, dt),
	}
	if pl.MergerLength < 0 {
		return Plan{}, fmt.Errorf("%w: boundary %v Hz already past %v Hz",
			ErrDegenerateBoundary, b.Freq, handoffFraction*rem.Frequency)
	}
	pl.OutputLength = b.Length + 2*pl.MergerLength - 1 + pl.RingLength

	cfg.logger.Debug("segment lengths",
		"t_to_ring", pl.TimeToRing, "merger", pl.MergerLength,
		"merger_phase", pl.MergerPhase, "ring", pl.RingLength, "output", pl.OutputLength)

	if pl.MergerPhase > maxMergerPhase {
		return pl, fmt.Errorf("%w: %.2f rad", ErrMergerTooLong, pl.MergerPhase)
	}

	freq, fdot := c.handoff(pl.MergerLength, dt)
	if pl.Asymptote, err = NewAsymptote(rem.Frequency, freq, fdot); err != nil {
		return Plan{}, err
	}
	return pl, nil
}

func estimateRemnant(p *Params, cfg *config) (remnant.Remnant, error) {
	if !cfg.ringOverride {
		return remnant.Estimate(p.Binary())
	}
	return remnant.Remnant{
		Mass:      ringdown.BlackHoleMass(cfg.ringFreq, cfg.ringQuality),
		Spin:      ringdown.BlackHoleSpin(cfg.ringQuality),
		Frequency: cfg.ringFreq,
		Quality:   cfg.ringQuality,
	}, nil
}

// Generate appends a merger and ringdown to the inspiral waveform w and
// returns the ringdown injection it amounts to.
//
// Invalid input leaves w unchanged. An unphysical result (see IsUnphysical)
// releases every channel of w before the error is returned. With RingOnly,
// the amplitude before the ringdown start is zeroed on success.
func Generate(w *waveform.Waveform, p *Params, kind Kind, opts ...Option) (*ringdown.Injection, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	id := cfg.id
	if id == uuid.Nil {
		if id, err = uuid.NewRandom(); err != nil {
			return nil, fmt.Errorf("inspring: simulation id: %w", err)
		}
	}

	sites, err := resolveSites(cfg.sites)
	if err != nil {
		return nil, err
	}

	pl, err := plan(w, p, &cfg)
	if err != nil {
		if errors.Is(err, ErrMergerTooLong) {
			cfg.logger.Info("merger rejected", "merger_phase", pl.MergerPhase)
			w.Release()
		}
		return nil, err
	}

	b := pl.Boundary
	n := b.Length
	if err := w.Extend(pl.OutputLength - n); err != nil {
		w.Release()
		return nil, fmt.Errorf("inspring: extend waveform: %w", err)
	}

	freq, phase, pol := continueMerger(w, b, pl.Continuation, pl.MergerLength)

	asym := pl.Asymptote
	cfg.logger.Debug("asymptote",
		"handoff_freq", freq, "A", asym.A, "lambda", asym.Lambda)

	endMerger, pol := relax(w, asym, n+pl.MergerLength, pl.MergerLength+pl.RingLength-1,
		freq, phase, pol, b.PolDot)

	fit := fitAmplitudes(w, b, pl.MergerLength, pl.DampFactor)
	dt2 := w.DeltaT * w.DeltaT
	cfg.logger.Debug("amplitude fit",
		"plus_a1", fit.Plus.A1/w.DeltaT, "plus_a2", fit.Plus.A2/dt2,
		"cross_a1", fit.Cross.A1/w.DeltaT, "cross_a2", fit.Cross.A2/dt2)

	start := n + pl.MergerLength + endMerger
	incl, err := SolveInclination(float64(w.A[2*start]), float64(w.A[2*start+1]))
	if err != nil {
		cfg.logger.Info("inclination rejected", "sample", start)
		w.Release()
		return nil, err
	}

	if !b.HasShift {
		pol = p.Polarization
	}

	inj := describe(p, &pl, &cfg, describeInput{
		id:          id,
		phase:       phase,
		pol:         pol,
		incl:        incl,
		startOffset: float64(pl.MergerLength+endMerger+1) * w.DeltaT,
		sites:       sites,
	})

	if kind == RingOnly {
		w.ZeroHead(2 * start)
	}

	cfg.logger.Info("merger and ringdown added",
		"kind", kind, "samples", w.Len(), "end_merger", endMerger,
		"freq", inj.Frequency, "quality", inj.Quality, "hrss", inj.HRSS)
	return inj, nil
}
