package inspring

import (
	"fmt"

	"github.com/cwbudde/algo-gw/detector"
	"github.com/cwbudde/algo-gw/inject/ringdown"
	"github.com/google/uuid"
)

type siteRef struct {
	prefix string
	site   *detector.Site
}

// resolveSites maps free-form detector names to sites. Names that resolve
// to the same channel prefix are merged; the first occurrence keeps its
// position.
func resolveSites(names []string) ([]siteRef, error) {
	refs := make([]siteRef, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		prefix, err := detector.ChannelPrefix(name)
		if err != nil {
			return nil, fmt.Errorf("inspring: site %q: %w", name, err)
		}
		if seen[prefix] {
			continue
		}
		seen[prefix] = true
		site, err := detector.Lookup(prefix)
		if err != nil {
			return nil, fmt.Errorf("inspring: site %q: %w", name, err)
		}
		refs = append(refs, siteRef{prefix: prefix, site: site})
	}
	return refs, nil
}

type describeInput struct {
	id          uuid.UUID
	phase       float64
	pol         float64
	incl        Inclination
	startOffset float64 // s after the inspiral end
	sites       []siteRef
}

// describe fills the injection in dependency order: remnant, timing,
// orientation, amplitude quantities, then per-site response.
func describe(p *Params, pl *Plan, cfg *config, in describeInput) *ringdown.Injection {
	rem := pl.Remnant
	inj := &ringdown.Injection{
		SimulationID: in.id,
		Waveform:     ringdown.WaveformName,
		Coordinates:  ringdown.Equatorial,
		Longitude:    p.Longitude,
		Latitude:     p.Latitude,
		Distance:     p.Distance,
		Mass:         rem.Mass,
		Spin:         rem.Spin,
		Frequency:    rem.Frequency,
		Quality:      rem.Quality,
	}

	inj.GeocentStartTime = p.EndTime.Add(in.startOffset)
	inj.Phase = in.phase
	inj.Polarization = in.pol
	inj.Inclination = in.incl.Angle

	inj.Amplitude = in.incl.Amplitude
	inj.HRSS = ringdown.HRSS(inj.Amplitude, inj.Frequency, inj.Quality)
	inj.Epsilon = ringdown.Epsilon(inj.Frequency, inj.Quality, inj.Distance, inj.Amplitude)

	sky := p.Sky()
	src := detector.Source{Sky: sky, Polarization: inj.Polarization}
	inj.Sites = make([]ringdown.SiteInjection, 0, len(in.sites))
	for _, ref := range in.sites {
		delay := cfg.model.TimeDelay(ref.site, sky, inj.GeocentStartTime)
		resp := cfg.model.AMResponse(ref.site, src, inj.GeocentStartTime)
		inj.Sites = append(inj.Sites, ringdown.SiteInjection{
			Site:      ref.prefix,
			StartTime: inj.GeocentStartTime.Add(delay),
			Response:  resp,
			EffDist:   ringdown.EffectiveDistance(inj.Distance, in.incl.SPlus, in.incl.SCross, resp),
			HRSS: ringdown.SiteHRSS(inj.Amplitude, inj.Frequency, inj.Quality,
				in.incl.SPlus, in.incl.SCross, resp),
		})
		cfg.logger.Debug("site",
			"site", ref.prefix, "fplus", resp.Plus, "fcross", resp.Cross,
			"delay", delay, "eff_dist", inj.Sites[len(inj.Sites)-1].EffDist)
	}

	return inj
}
