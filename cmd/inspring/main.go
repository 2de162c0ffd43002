// Command inspring extends a leading-order inspiral with a merger and
// ringdown and prints the resulting ringdown injection.
//
// Usage:
//
//	inspring [flags]
//
// Source parameters come from flags or a YAML file given with -params;
// flags set on the command line override the file.
//
// Examples:
//
//	inspring -m1 10 -m2 10 -dist 100
//	inspring -params source.yaml -dump waveform.txt -plot waveform.png
//	inspring -params source.yaml -db injections.db -sft 0.125
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-gw/inject/chirp"
	"github.com/cwbudde/algo-gw/inject/inspring"
	"github.com/cwbudde/algo-gw/inject/ringdown"
	"github.com/cwbudde/algo-gw/internal/simtable"
	"github.com/cwbudde/algo-gw/pulsar/sft"
	"github.com/cwbudde/algo-gw/waveform"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type outputs struct {
	dump    string
	plot    string
	db      string
	sftLen  float64
	verbose bool
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspring", flag.ContinueOnError)
	fs.SetOutput(stderr)

	src := defaultSource()
	paramsFile := fs.String("params", "", "YAML file with source parameters")
	fs.Float64Var(&src.Mass1, "m1", src.Mass1, "primary mass (solar masses)")
	fs.Float64Var(&src.Mass2, "m2", src.Mass2, "secondary mass (solar masses)")
	fs.Float64Var(&src.Distance, "dist", src.Distance, "distance (Mpc)")
	fs.Float64Var(&src.Inclination, "incl", src.Inclination, "inclination (rad)")
	fs.Float64Var(&src.Longitude, "ra", src.Longitude, "right ascension (rad)")
	fs.Float64Var(&src.Latitude, "dec", src.Latitude, "declination (rad)")
	fs.Float64Var(&src.Polarization, "psi", src.Polarization, "polarization angle (rad)")
	fs.Float64Var(&src.FLow, "flow", src.FLow, "inspiral start frequency (Hz)")
	fs.Float64Var(&src.SampleRate, "rate", src.SampleRate, "sample rate (Hz)")
	fs.StringVar(&src.Kind, "kind", src.Kind, "injection kind: imr or ring")
	sites := fs.String("sites", strings.Join(src.Sites, ","), "comma-separated detector sites")

	var out outputs
	fs.StringVar(&out.dump, "dump", "", "write the waveform channels as text to this file")
	fs.StringVar(&out.plot, "plot", "", "write a PNG plot of the strain to this file")
	fs.StringVar(&out.db, "db", "", "store the injection in this SQLite database")
	fs.Float64Var(&out.sftLen, "sft", 0, "summarize SFTs of this length (s) at the first site")
	fs.BoolVar(&out.verbose, "v", false, "log the extension stages")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: inspring [flags]\n\n")
		fmt.Fprintf(stderr, "Extends a leading-order inspiral with merger and ringdown.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *paramsFile != "" {
		fromFile := defaultSource()
		if err := loadSource(*paramsFile, &fromFile); err != nil {
			return err
		}
		// explicit flags win over the file
		fs.Visit(func(f *flag.Flag) {
			overrideFromFlag(&fromFile, f.Name, &src, *sites)
		})
		src = fromFile
	} else {
		src.Sites = splitSites(*sites)
	}

	level := slog.LevelInfo
	if out.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return generate(context.Background(), &src, out, stdout, logger)
}

func overrideFromFlag(dst *source, name string, flags *source, sites string) {
	switch name {
	case "m1":
		dst.Mass1 = flags.Mass1
	case "m2":
		dst.Mass2 = flags.Mass2
	case "dist":
		dst.Distance = flags.Distance
	case "incl":
		dst.Inclination = flags.Inclination
	case "ra":
		dst.Longitude = flags.Longitude
	case "dec":
		dst.Latitude = flags.Latitude
	case "psi":
		dst.Polarization = flags.Polarization
	case "flow":
		dst.FLow = flags.FLow
	case "rate":
		dst.SampleRate = flags.SampleRate
	case "kind":
		dst.Kind = flags.Kind
	case "sites":
		dst.Sites = splitSites(sites)
	}
}

func splitSites(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func generate(ctx context.Context, src *source, out outputs, stdout io.Writer, logger *slog.Logger) error {
	kind, err := parseKind(src.Kind)
	if err != nil {
		return err
	}
	if !(src.SampleRate > 0) {
		return fmt.Errorf("sample rate must be positive: %v", src.SampleRate)
	}

	w, err := chirp.Newtonian(chirp.Params{
		Mass1:       src.Mass1,
		Mass2:       src.Mass2,
		Distance:    src.Distance,
		Inclination: src.Inclination,
		Phase:       src.Phase,
		FLow:        src.FLow,
		DeltaT:      1 / src.SampleRate,
	})
	if err != nil {
		return err
	}
	w.Epoch = src.EndTime.Add(-float64(w.Len()-1) * w.DeltaT)
	logger.Debug("inspiral", "samples", w.Len(), "f_end", w.F[w.Len()-1])

	opts := []inspring.Option{inspring.WithLogger(logger), inspring.WithSites(src.Sites...)}
	if src.RingFrequency > 0 || src.Quality > 0 {
		opts = append(opts, inspring.WithRemnant(src.RingFrequency, src.Quality))
	}

	inj, err := inspring.Generate(w, src.params(), kind, opts...)
	if err != nil {
		return err
	}

	if err := printInjection(stdout, inj); err != nil {
		return err
	}

	if out.dump != "" {
		if err := dumpWaveform(w, out.dump); err != nil {
			return err
		}
	}
	if out.plot != "" {
		if err := writePlot(w, inj.GeocentStartTime.Sub(w.Epoch), out.plot); err != nil {
			return err
		}
	}
	if out.sftLen > 0 {
		if err := printSFTs(stdout, w, inj, out.sftLen); err != nil {
			return err
		}
	}
	if out.db != "" {
		store, err := simtable.Open(out.db, simtable.WithLogger(logger))
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Insert(ctx, inj); err != nil {
			return err
		}
		logger.Info("stored injection", "db", out.db, "id", inj.SimulationID)
	}

	return nil
}

func printInjection(dst io.Writer, inj *ringdown.Injection) error {
	tw := tabwriter.NewWriter(dst, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "simulation_id\t%s\n", inj.SimulationID)
	fmt.Fprintf(tw, "waveform\t%s\n", inj.Waveform)
	fmt.Fprintf(tw, "geocent_start_time\t%s\n", inj.GeocentStartTime)
	fmt.Fprintf(tw, "mass\t%.4f\n", inj.Mass)
	fmt.Fprintf(tw, "spin\t%.4f\n", inj.Spin)
	fmt.Fprintf(tw, "frequency\t%.3f\n", inj.Frequency)
	fmt.Fprintf(tw, "quality\t%.4f\n", inj.Quality)
	fmt.Fprintf(tw, "inclination\t%.4f\n", inj.Inclination)
	fmt.Fprintf(tw, "amplitude\t%.4e\n", inj.Amplitude)
	fmt.Fprintf(tw, "hrss\t%.4e\n", inj.HRSS)
	fmt.Fprintf(tw, "epsilon\t%.4e\n", inj.Epsilon)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(dst)
	tw = tabwriter.NewWriter(dst, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Site\tStart\tF+\tFx\tEff. dist [Mpc]\thrss\n")
	fmt.Fprintf(tw, "----\t-----\t--\t--\t---------------\t----\n")
	for _, s := range inj.Sites {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.2f\t%.4e\n",
			s.Site, s.StartTime, s.Response.Plus, s.Response.Cross, s.EffDist, s.HRSS)
	}
	return tw.Flush()
}

func dumpWaveform(w *waveform.Waveform, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSFTs(dst io.Writer, w *waveform.Waveform, inj *ringdown.Injection, tsft float64) error {
	if len(inj.Sites) == 0 {
		return errors.New("sft summary needs at least one site")
	}
	site := inj.Sites[0]
	h := w.Strain(site.Response.Plus, site.Response.Cross)

	sfts, err := sft.Compute(h, w.Epoch, w.DeltaT, tsft, site.Site)
	if err != nil {
		return err
	}

	fmt.Fprintln(dst)
	tw := tabwriter.NewWriter(dst, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SFT\tEpoch\tPeak [Hz]\t|h(f)|\tCentroid [Hz]\tBandwidth [Hz]\n")
	fmt.Fprintf(tw, "---\t-----\t---------\t------\t-------------\t--------------\n")
	for i := range sfts {
		sh := sfts[i].Shape()
		if sh.PeakBin < 0 {
			continue
		}
		fmt.Fprintf(tw, "%s-%d\t%s\t%.2f\t%.4e\t%.2f\t%.2f\n",
			sfts[i].Name, i, sfts[i].Epoch, sh.PeakFreq, sh.Peak, sh.Centroid, sh.Bandwidth)
	}
	return tw.Flush()
}
