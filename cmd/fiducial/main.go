// Command fiducial shifts the frequencies of combined search candidates to
// a common fiducial GPS time and writes the loudest candidates per data
// stretch and file.
//
// Usage:
//
//	fiducial -i combined.txt -o shifted.txt -setup setup.yaml [flags]
//
// The setup file maps work-unit names to their search parameters:
//
//	z1_0123:
//	  start: 793555944
//	  end: 793585944
//	  fband: 0.25
//	  min_jobs: 1
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-gw/pulsar/candidate"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("fiducial", flag.ContinueOnError)
	fs.SetOutput(stderr)

	input := fs.String("i", "", "combined candidate file (required)")
	output := fs.String("o", "", "output file (required)")
	setupFile := fs.String("setup", "", "YAML search setup per work unit (required)")
	candThr := fs.Int("x", 0, "candidates kept per data stretch, 0 derives it from the setup")
	minTwoF := fs.Float64("t", -1, "threshold on 2F")
	fiducial := candidate.DefaultFiducial
	fs.TextVar(&fiducial, "fiducial", candidate.DefaultFiducial, "fiducial GPS time")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" || *output == "" || *setupFile == "" {
		fs.Usage()
		return errors.New("-i, -o and -setup are required")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	setup, err := loadSetup(*setupFile)
	if err != nil {
		return err
	}

	in, err := os.Open(*input)
	if err != nil {
		return err
	}
	cands, err := candidate.Read(in, *minTwoF)
	in.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", *input, err)
	}
	logger.Debug("read candidates", "file", *input, "count", len(cands))

	thr, err := candidate.Shift(cands, setup, fiducial, *candThr)
	if err != nil {
		return err
	}
	logger.Info("shifted to fiducial time", "fiducial", fiducial, "kept_per_stretch", thr)

	candidate.Sort(cands)

	out, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := candidate.Write(out, cands); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func loadSetup(path string) (candidate.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read setup: %w", err)
	}
	var t candidate.Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse setup %s: %w", path, err)
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("setup %s lists no work units", path)
	}
	return t, nil
}
