package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-gw/gps"
	"github.com/cwbudde/algo-gw/inject/inspring"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// source is the YAML form of a single injection.
type source struct {
	Mass1        float64    `yaml:"mass1"`
	Mass2        float64    `yaml:"mass2"`
	Spin1        [3]float64 `yaml:"spin1"`
	Spin2        [3]float64 `yaml:"spin2"`
	Distance     float64    `yaml:"distance"`
	Inclination  float64    `yaml:"inclination"`
	Longitude    float64    `yaml:"longitude"`
	Latitude     float64    `yaml:"latitude"`
	Polarization float64    `yaml:"polarization"`
	Phase        float64    `yaml:"phase"`
	EndTime      gps.Time   `yaml:"end_time"`

	FLow       float64 `yaml:"f_low"`
	SampleRate float64 `yaml:"sample_rate"`

	Kind  string   `yaml:"kind"`
	Sites []string `yaml:"sites"`

	// RingFrequency and Quality override the remnant estimate when both are set.
	RingFrequency float64 `yaml:"ring_frequency"`
	Quality       float64 `yaml:"quality"`
}

func defaultSource() source {
	return source{
		Mass1:       10,
		Mass2:       10,
		Distance:    100,
		Inclination: 1,
		EndTime:     gps.Time{Sec: 1000000000},
		FLow:        40,
		SampleRate:  16384,
		Kind:        "imr",
		Sites:       []string{"H1", "L1"},
	}
}

// loadSource overlays the YAML file at path on src.
func loadSource(path string, src *source) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read params: %w", err)
	}
	if err := yaml.Unmarshal(data, src); err != nil {
		return fmt.Errorf("parse params %s: %w", path, err)
	}
	return nil
}

func (s *source) params() *inspring.Params {
	return &inspring.Params{
		Mass1:        s.Mass1,
		Mass2:        s.Mass2,
		Spin1:        r3.Vec{X: s.Spin1[0], Y: s.Spin1[1], Z: s.Spin1[2]},
		Spin2:        r3.Vec{X: s.Spin2[0], Y: s.Spin2[1], Z: s.Spin2[2]},
		Inclination:  s.Inclination,
		Longitude:    s.Longitude,
		Latitude:     s.Latitude,
		Distance:     s.Distance,
		Polarization: s.Polarization,
		EndTime:      s.EndTime,
	}
}

func parseKind(s string) (inspring.Kind, error) {
	switch s {
	case "imr", "":
		return inspring.InspiralMergerRing, nil
	case "ring":
		return inspring.RingOnly, nil
	}
	return 0, fmt.Errorf("unknown kind %q (want imr or ring)", s)
}
