package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML form of the run settings. Zero values leave the
// flag defaults in place.
type fileConfig struct {
	Suites       []string `yaml:"suites"`
	Match        string   `yaml:"match"`
	Rounds       int      `yaml:"rounds"`
	MinRoundTime string   `yaml:"min_round_time"`
	NoKernels    bool     `yaml:"no_kernels"`
	JSON         bool     `yaml:"json"`
	Output       string   `yaml:"output"`
	MetricsFile  string   `yaml:"metrics_file"`
}

func loadConfig(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	return fc, nil
}

// apply copies file settings into cfg for every flag not set on the
// command line.
func (fc fileConfig) apply(flags *pflag.FlagSet, cfg *runConfig) error {
	unset := func(name string) bool { return !flags.Changed(name) }

	if len(fc.Suites) > 0 && unset("suites") {
		cfg.suites = fc.Suites
	}
	if fc.Match != "" && unset("match") {
		cfg.match = fc.Match
	}
	if fc.Rounds > 0 && unset("rounds") {
		cfg.rounds = fc.Rounds
	}
	if fc.MinRoundTime != "" && unset("min-round-time") {
		d, err := time.ParseDuration(fc.MinRoundTime)
		if err != nil {
			return fmt.Errorf("config min_round_time: %w", err)
		}
		cfg.minRoundTime = d
	}
	if fc.NoKernels && unset("no-kernels") {
		cfg.noKernels = true
	}
	if fc.JSON && unset("json") {
		cfg.outputJSON = true
	}
	if fc.Output != "" && unset("output") {
		cfg.outputPath = fc.Output
	}
	if fc.MetricsFile != "" && unset("metrics-file") {
		cfg.metricsFile = fc.MetricsFile
	}

	return nil
}
