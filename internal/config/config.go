// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the hwbench runtime settings and scenario files.
//
// Runtime settings come from command line flags, HWBENCH_* environment
// variables and an optional hwbench.{toml,yaml,json} file, in that order of
// precedence. Scenario files hold the design parameters.
//
package config

import (
	"strings"

	"github.com/db47h/hwbench/bench"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys.
const (
	KeyLogLevel      = "log-level"
	KeyLogFile       = "log-file"
	KeyOutDir        = "out-dir"
	KeyWorkers       = "workers"
	KeyStepsPerCycle = "steps-per-cycle"
	KeyScenario      = "scenario"
	KeyList          = "list"
	KeyDump          = "dump"
	KeyConfig        = "config"
)

// Runtime holds the runtime settings.
//
type Runtime struct {
	LogLevel      string
	LogFile       string
	OutDir        string
	Workers       int
	StepsPerCycle uint
	Scenario      string
	List          bool
	Dump          bool
}

// Flags registers the runtime flags in fs.
//
func Flags(fs *pflag.FlagSet) {
	fs.String(KeyLogLevel, "info", "log level (trace, debug, info, warn, error)")
	fs.String(KeyLogFile, "", "also write JSON logs to this file")
	fs.StringP(KeyOutDir, "o", "", "output directory for test artifacts (none if empty)")
	fs.IntP(KeyWorkers, "w", 1, "number of simulation goroutines per bench (0 for GOMAXPROCS)")
	fs.Uint(KeyStepsPerCycle, bench.DefaultStepsPerCycle, "simulation steps per clock cycle")
	fs.StringP(KeyScenario, "s", "", "scenario file with design parameters (TOML)")
	fs.BoolP(KeyList, "l", false, "list testbenches and exit")
	fs.Bool(KeyDump, false, "dump the scenario parameters and exit")
	fs.StringP(KeyConfig, "c", "", "configuration file")
}

// Load reads the runtime settings from v, with flags from fs bound to v.
//
func Load(v *viper.Viper, fs *pflag.FlagSet) (Runtime, error) {
	if err := v.BindPFlags(fs); err != nil {
		return Runtime{}, errors.Wrap(err, "failed to bind flags")
	}
	v.SetEnvPrefix("hwbench")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cf := v.GetString(KeyConfig); cf != "" {
		v.SetConfigFile(cf)
		if err := v.ReadInConfig(); err != nil {
			return Runtime{}, errors.Wrap(err, "error reading config file")
		}
	} else {
		v.SetConfigName("hwbench")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Runtime{}, errors.Wrap(err, "error reading config file")
			}
		}
	}

	rt := Runtime{
		LogLevel:      v.GetString(KeyLogLevel),
		LogFile:       v.GetString(KeyLogFile),
		OutDir:        v.GetString(KeyOutDir),
		Workers:       v.GetInt(KeyWorkers),
		StepsPerCycle: v.GetUint(KeyStepsPerCycle),
		Scenario:      v.GetString(KeyScenario),
		List:          v.GetBool(KeyList),
		Dump:          v.GetBool(KeyDump),
	}
	if rt.Workers < 0 {
		return rt, errors.Errorf("invalid worker count %d", rt.Workers)
	}
	if rt.StepsPerCycle < 4 {
		return rt, errors.Errorf("invalid steps per cycle %d: must be at least 4", rt.StepsPerCycle)
	}
	return rt, nil
}

// Bench returns the bench configuration for the given run.
func (rt *Runtime) Bench(runID string) bench.Config {
	return bench.Config{
		Workers:       rt.Workers,
		StepsPerCycle: rt.StepsPerCycle,
		OutDir:        rt.OutDir,
		RunID:         runID,
	}
}
