// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/hwbench/bench"
	"github.com/db47h/hwbench/designs/blinky"
	"github.com/db47h/hwbench/designs/i2c"
	"github.com/db47h/hwbench/designs/video"
	"github.com/pkg/errors"
)

// A Scenario holds the parameters of every design.
//
type Scenario struct {
	Blinky blinky.Params `toml:"blinky"`
	Video  video.Params  `toml:"video"`
	I2C    i2c.Params    `toml:"i2c"`
}

// DefaultScenario returns the default parameters of every design.
func DefaultScenario() Scenario {
	return Scenario{
		Blinky: blinky.DefaultParams(),
		Video:  video.DefaultParams(),
		I2C:    i2c.DefaultParams(),
	}
}

// DecodeScenario decodes a TOML scenario on top of the default parameters.
// Unknown keys are reported as errors.
//
func DecodeScenario(r io.Reader) (Scenario, error) {
	s := DefaultScenario()
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return s, errors.Wrap(err, "failed to decode scenario")
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return s, errors.Errorf("unknown scenario keys: %s", strings.Join(keys, ", "))
	}
	return s, s.Validate()
}

// LoadScenario loads a scenario file. The default scenario is returned if
// name is empty.
//
func LoadScenario(name string) (Scenario, error) {
	if name == "" {
		return DefaultScenario(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return Scenario{}, errors.Wrap(err, "failed to open scenario")
	}
	defer f.Close()
	s, err := DecodeScenario(f)
	return s, errors.Wrap(err, name)
}

// Validate checks the parameters of every design.
func (s *Scenario) Validate() error {
	if err := s.Blinky.Validate(); err != nil {
		return err
	}
	if err := s.Video.Validate(); err != nil {
		return err
	}
	return s.I2C.Validate()
}

// Tests returns the testbenches of every design.
//
func (s *Scenario) Tests() ([]bench.Test, error) {
	var all []bench.Test
	for _, f := range []func() ([]bench.Test, error){
		func() ([]bench.Test, error) { return blinky.Tests(s.Blinky) },
		func() ([]bench.Test, error) { return video.Tests(s.Video) },
		func() ([]bench.Test, error) { return i2c.Tests(s.I2C) },
	} {
		ts, err := f()
		if err != nil {
			return nil, err
		}
		all = append(all, ts...)
	}
	return all, nil
}
