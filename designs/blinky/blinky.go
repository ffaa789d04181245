// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package blinky is a counter driving a LED and its testbenches.
//
// The design is a CWIDTH bits counter with synchronous reset. The LED output
// is the counter MSB, so that it blinks with a period of 2^CWIDTH cycles.
//
//	Inputs: rst_i
//	Outputs: led_o, cnt_q[CWIDTH]
//
package blinky

import (
	"strconv"

	hw "github.com/db47h/hwbench"
	"github.com/db47h/hwbench/bench"
	"github.com/db47h/hwbench/hwlib"
	"github.com/pkg/errors"
)

// Design is the design name.
const Design = "blinky"

// Params holds the design and testbench parameters.
//
type Params struct {
	// CWidth is the counter width (CWIDTH).
	CWidth int `toml:"cwidth"`
	// Periods is the number of LED periods checked by the toggle testbench.
	Periods int `toml:"periods"`
}

// DefaultParams returns the default parameters.
func DefaultParams() Params {
	return Params{CWidth: 4, Periods: 10}
}

// Validate checks the parameters.
func (p *Params) Validate() error {
	if p.CWidth < 2 || p.CWidth > 32 {
		return errors.Errorf("blinky: cwidth %d out of range [2, 32]", p.CWidth)
	}
	if p.Periods < 1 {
		return errors.Errorf("blinky: invalid period count %d", p.Periods)
	}
	return nil
}

// New returns the blinky chip for the given counter width.
//
func New(cwidth int) (hw.NewPartFn, error) {
	cnt, err := hwlib.CounterN(cwidth)
	if err != nil {
		return nil, errors.Wrap(err, Design)
	}
	w := strconv.Itoa(cwidth)
	r := "[0.." + strconv.Itoa(cwidth-1) + "]"
	return hw.Chip("Blinky", "rst_i", "led_o, cnt_q["+w+"]",
		cnt("rst=rst_i, out"+r+"=cnt_q"+r+", out["+strconv.Itoa(cwidth-1)+"]=led_o"),
	)
}

// Ports returns the ports of the design.
func Ports(cwidth int) []bench.Port {
	return []bench.Port{
		bench.In("rst_i"),
		bench.Out("led_o"),
		bench.OutBus("cnt_q", cwidth),
	}
}
