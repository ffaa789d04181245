// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package i2c

import (
	hw "github.com/db47h/hwbench"
	"github.com/db47h/hwbench/bench"
	"github.com/db47h/hwbench/hwlib"
)

// Design is the design name.
const Design = "i2c"

// NewHarness wraps a writer into a chip modeling the open-drain SDA line: the
// line is low whenever the writer (sda_o) or the target (tgt_sda) pulls it
// low. The writer reads back the line level on its sda_i input.
//
//	Inputs: rst_i, tgt_sda
//	Outputs: scl_o, sda_o (line level), busy_o, done_o, err_o
//
func NewHarness(writer hw.NewPartFn) (hw.NewPartFn, error) {
	return hw.Chip("I2CHarness", "rst_i, tgt_sda", "scl_o, sda_o, busy_o, done_o, err_o",
		writer("rst_i=rst_i, sda_i=sda_o, scl_o=scl_o, sda_o=wr_sda, busy_o=busy_o, done_o=done_o, err_o=err_o"),
		hwlib.And("a=wr_sda, b=tgt_sda, out=sda_o"),
	)
}

// Ports returns the ports of the harness.
func Ports() []bench.Port {
	return []bench.Port{
		bench.In("rst_i"),
		bench.In("tgt_sda"),
		bench.Out("scl_o"),
		bench.Out("sda_o"),
		bench.Out("busy_o"),
		bench.Out("done_o"),
		bench.Out("err_o"),
	}
}
