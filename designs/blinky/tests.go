// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blinky

import (
	"github.com/db47h/hwbench/bench"
)

// Tests returns the blinky testbenches for the given parameters.
//
func Tests(p Params) ([]bench.Test, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	dut, err := New(p.CWidth)
	if err != nil {
		return nil, err
	}
	ports := Ports(p.CWidth)
	return []bench.Test{
		{Name: "blinky_smoke", Design: Design, DUT: dut, Ports: ports, Run: Smoke},
		{Name: "blinky_toggle", Design: Design, DUT: dut, Ports: ports, Run: func(b *bench.Bench) error {
			return Toggle(b, p)
		}},
	}, nil
}

// Smoke holds the design in reset for 4 cycles, then lets it run for 4
// cycles.
//
func Smoke(b *bench.Bench) error {
	if err := b.Reset("rst_i", 4); err != nil {
		return err
	}
	return b.ClockCycles(4)
}

// Toggle checks the counter and LED values around every LED transition for
// p.Periods periods.
//
func Toggle(b *bench.Bench, p Params) error {
	half := int64(1) << uint(p.CWidth-1)
	top := half<<1 - 1

	if err := b.Set("rst_i", 1); err != nil {
		return err
	}
	if err := expect(b, 0, 0, "during reset"); err != nil {
		return err
	}
	if err := b.Reset("rst_i", 4); err != nil {
		return err
	}
	if err := expect(b, 0, 0, "after reset"); err != nil {
		return err
	}

	for i := 0; i < p.Periods; i++ {
		log := b.Log().With().Int("period", i).Logger()
		log.Debug().Msg("led low")
		if err := b.ClockCycles(int(half - 1)); err != nil {
			return err
		}
		if err := expect(b, half-1, 0, "at cnt_q = (2^CWIDTH)/2-1"); err != nil {
			return err
		}
		if err := b.RisingEdge(); err != nil {
			return err
		}
		if err := expect(b, half, 1, "at cnt_q = (2^CWIDTH)/2"); err != nil {
			return err
		}
		log.Debug().Msg("led high")
		if err := b.ClockCycles(int(half - 1)); err != nil {
			return err
		}
		if err := expect(b, top, 1, "at cnt_q = 2^CWIDTH-1"); err != nil {
			return err
		}
		if err := b.RisingEdge(); err != nil {
			return err
		}
		if err := expect(b, 0, 0, "at cnt_q = 0 (rollover)"); err != nil {
			return err
		}
	}
	return nil
}

func expect(b *bench.Bench, cnt, led int64, when string) error {
	if err := b.Expect("cnt_q", cnt, "the internal register cnt_q should be %d %s", cnt, when); err != nil {
		return err
	}
	return b.Expect("led_o", led, "the output led_o should be %d %s", led, when)
}
