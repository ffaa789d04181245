// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package i2c

import (
	"github.com/db47h/hwbench/bench"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// Params holds the design and testbench parameters.
//
type Params struct {
	// Addr is the 7 bits target address.
	Addr uint8 `toml:"addr"`
	// ClkDiv is the number of clock cycles per SCL quarter period.
	ClkDiv int `toml:"clk_div"`
	// Cycles is the watchdog limit, in clock cycles after reset.
	Cycles int     `toml:"cycles"`
	Writes []Write `toml:"writes"`
}

// DefaultParams returns the default parameters: a short IMX219 camera
// sensor initialization sequence.
//
func DefaultParams() Params {
	return Params{
		Addr:   0x10,
		ClkDiv: 4,
		Cycles: 10000,
		Writes: []Write{
			{0x0100, 0x00}, // standby
			{0x30eb, 0x05}, // manufacturer registers access sequence
			{0x30eb, 0x0c},
			{0x300a, 0xff},
			{0x300b, 0xff},
			{0x30eb, 0x05},
			{0x30eb, 0x09},
		},
	}
}

// Validate checks the parameters.
func (p *Params) Validate() error {
	switch {
	case p.Addr > 0x7f:
		return errors.Errorf("i2c: address %#x out of range", p.Addr)
	case p.ClkDiv < 1:
		return errors.Errorf("i2c: invalid clock divider %d", p.ClkDiv)
	case len(p.Writes) == 0:
		return errors.New("i2c: empty register table")
	case p.Cycles < 1:
		return errors.Errorf("i2c: invalid cycle limit %d", p.Cycles)
	}
	return nil
}

// Tests returns the I2C testbenches for the given parameters.
//
func Tests(p Params) ([]bench.Test, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	dut, err := NewHarness(NewWriter(p.Addr, p.ClkDiv, p.Writes))
	if err != nil {
		return nil, errors.Wrap(err, Design)
	}
	return []bench.Test{
		{Name: "i2c_writer", Design: Design, DUT: dut, Ports: Ports(), Run: func(b *bench.Bench) error {
			return CheckWrites(b, &p)
		}},
		{Name: "i2c_nack", Design: Design, DUT: dut, Ports: Ports(), Run: func(b *bench.Bench) error {
			return CheckNack(b, &p)
		}},
	}, nil
}

// Run resets the harness, then runs it with tgt on the bus until done_o is
// set or the cycle limit is reached.
//
func Run(b *bench.Bench, tgt *Target, limit int) error {
	// release SDA before anything else
	if err := b.Set("tgt_sda", 1); err != nil {
		return err
	}
	if err := b.Reset("rst_i", 4); err != nil {
		return err
	}
	for i := 0; ; i++ {
		done, err := b.Get("done_o")
		if err != nil {
			return err
		}
		if done != 0 {
			b.Log().Debug().Int("cycles", i).Int("transactions", len(tgt.Transactions)).Msg("writer done")
			return nil
		}
		if i == limit {
			return errors.Wrapf(bench.ErrTimeout, "%s: done_o not set after %d cycles", b.Name(), limit)
		}
		scl, err := b.Get("scl_o")
		if err != nil {
			return err
		}
		sda, err := b.Get("sda_o")
		if err != nil {
			return err
		}
		var drive int64
		if tgt.Sample(scl != 0, sda != 0) {
			drive = 1
		}
		if err = b.Set("tgt_sda", drive); err != nil {
			return err
		}
		if err = b.RisingEdge(); err != nil {
			return err
		}
	}
}

// Expected returns the transactions expected on the bus for a writer
// configured with p. If nacked is true, the target does not answer.
//
func Expected(p *Params, nacked bool) []Transaction {
	var txs []Transaction
	for _, w := range p.Writes {
		tx := Transaction{Addr: p.Addr, Nacked: nacked}
		if !nacked {
			tx.Data = []byte{byte(w.Reg >> 8), byte(w.Reg), w.Val}
		}
		txs = append(txs, tx)
	}
	return txs
}

func checkTransactions(b *bench.Bench, tgt *Target, want []Transaction) error {
	if diff := cmp.Diff(want, tgt.Transactions); diff != "" {
		return errors.Errorf("%s: transactions mismatch (-want +got):\n%s", b.Name(), diff)
	}
	return nil
}

// CheckWrites checks that every register write is sent and acknowledged.
//
func CheckWrites(b *bench.Bench, p *Params) error {
	tgt := NewTarget(p.Addr)
	if err := Run(b, tgt, p.Cycles); err != nil {
		return err
	}
	if err := b.Expect("err_o", 0, "no NACK expected"); err != nil {
		return err
	}
	if err := b.Expect("busy_o", 0, "writer done"); err != nil {
		return err
	}
	return checkTransactions(b, tgt, Expected(p, false))
}

// CheckNack runs the writer against a target answering another address. Every
// transaction must be aborted after the address byte and err_o must be set.
//
func CheckNack(b *bench.Bench, p *Params) error {
	tgt := NewTarget((p.Addr + 1) & 0x7f)
	if err := Run(b, tgt, p.Cycles); err != nil {
		return err
	}
	if err := b.Expect("err_o", 1, "NACK expected"); err != nil {
		return err
	}
	return checkTransactions(b, tgt, Expected(p, true))
}
