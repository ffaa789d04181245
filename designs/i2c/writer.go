// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package i2c is an I2C register writer and its testbenches.
//
// After reset, the writer sends a table of register values to an I2C target,
// one write transaction per register: START, address+W, register address
// (16 bits, MSB first), value, STOP. This is how MIPI camera sensors are
// usually configured.
//
// Each bit lasts four quarters of ClkDiv clock cycles. SCL is high during the
// two middle quarters. A NACK sets the sticky err_o output and aborts the
// current transaction with a STOP. done_o is set once the last transaction has
// been sent.
//
//	Inputs: rst_i, sda_i
//	Outputs: scl_o, sda_o, busy_o, done_o, err_o
//
package i2c

import (
	hw "github.com/db47h/hwbench"
)

// Write is a register write.
//
type Write struct {
	Reg uint16 `toml:"reg"`
	Val uint8  `toml:"val"`
}

type kind int

const (
	kStart kind = iota
	kBit
	kAck
	kStop
)

type symbol struct {
	kind kind
	bit  bool
	stop int // index of the STOP symbol of the transaction
}

// SCL and SDA levels per quarter.
var (
	startLines = [4][2]bool{{true, true}, {true, true}, {true, false}, {false, false}}
	stopLines  = [4][2]bool{{false, false}, {true, false}, {true, true}, {true, true}}
)

func (s symbol) lines(q int) (scl, sda bool) {
	switch s.kind {
	case kStart:
		return startLines[q][0], startLines[q][1]
	case kStop:
		return stopLines[q][0], stopLines[q][1]
	case kAck:
		return q == 1 || q == 2, true
	}
	return q == 1 || q == 2, s.bit
}

func program(addr uint8, writes []Write) []symbol {
	var prog []symbol
	for _, w := range writes {
		stop := len(prog) + 1 + 4*9
		prog = append(prog, symbol{kind: kStart, stop: stop})
		for _, b := range [...]uint8{addr << 1, uint8(w.Reg >> 8), uint8(w.Reg), w.Val} {
			for i := 7; i >= 0; i-- {
				prog = append(prog, symbol{kind: kBit, bit: b&(1<<uint(i)) != 0, stop: stop})
			}
			prog = append(prog, symbol{kind: kAck, stop: stop})
		}
		prog = append(prog, symbol{kind: kStop, stop: stop})
	}
	return prog
}

type writer struct {
	Rst   int `hw:"in,rst_i"`
	SDAIn int `hw:"in,sda_i"`
	SCL   int `hw:"out,scl_o"`
	SDA   int `hw:"out,sda_o"`
	Busy  int `hw:"out,busy_o"`
	Done  int `hw:"out,done_o"`
	Err   int `hw:"out,err_o"`

	clkDiv int
	prog   []symbol
	pc     int // current symbol, -1 in reset
	q      int // quarter
	div    int
	nack   bool
	err    bool
}

func (w *writer) Update(c *hw.Circuit) {
	if c.AtTick() {
		w.clock(c)
	}
	scl, sda := true, true
	running := w.pc >= 0 && w.pc < len(w.prog)
	if running {
		scl, sda = w.prog[w.pc].lines(w.q)
	}
	c.Set(w.SCL, scl)
	c.Set(w.SDA, sda)
	c.Set(w.Busy, running)
	c.Set(w.Done, w.pc >= len(w.prog))
	c.Set(w.Err, w.err)
}

func (w *writer) clock(c *hw.Circuit) {
	if c.Get(w.Rst) {
		w.pc, w.q, w.div = -1, 0, 0
		w.nack, w.err = false, false
		return
	}
	if w.pc < 0 {
		w.pc = 0
		return
	}
	if w.pc >= len(w.prog) {
		return
	}
	if w.div++; w.div < w.clkDiv {
		return
	}
	w.div = 0
	s := w.prog[w.pc]
	// the target acknowledges by pulling SDA low while SCL is high.
	if s.kind == kAck && w.q == 2 && c.Get(w.SDAIn) {
		w.nack, w.err = true, true
	}
	if w.q++; w.q < 4 {
		return
	}
	w.q = 0
	if w.nack {
		w.nack = false
		w.pc = s.stop
	} else {
		w.pc++
	}
}

// NewWriter returns a writer part that sends writes to the target at addr.
// clkDiv is the number of clock cycles per SCL quarter period.
//
func NewWriter(addr uint8, clkDiv int, writes []Write) hw.NewPartFn {
	if clkDiv < 1 {
		clkDiv = 1
	}
	return hw.MakePart(&writer{
		clkDiv: clkDiv,
		prog:   program(addr, writes),
		pc:     -1,
	}).NewPart
}

// Cycles returns the number of clock cycles needed by a writer to send writes,
// reset excluded.
//
func Cycles(clkDiv int, writes []Write) int {
	return 1 + len(writes)*(1+4*9+1)*4*clkDiv
}
