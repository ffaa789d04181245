// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"strconv"

	hw "github.com/db47h/hwbench"
)

type direction int

const (
	dirIn direction = iota
	dirOut
)

// A Port describes a top level signal of a design under test. Input ports are
// driven by the bench, output ports are probed.
//
type Port struct {
	Name string
	Bits int // bus width, 0 for a single pin
	dir  direction
}

// In returns a single pin input port.
func In(name string) Port { return Port{Name: name, dir: dirIn} }

// InBus returns an input bus port.
func InBus(name string, bits int) Port { return Port{Name: name, Bits: bits, dir: dirIn} }

// Out returns a single pin output port.
func Out(name string) Port { return Port{Name: name, dir: dirOut} }

// OutBus returns an output bus port.
func OutBus(name string, bits int) Port { return Port{Name: name, Bits: bits, dir: dirOut} }

// IsInput returns true for ports driven by the bench.
func (p Port) IsInput() bool { return p.dir == dirIn }

// conn returns the "pin=wire" connection string of the port where the part
// pin is named pin and the wire has the port's name.
//
func (p Port) conn(pin string) string {
	if p.Bits == 0 {
		return pin + "=" + p.Name
	}
	r := "[0.." + strconv.Itoa(p.Bits-1) + "]"
	return pin + r + "=" + p.Name + r
}

// ioSpec returns the i/o specification of a part pin connected to the port.
func (p Port) ioSpec(pin string) []string {
	if p.Bits == 0 {
		return []string{pin}
	}
	return hw.IO(pin + "[" + strconv.Itoa(p.Bits) + "]")
}

// width returns the number of pins of the port.
func (p Port) width() int {
	if p.Bits == 0 {
		return 1
	}
	return p.Bits
}
