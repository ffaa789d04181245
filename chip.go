// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwbench

import (
	"github.com/pkg/errors"
)

// Constant input pin names.
//
const (
	False = "false"
	True  = "true"
	Clk   = "clk"
)

// pin numbers of constant pins.
const (
	cstFalse = iota
	cstTrue
	cstClk
	cstCount
)

func isConstant(name string) bool {
	return name == False || name == True || name == Clk
}

// A Component is a component in a circuit that can Get and Set states.
//
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query
// the socket for assigned pin numbers and return closures around
// these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	notSpec := &PartSpec{
//		Name:    "Not",
//		Inputs:  IO("in"),
//		Outputs: IO("out"),
//		Mount: func(s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func(c *Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
//
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
// Custom parts are implemented by creating a PartSpec and getting a
// NewPartFn for it:
//
//	var notGate = notSpec.NewPart
//
// or:
//
//	func Not(c string) Part { return notSpec.NewPart(c) }
//
// Which can then be used when building other chips:
//
//	c, _ := Chip("dummy", "a, b", "c, d",
//		notGate("in=a, out=c"),
//		Not("in=b, out=d"),
//	)
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct pin names.
	// Use the IO() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}
	Inputs []string
	// Output pin names. Must be distinct pin names.
	Outputs []string
	// Mount function (see MountFn). Nil for chips created with Chip().
	Mount MountFn

	parts []Part
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// It panics if the connection string cannot be parsed. Pin names are checked
// when the part is used in a Chip or Circuit.
//
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	return Part{p, conns}
}

// IsChip returns true if the part is a composition of other parts.
//
func (p *PartSpec) IsChip() bool {
	return p.parts != nil
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part. See ParseConnections for the syntax of the connection configuration
// string.
//
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a host
// chip.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// A Xor gate could be created like this:
//
//	xor, err := Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}
	if err = checkWiring(ins, outs, parts); err != nil {
		return nil, err
	}
	if parts == nil {
		parts = []Part{}
	}
	sp := &PartSpec{
		Name:    name,
		Inputs:  ins,
		Outputs: outs,
		parts:   parts,
	}
	return sp.NewPart, nil
}

const (
	typeInput = iota + 1
	typeOutput
)

// checkWiring validates the internal wiring of a chip.
//
func checkWiring(ins, outs []string, parts []Part) error {
	ios := make(map[string]int, len(ins)+len(outs))
	for _, n := range ins {
		if isConstant(n) {
			return errors.New("constant " + n + " used as chip input name")
		}
		if ios[n] != 0 {
			return errors.New("duplicate chip pin name " + n)
		}
		ios[n] = typeInput
	}
	for _, n := range outs {
		if isConstant(n) {
			return errors.New("constant " + n + " used as chip output name")
		}
		if ios[n] != 0 {
			return errors.New("duplicate chip pin name " + n)
		}
		ios[n] = typeOutput
	}

	drivers := make(map[string]string) // wire -> part.pin driving it
	readers := make(map[string]bool)

	for _, p := range parts {
		if p.PartSpec == nil {
			return errors.New("nil part spec")
		}
		pins := make(map[string]int, len(p.Inputs)+len(p.Outputs))
		for _, n := range p.Inputs {
			pins[n] = typeInput
		}
		for _, n := range p.Outputs {
			pins[n] = typeOutput
		}
		for _, c := range p.Conns {
			src := p.Name + "." + c.PP
			switch pins[c.PP] {
			case typeInput:
				if len(c.CP) > 1 {
					return errors.New(src + ": input pin connected to more than one wire")
				}
				readers[c.CP[0]] = true
			case typeOutput:
				for _, w := range c.CP {
					switch {
					case w == True || w == False:
						return errors.New(src + ":" + w + ": output pin connected to constant " + w + " input")
					case w == Clk:
						return errors.New(src + ":" + w + ": output pin connected to clock signal")
					case ios[w] == typeInput:
						return errors.New(src + ":" + w + ": chip input pin used as output")
					case drivers[w] != "":
						return errors.New(src + ":" + w + ": output pin already used as output by " + drivers[w])
					}
					drivers[w] = src
				}
			default:
				return errors.New("invalid pin name " + c.PP + " for part " + p.Name)
			}
		}
	}

	for w := range readers {
		if ios[w] == 0 && !isConstant(w) && drivers[w] == "" {
			return errors.New("pin " + w + " not connected to any output")
		}
	}
	for w := range drivers {
		if ios[w] == 0 && !readers[w] {
			return errors.New("pin " + w + " not connected to any input")
		}
	}
	return nil
}
