// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwbench

import (
	"strconv"

	"github.com/db47h/hwbench/internal/hdl"
	"github.com/pkg/errors"
)

// BusPinName returns the name of pin i of the given bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// IO expands a pin specification string like "a, b, bus[2]" into individual
// pin names: []string{"a", "b", "bus[0]", "bus[1]"}.
//
// IO panics if the specification is invalid. It is meant to be used in
// PartSpec literals.
//
func IO(spec string) []string {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// ParseIOSpec parses the pin specification string and returns individual pin
// names in a slice, also expanding bus declarations to individual pin names.
// For example:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIOSpec(spec string) ([]string, error) {
	var out []string
	p := hdl.Parser{Input: spec}
	for {
		item, err := p.Next(false)
		if err != nil {
			return nil, err
		}
		switch v := item.(type) {
		case nil:
			return out, nil
		case hdl.Pin:
			out = append(out, v.Name)
		case hdl.PinIndex:
			if v.Index <= 0 {
				return nil, errors.Errorf("in %q at pos %d: invalid bus size %d", spec, v.Pos+1, v.Index)
			}
			for i := 0; i < v.Index; i++ {
				out = append(out, BusPinName(v.Name, i))
			}
		case hdl.PinRange:
			return nil, errors.Errorf("in %q at pos %d: pin range not allowed in i/o specification", spec, v.Pos+1)
		}
	}
}

// A Connection connects a part pin (PP) to one or more wires of the host
// chip (CP). Only output pins can be connected to more than one wire.
//
type Connection struct {
	PP string
	CP []string
}

// ParseConnections parses a connection configuration like
// "partPin1=chipPin1, partPin2=chipPin2" into a []Connection.
//
// Buses can be connected with ranges ("a[0..3]=x[4..7]") or indices
// ("a[1]=y"). A single part pin can be connected to a range of chip wires
// (fan-out) and a range of part pins can be connected to a single wire, which
// is mostly useful to tie a whole bus to "true" or "false". The same part pin
// may appear more than once; its wires are then merged.
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	p := hdl.Parser{Input: c}
	idx := make(map[string]int)
	for {
		item, err := p.Next(true)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return conns, nil
		}
		a, ok := item.(hdl.PinAssignment)
		if !ok {
			return nil, errors.Errorf("in %q: missing '=' after pin %s", c, pinString(item))
		}
		lhs, rhs := expandPin(a.LHS), expandPin(a.RHS)
		switch {
		case len(lhs) == len(rhs):
			for i := range lhs {
				conns = addConn(conns, idx, lhs[i], rhs[i])
			}
		case len(lhs) == 1:
			for _, w := range rhs {
				conns = addConn(conns, idx, lhs[0], w)
			}
		case len(rhs) == 1:
			for _, pp := range lhs {
				conns = addConn(conns, idx, pp, rhs[0])
			}
		default:
			return nil, errors.Errorf("in %q: pin count mismatch in pin mapping %s=%s", c, pinString(a.LHS), pinString(a.RHS))
		}
	}
}

func addConn(conns []Connection, idx map[string]int, pp, cp string) []Connection {
	if i, ok := idx[pp]; ok {
		conns[i].CP = append(conns[i].CP, cp)
		return conns
	}
	idx[pp] = len(conns)
	return append(conns, Connection{PP: pp, CP: []string{cp}})
}

func expandPin(p interface{}) []string {
	switch v := p.(type) {
	case hdl.Pin:
		return []string{v.Name}
	case hdl.PinIndex:
		return []string{BusPinName(v.Name, v.Index)}
	case hdl.PinRange:
		var r []string
		if v.Start <= v.End {
			for i := v.Start; i <= v.End; i++ {
				r = append(r, BusPinName(v.Name, i))
			}
		} else {
			for i := v.Start; i >= v.End; i-- {
				r = append(r, BusPinName(v.Name, i))
			}
		}
		return r
	}
	panic("unexpected parser item")
}

func pinString(p interface{}) string {
	switch v := p.(type) {
	case hdl.Pin:
		return v.Name
	case hdl.PinIndex:
		return BusPinName(v.Name, v.Index)
	case hdl.PinRange:
		return v.Name + "[" + strconv.Itoa(v.Start) + ".." + strconv.Itoa(v.End) + "]"
	}
	return "?"
}
