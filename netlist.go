// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwbench

import (
	"strconv"

	"github.com/pkg/errors"
)

// netlist flattens a part hierarchy into nets. A net is a set of wire names
// (fully qualified by the path of the chip instance they belong to) that are
// electrically the same wire. Nets are tracked with a union-find.
//
type netlist struct {
	parent map[string]string
	prims  []instance
}

// instance is a primitive part (one with a MountFn) at a given path.
type instance struct {
	path string
	spec *PartSpec
}

func newNetlist() *netlist {
	return &netlist{parent: make(map[string]string)}
}

func (nl *netlist) find(n string) string {
	p, ok := nl.parent[n]
	if !ok {
		nl.parent[n] = n
		return n
	}
	if p == n {
		return n
	}
	r := nl.find(p)
	nl.parent[n] = r
	return r
}

func (nl *netlist) union(a, b string) {
	ra, rb := nl.find(a), nl.find(b)
	if ra == rb {
		return
	}
	// constants always stay at the root so that their pin number is stable.
	if isConstant(rb) {
		ra, rb = rb, ra
	}
	nl.parent[rb] = ra
}

func qualify(path, name string) string {
	if isConstant(name) {
		return name
	}
	return path + "." + name
}

// add adds part p at the given path. outer qualifies wire names in the
// namespace of the host chip.
//
func (nl *netlist) add(path string, p Part, outer func(string) string) error {
	connected := make(map[string]bool, len(p.Conns))
	for _, c := range p.Conns {
		connected[c.PP] = true
		for _, w := range c.CP {
			nl.union(path+"."+c.PP, outer(w))
		}
	}
	// unconnected inputs are tied to False.
	for _, in := range p.Inputs {
		if !connected[in] {
			nl.union(path+"."+in, False)
		}
	}

	if !p.IsChip() {
		if p.Mount == nil {
			return errors.New("part " + p.Name + " has no mount function")
		}
		nl.prims = append(nl.prims, instance{path, p.PartSpec})
		return nil
	}

	inner := func(n string) string { return qualify(path, n) }
	for i, sub := range p.parts {
		if err := nl.add(path+"/"+strconv.Itoa(i)+":"+sub.Name, sub, inner); err != nil {
			return errors.Wrap(err, p.Name)
		}
	}
	return nil
}

// check verifies that constants are not shorted together and that every net is
// driven by at most one primitive output.
//
func (nl *netlist) check() error {
	if nl.find(True) == nl.find(False) || nl.find(True) == nl.find(Clk) || nl.find(False) == nl.find(Clk) {
		return errors.New("constant pins shorted together")
	}
	drivers := make(map[string]string)
	for _, inst := range nl.prims {
		for _, o := range inst.spec.Outputs {
			n := inst.path + "." + o
			r := nl.find(n)
			if isConstant(r) {
				return errors.New(n + ": output pin connected to constant " + r)
			}
			if d, ok := drivers[r]; ok {
				return errors.New(n + ": net already driven by " + d)
			}
			drivers[r] = n
		}
	}
	return nil
}
