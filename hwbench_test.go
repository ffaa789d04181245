package hwbench_test

import (
	"testing"

	hw "github.com/db47h/hwbench"
	hl "github.com/db47h/hwbench/hwlib"
	"github.com/pkg/errors"
)

const testTPC = 16

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func Test_gate_custom(t *testing.T) {
	and, err := hw.Chip("AND", "a, b", "out",
		hl.Nand("a=a, b=b, out=nand"),
		hl.Nand("a=nand, b=nand, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	xor, err := hw.Chip("XOR", "a, b", "out",
		hl.Nand("a=a, b=b, out=nandAB"),
		hl.Nand("a=a, b=nandAB, out=w0"),
		hl.Nand("a=b, b=nandAB, out=w1"),
		hl.Nand("a=w0, b=w1, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	xnor, err := hw.Chip("XNOR", "a, b", "out",
		xor("a=a, b=b, out=xorAB"),
		hl.Not("in=xorAB, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}

	td := []struct {
		name string
		gate hw.NewPartFn
		f    func(a, b bool) bool
	}{
		{"AND", and, func(a, b bool) bool { return a && b }},
		{"XOR", xor, func(a, b bool) bool { return a != b }},
		{"XNOR", xnor, func(a, b bool) bool { return a == b }},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			var a, b, out bool
			c, err := hw.NewCircuit(0, testTPC,
				hl.Input(func() bool { return a })("out=a"),
				hl.Input(func() bool { return b })("out=b"),
				d.gate("a=a, b=b, out=out"),
				hl.Output(func(v bool) { out = v })("in=out"),
			)
			if err != nil {
				trace(t, err)
				t.Fatal(err)
			}
			defer c.Dispose()
			for i := 0; i < 4; i++ {
				a, b = i&2 != 0, i&1 != 0
				c.TickTock()
				if want := d.f(a, b); out != want {
					t.Errorf("%s(%v, %v) = %v, got %v", d.name, a, b, want, out)
				}
			}
		})
	}
}

type clkState struct {
	clk, tick, tock bool
}

func TestCircuit_clock(t *testing.T) {
	var states []clkState
	probe := (&hw.PartSpec{
		Name:   "probe",
		Inputs: hw.IO("clk"),
		Mount: func(s *hw.Socket) []hw.Component {
			clk := s.Pin("clk")
			return []hw.Component{func(c *hw.Circuit) {
				states = append(states, clkState{c.Get(clk), c.AtTick(), c.AtTock()})
			}}
		},
	}).NewPart
	c, err := hw.NewCircuit(1, 3, probe("clk=clk"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	if c.SPC() != 4 {
		t.Fatalf("expected 4 steps per cycle, got %d", c.SPC())
	}
	for i := 0; i < 10; i++ {
		c.Step()
	}
	exp := []clkState{
		{false, false, false},
		{false, false, false},
		{false, false, true},
		{false, false, false},
		{true, true, false},
		{true, false, false},
		{false, false, true},
		{false, false, false},
		{true, true, false},
		{true, false, false},
	}
	if len(states) != len(exp) {
		t.Fatalf("expected %d states, got %d", len(exp), len(states))
	}
	for i := range exp {
		if states[i] != exp[i] {
			t.Errorf("step %d: expected %+v, got %+v", i, exp[i], states[i])
		}
	}

	// Tick and Tock stop on clock edges.
	c.Tock()
	if c.Steps() != 12 {
		t.Errorf("Tock: expected step 12, got %d", c.Steps())
	}
	c.Tick()
	if c.Steps() != 14 {
		t.Errorf("Tick: expected step 14, got %d", c.Steps())
	}
	c.TickTock()
	if c.Steps() != 16 {
		t.Errorf("TickTock: expected step 16, got %d", c.Steps())
	}
}

func TestNewCircuit_errors(t *testing.T) {
	if _, err := hw.NewCircuit(0, testTPC); err == nil {
		t.Error("expected an error for an empty part list")
	}
	_, err := hw.NewCircuit(0, testTPC,
		hl.Not("in=a, out=b"),
		hl.Not("in=b, out=b"),
	)
	if err == nil {
		t.Error("expected an error for a wire driven twice")
	}
	c, err := hw.NewCircuit(0, 0, hl.Not("in=true"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	if c.SPC() != 2 {
		t.Errorf("expected the minimum of 2 steps per cycle, got %d", c.SPC())
	}
}

type tripwire struct {
	In int `hw:"in"`
}

func (w *tripwire) Update(c *hw.Circuit) {
	if c.AtTick() && c.Get(w.In) {
		panic("tripped")
	}
}

func TestCircuit_panic(t *testing.T) {
	on := false
	c, err := hw.NewCircuit(4, testTPC,
		hl.Input(func() bool { return on })("out=x"),
		hw.MakePart(&tripwire{}).NewPart("in=x"),
		hl.Not("in=x, out=y"),
		hl.Output(func(bool) {})("in=y"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	c.TickTock()

	on = true
	var r interface{}
	func() {
		defer func() { r = recover() }()
		// the rising edge that samples x is the first step of the second cycle.
		c.TickTock()
		c.TickTock()
	}()
	if r != "tripped" {
		t.Fatalf("expected panic value %q, got %v", "tripped", r)
	}
}
