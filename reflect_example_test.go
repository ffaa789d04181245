package hwbench_test

import (
	"fmt"

	hw "github.com/db47h/hwbench"
	hl "github.com/db47h/hwbench/hwlib"
)

// mux4Impl is a custom 4 bits mux.
//
type mux4Impl struct {
	A   [4]int `hw:"in"`     // input bus "a"
	B   [4]int `hw:"in"`     // input bus "b"
	S   int    `hw:"in,sel"` // single pin, the second tag value forces the pin name to "sel"
	Out [4]int `hw:"out"`    // output bus "out"
}

// Update implements Updater.
//
func (m *mux4Impl) Update(c *hw.Circuit) {
	if c.Get(m.S) {
		hl.SetInt64(c, m.Out[:], hl.Int64(c, m.B[:]))
	} else {
		hl.SetInt64(c, m.Out[:], hl.Int64(c, m.A[:]))
	}
}

// no need to import reflect, just cast a nil pointer to mux4Impl
var m4Spec = hw.MakePart((*mux4Impl)(nil))

// Mux4 wraps m4Spec into a function so that it can be used like the parts in
// hwlib.
func Mux4(c string) hw.Part { return m4Spec.NewPart(c) }

// MakePart example with a custom Mux4
func ExampleMakePart() {
	var a, b, out int64
	var sel bool
	c, err := hw.NewCircuit(0, 8,
		// IOs to test the circuit
		hl.InputN(4, func() int64 { return a })("out[0..3]=in_a[0..3]"),
		hl.InputN(4, func() int64 { return b })("out[0..3]=in_b[0..3]"),
		hl.Input(func() bool { return sel })("out=in_sel"),
		// our custom Mux4
		Mux4("a[0..3]=in_a[0..3], b[0..3]=in_b[0..3], sel=in_sel, out[0..3]=mux_out[0..3]"),
		// IOs continued...
		hl.OutputN(4, func(v int64) { out = v })("in[0..3]=mux_out[0..3]"),
	)
	if err != nil {
		panic(err)
	}
	defer c.Dispose()

	a, b, sel = 1, 15, false
	c.TickTock()
	fmt.Printf("a=%d, b=%d, sel=%v => out=%d\n", a, b, sel, out)
	sel = true
	c.TickTock()
	fmt.Printf("a=%d, b=%d, sel=%v => out=%d\n", a, b, sel, out)

	// Output:
	// a=1, b=15, sel=false => out=1
	// a=1, b=15, sel=true => out=15
}
