package hwlib_test

import (
	"testing"

	hw "github.com/db47h/hwbench"
	hl "github.com/db47h/hwbench/hwlib"
	"github.com/db47h/hwbench/hwtest"
)

func TestDFF(t *testing.T) {
	var in, out int64

	dff4, err := hw.Chip("DFF4", "in[4]", "out[4]",
		hl.DFF("in=in[0], out=out[0]"),
		hl.DFF("in=in[1], out=out[1]"),
		hl.DFF("in=in[2], out=out[2]"),
		hl.DFF("in=in[3], out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}

	c, err := hw.NewCircuit(0, testTPC,
		hl.InputN(4, func() int64 { return in })("out[0..3]=in[0..3]"),
		dff4("in[0..3]=in[0..3], out[0..3]=out[0..3]"),
		hl.OutputN(4, func(o int64) { out = o })("in[0..3]=out[0..3]"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	var prev int64
	for i := int64(15); i >= 0; i-- {
		in = i
		c.TickTock()
		if out != prev {
			t.Fatalf("bad output for input %d: expected out = %d, got %d", i, prev, out)
		}
		prev = i
	}

	hwtest.ComparePart(t, testTPC, hl.DFFN(4), dff4)
}

// bitReg is a behavioral 1 bit register with load enable.
type bitReg struct {
	In   int `hw:"in"`
	Load int `hw:"in"`
	Out  int `hw:"out"`
	v    bool
}

func (r *bitReg) Update(c *hw.Circuit) {
	if c.AtTick() && c.Get(r.Load) {
		r.v = c.Get(r.In)
	}
	c.Set(r.Out, r.v)
}

func Test_bit_register(t *testing.T) {
	reg, err := hw.Chip("BitReg", "in, load", "out",
		hl.Mux("a=out, b=in, sel=load, out=muxOut"),
		hl.DFF("in=muxOut, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, testTPC, hw.MakePart((*bitReg)(nil)).NewPart, reg)
}
