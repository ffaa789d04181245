package hwbench_test

import (
	"testing"

	hw "github.com/db47h/hwbench"
	hl "github.com/db47h/hwbench/hwlib"
	"github.com/db47h/hwbench/hwtest"
)

type testPart struct {
	A   [4]int `hw:"in"`
	B   [4]int `hw:"in"`
	Sel int    `hw:"in"`
	Out [4]int `hw:"out"`
}

func (p *testPart) Update(c *hw.Circuit) {
	src := p.A
	if c.Get(p.Sel) {
		src = p.B
	}
	for i, o := range p.Out {
		c.Set(o, c.Get(src[i]))
	}
}

func Test_MakePart(t *testing.T) {
	m, err := hw.Chip("myMux4", "a[4], b[4], sel", "out[4]",
		hl.Mux("a=a[0], b=b[0], sel=sel, out=out[0]"),
		hl.Mux("a=a[1], b=b[1], sel=sel, out=out[1]"),
		hl.Mux("a=a[2], b=b[2], sel=sel, out=out[2]"),
		hl.Mux("a=a[3], b=b[3], sel=sel, out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}

	p := hw.MakePart((*testPart)(nil)).NewPart
	hwtest.ComparePart(t, testTPC, m, p)
}

// constant outputs a fixed value set through a non-pin field.
type constant struct {
	Out   [8]int `hw:"out,value"`
	Value int64
}

func (k *constant) Update(c *hw.Circuit) {
	hl.SetInt64(c, k.Out[:], k.Value)
}

func Test_MakePart_parameters(t *testing.T) {
	var x, y int64
	c, err := hw.NewCircuit(0, testTPC,
		hw.MakePart(&constant{Value: 42}).NewPart("value[0..7]=x[0..7]"),
		hw.MakePart(&constant{Value: 0x81}).NewPart("value[0..7]=y[0..7]"),
		hl.OutputN(8, func(v int64) { x = v })("in[0..7]=x[0..7]"),
		hl.OutputN(8, func(v int64) { y = v })("in[0..7]=y[0..7]"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	c.TickTock()
	if x != 42 || y != 0x81 {
		t.Fatalf("expected x = 42, y = 129, got x = %d, y = %d", x, y)
	}
}

type badPin struct {
	in int `hw:"in"`
}

func (*badPin) Update(*hw.Circuit) {}

type badType struct {
	In string `hw:"in"`
}

func (*badType) Update(*hw.Circuit) {}

type badTag struct {
	In int `hw:"inout"`
}

func (*badTag) Update(*hw.Circuit) {}

func Test_MakePart_panics(t *testing.T) {
	td := []struct {
		name string
		u    hw.Updater
	}{
		{"unexported", (*badPin)(nil)},
		{"type", (*badType)(nil)},
		{"tag", (*badTag)(nil)},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("MakePart did not panic")
				}
			}()
			hw.MakePart(d.u)
		})
	}
}
