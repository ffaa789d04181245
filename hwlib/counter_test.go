package hwlib_test

import (
	"testing"

	hw "github.com/db47h/hwbench"
	hl "github.com/db47h/hwbench/hwlib"
	"github.com/db47h/hwbench/hwtest"
)

// counter4 is a behavioral model of a 4 bits counter.
type counter4 struct {
	Rst int    `hw:"in"`
	Out [4]int `hw:"out"`
	v   int64
}

func (m *counter4) Update(c *hw.Circuit) {
	if c.AtTick() {
		if c.Get(m.Rst) {
			m.v = 0
		} else {
			m.v = (m.v + 1) & 0xf
		}
	}
	hl.SetInt64(c, m.Out[:], m.v)
}

func TestCounterN(t *testing.T) {
	cnt4, err := hl.CounterN(4)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, testTPC, hw.MakePart((*counter4)(nil)).NewPart, cnt4)
}

func TestCounterN_sequence(t *testing.T) {
	cnt3, err := hl.CounterN(3)
	if err != nil {
		t.Fatal(err)
	}
	var rst bool
	var out int64
	c, err := hw.NewCircuit(0, testTPC,
		hl.Input(func() bool { return rst })("out=rst"),
		cnt3("rst=rst, out[0..2]=q[0..2]"),
		hl.OutputN(3, func(v int64) { out = v })("in[0..2]=q[0..2]"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	rst = true
	c.TickTock()
	c.TickTock()
	if out != 0 {
		t.Fatalf("expected 0 in reset, got %d", out)
	}
	// outputs are sampled right before the rising edge, so the count lags the
	// cycle number by one.
	rst = false
	for i := 1; i <= 10; i++ {
		c.TickTock()
		if want := int64((i - 1) & 7); out != want {
			t.Fatalf("cycle %d: expected %d, got %d", i, want, out)
		}
	}
}

func TestCounterN_width(t *testing.T) {
	if _, err := hl.CounterN(0); err == nil {
		t.Fatal("expected an error for a zero width counter")
	}
}
