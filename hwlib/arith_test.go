package hwlib_test

import (
	"testing"

	hw "github.com/db47h/hwbench"
	hl "github.com/db47h/hwbench/hwlib"
	"github.com/db47h/hwbench/hwtest"
)

func TestFullAdder(t *testing.T) {
	fa, err := hw.Chip("myFullAdder", "a, b, cin", "s, cout",
		hl.HalfAdder("a=a, b=b, s=s0, c=c0"),
		hl.HalfAdder("a=s0, b=cin, s=s, c=c1"),
		hl.Or("a=c0, b=c1, out=cout"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, testTPC, hl.FullAdder, fa)
}

func TestAdderN(t *testing.T) {
	adder4, err := hw.Chip("myAdder4", "a[4], b[4]", "out[4], c",
		hl.HalfAdder("a=a[0], b=b[0], s=out[0], c=c0"),
		hl.FullAdder("a=a[1], b=b[1], cin=c0, s=out[1], cout=c1"),
		hl.FullAdder("a=a[2], b=b[2], cin=c1, s=out[2], cout=c2"),
		hl.FullAdder("a=a[3], b=b[3], cin=c2, s=out[3], cout=c"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, testTPC, hl.AdderN(4), adder4)
}
