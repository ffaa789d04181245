package hwlib_test

import (
	"testing"

	hw "github.com/db47h/hwbench"
	hl "github.com/db47h/hwbench/hwlib"
	"github.com/db47h/hwbench/hwtest"
)

func TestMuxN(t *testing.T) {
	m, err := hw.Chip("myMux4", "a[4], b[4], sel", "out[4]",
		hl.Mux("a=a[0], b=b[0], sel=sel, out=out[0]"),
		hl.Mux("a=a[1], b=b[1], sel=sel, out=out[1]"),
		hl.Mux("a=a[2], b=b[2], sel=sel, out=out[2]"),
		hl.Mux("a=a[3], b=b[3], sel=sel, out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}

	hwtest.ComparePart(t, testTPC, hl.MuxN(4), m)
}

func TestNotN(t *testing.T) {
	not4, err := hw.Chip("myNot4", "in[4]", "out[4]",
		hl.Not("in=in[0], out=out[0]"),
		hl.Not("in=in[1], out=out[1]"),
		hl.Not("in=in[2], out=out[2]"),
		hl.Not("in=in[3], out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}

	hwtest.ComparePart(t, testTPC, hl.NotN(4), not4)
}
