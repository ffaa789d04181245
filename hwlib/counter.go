// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	hw "github.com/db47h/hwbench"
	"github.com/pkg/errors"
)

// CounterN returns a N-bits binary counter with synchronous reset.
//
//	Inputs: rst
//	Outputs: out[bits]
//	Function: if rst { out(t) = 0 } else { out(t) = out(t-1) + 1 }
//
// The counter wraps around to 0 after 2^bits-1.
//
func CounterN(bits int) (hw.NewPartFn, error) {
	if bits <= 0 {
		return nil, errors.Errorf("invalid counter width %d", bits)
	}
	r := "[0.." + strconv.Itoa(bits-1) + "]"
	return hw.Chip("Counter"+strconv.Itoa(bits), pRst, "out["+strconv.Itoa(bits)+"]",
		AdderN(bits)("a"+r+"=out"+r+", b[0]=true, out"+r+"=inc"+r),
		MuxN(bits)("a"+r+"=inc"+r+", b"+r+"=false, sel=rst, out"+r+"=next"+r),
		DFFN(bits)("in"+r+"=next"+r+", out"+r+"=out"+r),
	)
}
