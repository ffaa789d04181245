package hdl_test

import (
	"testing"

	"github.com/db47h/hwbench/internal/hdl"
)

func TestParser_Next(t *testing.T) {
	p := hdl.Parser{Input: "a=b, out[0..3]=bus[4..7], sel[2] = x"}
	var got []interface{}
	for {
		it, err := p.Next(true)
		if err != nil {
			t.Fatal(err)
		}
		if it == nil {
			break
		}
		got = append(got, it)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 assignments, got %d: %v", len(got), got)
	}
	r, ok := got[1].(hdl.PinAssignment)
	if !ok {
		t.Fatalf("expected a PinAssignment, got %T", got[1])
	}
	lhs := r.LHS.(hdl.PinRange)
	rhs := r.RHS.(hdl.PinRange)
	if lhs.Name != "out" || lhs.Start != 0 || lhs.End != 3 {
		t.Errorf("bad lhs %+v", lhs)
	}
	if rhs.Name != "bus" || rhs.Start != 4 || rhs.End != 7 {
		t.Errorf("bad rhs %+v", rhs)
	}
	idx := got[2].(hdl.PinAssignment).LHS.(hdl.PinIndex)
	if idx.Name != "sel" || idx.Index != 2 {
		t.Errorf("bad index %+v", idx)
	}
}

func TestParser_errors(t *testing.T) {
	data := []struct {
		in    string
		conns bool
		err   string
	}{
		{"a=b", false, `in "a=b" at pos 2: unexpected '='`},
		{"a[", false, `in "a[" at pos 3: integer value expected after '['`},
		{"a[1..]", true, `in "a[1..]" at pos 6: integer value expected after '..'`},
		{"a[1", true, `in "a[1" at pos 4: closing ']' expected after index or range`},
		{"a,", true, `in "a," at pos 3: expected pin name`},
		{"a=$", true, `in "a=$" at pos 3: expected pin name`},
		{"bus[99999999999999999999]", false, `in "bus[99999999999999999999]" at pos 5: integer value out of range`},
		{"a[0..9223372036854775808]=b", true, `in "a[0..9223372036854775808]=b" at pos 6: integer value out of range`},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			p := hdl.Parser{Input: d.in}
			var err error
			for {
				var it interface{}
				it, err = p.Next(d.conns)
				if err != nil || it == nil {
					break
				}
			}
			if err == nil || err.Error() != d.err {
				t.Errorf("got error %v, expected %q", err, d.err)
			}
		})
	}
}

func TestLexer(t *testing.T) {
	l := hdl.NewLexer(" cnt_q[12] ..=")
	want := []hdl.Type{hdl.Ident, hdl.BracketOpen, hdl.Int, hdl.BracketClose, hdl.Range, hdl.Equal, hdl.EOF, hdl.EOF}
	for i, w := range want {
		if it := l.Lex(); it.Type != w {
			t.Fatalf("token %d: expected %v, got %v", i, w, it)
		}
	}
}

func TestLexer_intOverflow(t *testing.T) {
	l := hdl.NewLexer("99999999999999999999 2147483647")
	if it := l.Lex(); it.Type != hdl.Int || it.Value.(int) != -1 {
		t.Errorf("expected an out of range integer, got %v", it)
	}
	if it := l.Lex(); it.Type != hdl.Int || it.Value.(int) != 2147483647 {
		t.Errorf("expected 2147483647, got %v", it)
	}
}
