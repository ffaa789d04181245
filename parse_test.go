package hwbench_test

import (
	"testing"

	hw "github.com/db47h/hwbench"
	"github.com/google/go-cmp/cmp"
)

func TestParseIOSpec(t *testing.T) {
	td := []struct {
		in   string
		want []string
		err  bool
	}{
		{"", nil, false},
		{"a, b, bus[2]", []string{"a", "b", "bus[0]", "bus[1]"}, false},
		{"in[2], sel", []string{"in[0]", "in[1]", "sel"}, false},
		{"a[0]", nil, true},
		{"a[0..3]", nil, true},
		{"a=b", nil, true},
		{"bus[99999999999999999999]", nil, true},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			got, err := hw.ParseIOSpec(d.in)
			if d.err {
				if err == nil {
					t.Fatalf("expected an error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.want, got); diff != "" {
				t.Errorf("ParseIOSpec(%q) mismatch (-want +got):\n%s", d.in, diff)
			}
		})
	}
}

func TestParseConnections(t *testing.T) {
	td := []struct {
		in   string
		want []hw.Connection
		err  bool
	}{
		{"a=x, b=y", []hw.Connection{{PP: "a", CP: []string{"x"}}, {PP: "b", CP: []string{"y"}}}, false},
		{"out[0..1]=w[1..0]", []hw.Connection{
			{PP: "out[0]", CP: []string{"w[1]"}},
			{PP: "out[1]", CP: []string{"w[0]"}},
		}, false},
		{"out=w[0..1], out=led_o", []hw.Connection{
			{PP: "out", CP: []string{"w[0]", "w[1]", "led_o"}},
		}, false},
		{"b[0..2]=false", []hw.Connection{
			{PP: "b[0]", CP: []string{"false"}},
			{PP: "b[1]", CP: []string{"false"}},
			{PP: "b[2]", CP: []string{"false"}},
		}, false},
		{"a[2]=x[3]", []hw.Connection{{PP: "a[2]", CP: []string{"x[3]"}}}, false},
		{"a[0..1]=x[0..2]", nil, true},
		{"a, b=c", nil, true},
		{"a=", nil, true},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			got, err := hw.ParseConnections(d.in)
			if d.err {
				if err == nil {
					t.Fatalf("expected an error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.want, got); diff != "" {
				t.Errorf("ParseConnections(%q) mismatch (-want +got):\n%s", d.in, diff)
			}
		})
	}
}
