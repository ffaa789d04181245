// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package video

import (
	"io"

	"github.com/db47h/hwbench/bench"
	"github.com/pkg/errors"
)

// Params holds the design and testbench parameters.
//
type Params struct {
	Timing `toml:"timing"`
}

// DefaultParams returns the default parameters.
func DefaultParams() Params {
	return Params{Timing: VGA640x480}
}

// Validate checks the parameters.
func (p *Params) Validate() error {
	return p.Timing.Validate()
}

// Tests returns the video testbenches for the given parameters.
//
func Tests(p Params) ([]bench.Test, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	dut := New(p.Timing)
	return []bench.Test{
		{Name: "video_frame", Design: Design, DUT: dut, Ports: Ports(), Run: func(b *bench.Bench) error {
			_, err := CheckFrame(b, &p.Timing)
			return err
		}},
		{Name: "video_timing", Design: Design, DUT: dut, Ports: Ports(), Run: func(b *bench.Bench) error {
			return CheckTiming(b, &p.Timing)
		}},
	}, nil
}

// CheckFrame resets the generator and walks the first active frame, checking
// every pixel against the test pattern. The captured frame is returned and
// saved as frame.png and frame.npy artifacts.
//
func CheckFrame(b *bench.Bench, t *Timing) (Frame, error) {
	rows, cols := t.V.Active, t.H.Active
	frame := NewFrame(rows, cols)
	if err := b.Reset("rst_i", 4); err != nil {
		return frame, err
	}

	limit := b.Cycle() + t.FrameCycles()
	row, col := 0, 0
	for {
		de, err := b.Get("de_o")
		if err != nil {
			return frame, err
		}
		if de != 0 {
			pix, err := b.Get("pix_o")
			if err != nil {
				return frame, err
			}
			frame.Set(row, col, pix)
			if err = b.Expect("pix_o", PixelAt(t, row, col), "pixel at row %d, col %d", row, col); err != nil {
				return frame, err
			}
			if col == cols-1 {
				if row == rows-1 {
					break
				}
				row++
				col = 0
			} else {
				col++
			}
		}
		if b.Cycle() >= limit {
			return frame, errors.Errorf("%s: frame incomplete after %d cycles: stopped at row %d, col %d", b.Name(), t.FrameCycles(), row, col)
		}
		if err = b.RisingEdge(); err != nil {
			return frame, err
		}
	}
	b.Log().Info().Int("rows", rows).Int("cols", cols).Msg("frame captured")

	if err := saveArtifact(b, "frame.png", frame.WritePNG); err != nil {
		return frame, err
	}
	return frame, saveArtifact(b, "frame.npy", frame.WriteNPY)
}

func saveArtifact(b *bench.Bench, name string, write func(io.Writer) error) error {
	w, err := b.CreateArtifact(name)
	if err != nil || w == nil {
		return err
	}
	if err = write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// edges records the cycles where a signal becomes active and inactive.
type edges struct {
	active     int64
	prev       bool
	rise, fall []int
}

func (e *edges) sample(cycle int, v int64) {
	on := v == e.active
	switch {
	case on && !e.prev:
		e.rise = append(e.rise, cycle)
	case !on && e.prev:
		e.fall = append(e.fall, cycle)
	}
	e.prev = on
}

func activeLevel(neg bool) int64 {
	if neg {
		return 0
	}
	return 1
}

// CheckTiming resets the generator and runs it for a bit more than a frame.
// It checks the position, width and period of the sync pulses and the number
// of active pixels in the frame.
//
func CheckTiming(b *bench.Bench, t *Timing) error {
	if err := b.Reset("rst_i", 4); err != nil {
		return err
	}
	r := b.Cycle()
	ht, ft := t.H.Total(), t.FrameCycles()
	hs := edges{active: activeLevel(t.HSyncNeg)}
	vs := edges{active: activeLevel(t.VSyncNeg)}
	pixels := 0
	for i := 0; i <= ft+ht; i++ {
		if i > 0 {
			if err := b.RisingEdge(); err != nil {
				return err
			}
		}
		h, err := b.Get("hsync_o")
		if err != nil {
			return err
		}
		v, err := b.Get("vsync_o")
		if err != nil {
			return err
		}
		de, err := b.Get("de_o")
		if err != nil {
			return err
		}
		if i == 0 && (h == hs.active || v == vs.active) {
			return errors.Errorf("%s: sync pulse active at position (0, 0)", b.Name())
		}
		hs.sample(b.Cycle(), h)
		vs.sample(b.Cycle(), v)
		if i < ft && de != 0 {
			pixels++
		}
	}

	switch {
	case len(hs.rise) < 2 || len(hs.fall) < 1:
		return errors.Errorf("%s: hsync: %d pulses in a frame", b.Name(), len(hs.rise))
	case hs.rise[0] != r+t.H.Active+t.H.FrontPorch:
		return errors.Errorf("%s: hsync: starts at cycle %d, want %d", b.Name(), hs.rise[0]-r, t.H.Active+t.H.FrontPorch)
	case hs.fall[0]-hs.rise[0] != t.H.Sync:
		return errors.Errorf("%s: hsync: width %d, want %d", b.Name(), hs.fall[0]-hs.rise[0], t.H.Sync)
	case hs.rise[1]-hs.rise[0] != ht:
		return errors.Errorf("%s: hsync: period %d, want %d", b.Name(), hs.rise[1]-hs.rise[0], ht)
	case len(vs.rise) < 1 || len(vs.fall) < 1:
		return errors.Errorf("%s: vsync: no pulse in a frame", b.Name())
	case vs.rise[0] != r+(t.V.Active+t.V.FrontPorch)*ht:
		return errors.Errorf("%s: vsync: starts at line %d, want %d", b.Name(), (vs.rise[0]-r)/ht, t.V.Active+t.V.FrontPorch)
	case vs.fall[0]-vs.rise[0] != t.V.Sync*ht:
		return errors.Errorf("%s: vsync: width %d cycles, want %d", b.Name(), vs.fall[0]-vs.rise[0], t.V.Sync*ht)
	case pixels != t.H.Active*t.V.Active:
		return errors.Errorf("%s: %d active pixels in a frame, want %d", b.Name(), pixels, t.H.Active*t.V.Active)
	}
	return nil
}
