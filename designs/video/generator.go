// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package video is a video timing generator and its testbenches.
//
// The generator scans a frame one pixel per clock cycle. It outputs the data
// enable signal, the sync pulses and a 12 bits RGB444 test pattern: a white
// border around a black active area.
//
//	Inputs: rst_i
//	Outputs: de_o, hsync_o, vsync_o, pix_o[12]
//
package video

import (
	hw "github.com/db47h/hwbench"
	"github.com/db47h/hwbench/bench"
	"github.com/db47h/hwbench/hwlib"
)

// Design is the design name.
const Design = "video"

// Pixel values of the test pattern.
const (
	Border   = 0xfff
	Interior = 0x000
)

// generator is the video timing generator part. Its position registers are
// updated on rising edges; outputs are decoded from the registers.
type generator struct {
	Rst   int     `hw:"in,rst_i"`
	DE    int     `hw:"out,de_o"`
	HSync int     `hw:"out,hsync_o"`
	VSync int     `hw:"out,vsync_o"`
	Pix   [12]int `hw:"out,pix_o"`

	t        Timing
	col, row int
}

func (g *generator) Update(c *hw.Circuit) {
	if c.AtTick() {
		if c.Get(g.Rst) {
			g.col, g.row = 0, 0
		} else if g.col++; g.col == g.t.H.Total() {
			g.col = 0
			if g.row++; g.row == g.t.V.Total() {
				g.row = 0
			}
		}
	}
	de := g.col < g.t.H.Active && g.row < g.t.V.Active
	c.Set(g.DE, de)
	c.Set(g.HSync, g.t.H.inSync(g.col) != g.t.HSyncNeg)
	c.Set(g.VSync, g.t.V.inSync(g.row) != g.t.VSyncNeg)
	var pix int64
	if de {
		pix = PixelAt(&g.t, g.row, g.col)
	}
	hwlib.SetInt64(c, g.Pix[:], pix)
}

// PixelAt returns the test pattern value at the given active area position.
//
func PixelAt(t *Timing, row, col int) int64 {
	if row == 0 || col == 0 || row == t.V.Active-1 || col == t.H.Active-1 {
		return Border
	}
	return Interior
}

// New returns a generator part for the given timing.
//
func New(t Timing) hw.NewPartFn {
	return hw.MakePart(&generator{t: t}).NewPart
}

// Ports returns the ports of the design.
func Ports() []bench.Port {
	return []bench.Port{
		bench.In("rst_i"),
		bench.Out("de_o"),
		bench.Out("hsync_o"),
		bench.Out("vsync_o"),
		bench.OutBus("pix_o", 12),
	}
}
