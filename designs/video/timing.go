// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package video

import (
	"github.com/pkg/errors"
)

// An Axis describes the timing of one scan direction, in pixels for the
// horizontal axis and in lines for the vertical one. The active area comes
// first, followed by the front porch, the sync pulse and the back porch.
//
type Axis struct {
	Active     int `toml:"active"`
	FrontPorch int `toml:"front_porch"`
	Sync       int `toml:"sync"`
	BackPorch  int `toml:"back_porch"`
}

// Total returns the axis length including blanking.
func (a Axis) Total() int { return a.Active + a.FrontPorch + a.Sync + a.BackPorch }

// inSync returns true if position i is within the sync pulse.
func (a Axis) inSync(i int) bool {
	s := a.Active + a.FrontPorch
	return i >= s && i < s+a.Sync
}

func (a Axis) validate(name string) error {
	if a.Active <= 0 || a.Sync <= 0 || a.FrontPorch < 0 || a.BackPorch < 0 {
		return errors.Errorf("video: invalid %s timing %+v", name, a)
	}
	return nil
}

// Timing is a video mode timing.
//
type Timing struct {
	H Axis `toml:"horizontal"`
	V Axis `toml:"vertical"`

	// Sync pulses are active low when true.
	HSyncNeg bool `toml:"hsync_negative"`
	VSyncNeg bool `toml:"vsync_negative"`
}

// VGA640x480 is the 640x480@60Hz industry standard timing.
//
var VGA640x480 = Timing{
	H:        Axis{Active: 640, FrontPorch: 16, Sync: 96, BackPorch: 48},
	V:        Axis{Active: 480, FrontPorch: 10, Sync: 2, BackPorch: 33},
	HSyncNeg: true,
	VSyncNeg: true,
}

// Validate checks the timing values.
func (t *Timing) Validate() error {
	if err := t.H.validate("horizontal"); err != nil {
		return err
	}
	return t.V.validate("vertical")
}

// FrameCycles returns the number of clock cycles in a frame.
func (t *Timing) FrameCycles() int { return t.H.Total() * t.V.Total() }
