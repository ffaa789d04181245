// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package video

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// A Frame is a captured frame of RGB444 pixels.
//
type Frame struct {
	*mat.Dense
}

// NewFrame returns a black frame.
func NewFrame(rows, cols int) Frame {
	return Frame{mat.NewDense(rows, cols, nil)}
}

// Set sets the pixel at (row, col).
func (f Frame) Set(row, col int, pix int64) { f.Dense.Set(row, col, float64(pix)) }

// Pixel returns the pixel at (row, col).
func (f Frame) Pixel(row, col int) int64 { return int64(f.At(row, col)) }

// RGBA converts a RGB444 pixel to 8 bits per channel.
//
func RGBA(pix int64) color.RGBA {
	return color.RGBA{
		R: uint8(pix>>8&0xf) * 17,
		G: uint8(pix>>4&0xf) * 17,
		B: uint8(pix&0xf) * 17,
		A: 0xff,
	}
}

// Image returns the frame as an image.
func (f Frame) Image() *image.RGBA {
	rows, cols := f.Dims()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			img.SetRGBA(c, r, RGBA(f.Pixel(r, c)))
		}
	}
	return img
}

// WritePNG writes the frame as a PNG image.
func (f Frame) WritePNG(w io.Writer) error {
	return errors.Wrap(png.Encode(w, f.Image()), "failed to encode frame")
}

// WriteNPY writes the frame as a rows x cols float64 numpy array.
func (f Frame) WriteNPY(w io.Writer) error {
	return errors.Wrap(npyio.Write(w, f.Dense), "failed to write frame")
}
