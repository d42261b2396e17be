// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"image"

	"github.com/pkg/errors"
)

// Image is a decoded picture in 8-bit RGBA, row-major with no padding.
// The caller owns it; decoders keep no reference after returning.
type Image struct {
	Width  int
	Height int

	// Pixels holds Width*Height*4 bytes: R, G, B, A per pixel.
	Pixels []byte

	// Name is the archive entry the image was decoded from.
	Name string

	// Warnings lists non-fatal problems met while decoding, such as
	// ErrUnsupportedPaletteMarker or ErrDecodeTruncated.
	Warnings []error
}

func newImage(width, height int, name string) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*4),
		Name:   name,
	}
}

// HasWarning reports whether any warning matches target.
func (img *Image) HasWarning(target error) bool {
	for _, w := range img.Warnings {
		if errors.Is(w, target) {
			return true
		}
	}
	return false
}

func (img *Image) warn(err error) {
	img.Warnings = append(img.Warnings, err)
}

// RGBA returns a view of the image as an *image.RGBA sharing the same
// pixel buffer.
func (img *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pixels,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// setPixel stores one RGBA pixel at linear index i.
func (img *Image) setPixel(i int, r, g, b, a byte) {
	p := img.Pixels[i*4 : i*4+4 : i*4+4]
	p[0] = r
	p[1] = g
	p[2] = b
	p[3] = a
}
