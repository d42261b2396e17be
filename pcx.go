// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"github.com/pkg/errors"
)

// DecodePCX decodes an 8-bit, single-plane, run-length encoded PCX image.
//
// Pixel indices are resolved through the 256-color palette stored at the
// end of data. When the marker byte in front of that palette is not 0x0C
// the image is resolved through an all-zero palette and carries the
// ErrUnsupportedPaletteMarker warning. Every pixel is opaque.
func DecodePCX(data []byte, name string) (*Image, error) {
	header, err := readPCXHeader(data)
	if err != nil {
		return nil, ioError(err, "read PCX header of %s", name)
	}

	if err := checkPCXHeader(header); err != nil {
		return nil, errors.Wrap(err, name)
	}

	width, height := header.dimensions()
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrUnsupportedImage, "%s: bounding box %d,%d-%d,%d",
			name, header.XMin, header.YMin, header.XMax, header.YMax)
	}

	// Every two source bytes expand to at most one full run, so a box larger
	// than that is a corrupt header and must not be allocated
	payload := len(data) - pcxHeaderSize
	if maxPixels := maxRLEOutput(payload); width*height > maxPixels {
		return nil, errors.Wrapf(ErrUnsupportedImage, "%s: %dx%d image from %d payload bytes",
			name, width, height, payload)
	}

	img := newImage(width, height, name)

	indices := make([]byte, width*height)
	if n := decodeRLE(indices, data[pcxHeaderSize:]); n < len(indices) {
		img.warn(errors.Wrapf(ErrDecodeTruncated, "%s: %d of %d pixels", name, n, len(indices)))
	}

	palette, ok := trailingPalette(data)
	if !ok {
		img.warn(errors.Wrap(ErrUnsupportedPaletteMarker, name))
	}

	for i, index := range indices {
		c := palette[index]
		img.setPixel(i, c[0], c[1], c[2], 255)
	}

	return img, nil
}

// checkPCXHeader rejects the PCX variants this package does not decode.
func checkPCXHeader(h *pcxHeader) error {
	switch {
	case h.Magic != pcxMagic:
		return errors.Wrapf(ErrUnsupportedImage, "bad PCX magic 0x%02X", h.Magic)
	case h.Encoding != pcxEncodingRLE:
		return errors.Wrapf(ErrUnsupportedImage, "PCX encoding %d", h.Encoding)
	case h.BitsPerPixel != pcxBitsPerPixel8:
		return errors.Wrapf(ErrUnsupportedImage, "PCX with %d bits per pixel", h.BitsPerPixel)
	case h.ColorPlanes != 1:
		return errors.Wrapf(ErrUnsupportedImage, "PCX with %d color planes", h.ColorPlanes)
	}
	return nil
}

// trailingPalette returns the 256-color palette that follows the 0x0C
// marker at len(data)-769. It returns a zero palette and false when the
// marker is missing.
func trailingPalette(data []byte) (*Palette, bool) {
	palette := &Palette{}

	markerPos := len(data) - pcxPaletteSize - 1
	if markerPos < 0 || data[markerPos] != pcxPaletteMarker {
		return palette, false
	}

	raw := data[markerPos+1:]
	for i := range palette {
		copy(palette[i][:], raw[i*3:i*3+3])
	}

	return palette, true
}
