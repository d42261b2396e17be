// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"io"

	"github.com/pkg/errors"
)

// WALInfo describes a WAL texture without decoding its pixels.
type WALInfo struct {
	Name     string
	AnimName string
	Width    int
	Height   int
	Flags    uint32
	Contents uint32
	Value    uint32

	// MipOffsets are byte offsets of the four mip levels, relative to the
	// start of the entry. Level n is (Width>>n) x (Height>>n).
	MipOffsets [walMipLevels]uint32
}

// ReadWALInfo parses the WAL header at the start of data.
func ReadWALInfo(data []byte) (WALInfo, error) {
	h, err := readWALHeader(data)
	if err != nil {
		return WALInfo{}, ioError(err, "read WAL header")
	}

	return WALInfo{
		Name:       cString(h.Name[:]),
		AnimName:   cString(h.AnimName[:]),
		Width:      int(h.Width),
		Height:     int(h.Height),
		Flags:      h.Flags,
		Contents:   h.Contents,
		Value:      h.Value,
		MipOffsets: h.MipOffsets,
	}, nil
}

// DecodeWAL decodes the full-resolution mip level of a WAL texture,
// resolving indices through pal. Index 255 is transparent and always
// decodes to (0,0,0,0); it is never looked up in the palette.
func DecodeWAL(data []byte, name string, pal *Palette) (*Image, error) {
	if pal == nil {
		return nil, errors.Wrapf(ErrPaletteUnavailable, "decode %s", name)
	}

	h, err := readWALHeader(data)
	if err != nil {
		return nil, ioError(err, "read WAL header of %s", name)
	}

	if h.Width == 0 || h.Height == 0 {
		return nil, errors.Wrapf(ErrUnsupportedImage, "%s: %dx%d texture", name, h.Width, h.Height)
	}

	// Offsets are relative to the entry, and data starts at the entry
	start := uint64(h.MipOffsets[0])
	end := start + uint64(h.Width)*uint64(h.Height)
	if end > uint64(len(data)) {
		return nil, ioError(io.ErrUnexpectedEOF, "%s: mip 0 spans %d-%d of %d bytes", name, start, end, len(data))
	}

	img := newImage(int(h.Width), int(h.Height), name)

	for i, index := range data[start:end] {
		if index == walTransparent {
			img.setPixel(i, 0, 0, 0, 0)
			continue
		}
		c := pal[index]
		img.setPixel(i, c[0], c[1], c[2], 255)
	}

	return img, nil
}
