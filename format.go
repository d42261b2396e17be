// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// On-disk format constants
const (
	// Flat archive
	packMagic        = "PACK"
	packHeaderSize   = 12 // signature + dir offset + dir length
	packNameSize     = 56
	packDirEntrySize = 64 // name + offset + size

	// PCX image
	pcxMagic          = 0x0A
	pcxEncodingRLE    = 0x01
	pcxBitsPerPixel8  = 8
	pcxHeaderSize     = 128
	pcxEGAPaletteSize = 48
	pcxPaletteMarker  = 0x0C
	pcxPaletteSize    = 768 // 256 RGB triples

	// RLE marker bits in a PCX byte stream
	rleMarkerMask = 0xC0 // 1100 0000
	rleCountMask  = 0x3F // 0011 1111

	// WAL texture
	walNameSize    = 32
	walMipLevels   = 4
	walHeaderSize  = 100
	walTransparent = 255 // index reserved for see-through texels
)

// packHeader is the 12-byte flat archive header.
type packHeader struct {
	Magic     [4]byte // "PACK"
	DirOffset uint32  // Offset of the directory from the start of the file
	DirLength uint32  // Size of the directory in bytes
}

// packDirEntry is one 64-byte directory record.
type packDirEntry struct {
	Name   [packNameSize]byte // NUL-padded
	Offset uint32
	Size   uint32
}

// pcxHeader is the 128-byte PCX header.
type pcxHeader struct {
	Magic        uint8 // 0x0A
	Version      uint8 // 5 for PCX 3.0
	Encoding     uint8 // 1 = RLE
	BitsPerPixel uint8 // per plane
	XMin         uint16
	YMin         uint16
	XMax         uint16
	YMax         uint16
	HRes         uint16
	VRes         uint16
	EGAPalette   [pcxEGAPaletteSize]byte // 16-color palette, unused
	Reserved     uint8
	ColorPlanes  uint8
	BytesPerLine uint16
	Filler       [60]byte // pads the header to 128 bytes
}

// dimensions converts the bounding box into a width and height. The box is
// inclusive on both ends.
func (h *pcxHeader) dimensions() (width, height int) {
	width = int(h.XMax) - int(h.XMin) + 1
	height = int(h.YMax) - int(h.YMin) + 1
	return width, height
}

// walHeader is the 100-byte WAL header.
type walHeader struct {
	Name       [walNameSize]byte
	Width      uint32
	Height     uint32
	MipOffsets [walMipLevels]uint32 // relative to the start of the entry
	AnimName   [walNameSize]byte    // next frame in the animation chain
	Flags      uint32
	Contents   uint32
	Value      uint32
}

// readPackHeader reads the flat archive header from a reader. The signature
// is read and checked on its own first, so a foreign file is reported as
// ErrInvalidSignature even when it is shorter than a header.
func readPackHeader(r io.Reader) (*packHeader, error) {
	h := &packHeader{}

	n, err := io.ReadFull(r, h.Magic[:])
	if got := string(h.Magic[:n]); got != packMagic[:n] {
		return nil, errors.Wrapf(ErrInvalidSignature, "got %q", got)
	}
	if err != nil {
		return nil, err
	}

	if err := binary.Read(r, binary.LittleEndian, &h.DirOffset); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &h.DirLength); err != nil {
		return nil, err
	}
	return h, nil
}

// readPackDirectory reads count directory records
func readPackDirectory(r io.Reader, count int) ([]packDirEntry, error) {
	records := make([]packDirEntry, count)
	if err := binary.Read(r, binary.LittleEndian, records); err != nil {
		return nil, err
	}
	return records, nil
}

// readPCXHeader reads the PCX header from the start of data
func readPCXHeader(data []byte) (*pcxHeader, error) {
	h := &pcxHeader{}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return h, nil
}

// readWALHeader reads the WAL header from the start of data
func readWALHeader(data []byte) (*walHeader, error) {
	h := &walHeader{}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return h, nil
}

// cString returns the bytes of b up to the first NUL.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
