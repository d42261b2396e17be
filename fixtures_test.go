// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// fixtureFile is one file to place in a test archive.
type fixtureFile struct {
	name string
	data []byte
}

// buildPak lays out a flat archive: header, file data in order, then the
// directory. The first file therefore starts at offset 12.
func buildPak(files []fixtureFile) []byte {
	var body bytes.Buffer
	records := make([]packDirEntry, len(files))

	offset := uint32(packHeaderSize)
	for i, f := range files {
		copy(records[i].Name[:], f.name)
		records[i].Offset = offset
		records[i].Size = uint32(len(f.data))
		body.Write(f.data)
		offset += uint32(len(f.data))
	}

	var out bytes.Buffer
	header := packHeader{
		DirOffset: offset,
		DirLength: uint32(len(records) * packDirEntrySize),
	}
	copy(header.Magic[:], packMagic)
	binary.Write(&out, binary.LittleEndian, &header)
	out.Write(body.Bytes())
	binary.Write(&out, binary.LittleEndian, records)
	return out.Bytes()
}

// writeFixture writes data to name inside a fresh temp dir.
func writeFixture(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func writePak(t testing.TB, name string, files []fixtureFile) string {
	t.Helper()
	return writeFixture(t, name, buildPak(files))
}

// writeZip writes a zip container with the standard library writer, so
// the reader under test never sees its own output. Names ending in "/"
// become directory records.
func writeZip(t testing.TB, name string, files []fixtureFile) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			t.Fatalf("create zip member %s: %v", f.name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			t.Fatalf("write zip member %s: %v", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return writeFixture(t, name, buf.Bytes())
}

// encodeRLE is a straightforward PCX run-length encoder.
func encodeRLE(indices []byte) []byte {
	var out []byte
	for i := 0; i < len(indices); {
		run := 1
		for i+run < len(indices) && indices[i+run] == indices[i] && run < rleCountMask {
			run++
		}
		b := indices[i]
		if run > 1 || isRunMarker(b) {
			out = append(out, rleMarkerMask|byte(run), b)
		} else {
			out = append(out, b)
		}
		i += run
	}
	return out
}

// buildPCX produces an 8-bit RLE PCX. A nil palette omits the trailing
// palette block entirely.
func buildPCX(width, height int, indices []byte, palette *Palette) []byte {
	header := pcxHeader{
		Magic:        pcxMagic,
		Version:      5,
		Encoding:     pcxEncodingRLE,
		BitsPerPixel: pcxBitsPerPixel8,
		XMax:         uint16(width - 1),
		YMax:         uint16(height - 1),
		HRes:         72,
		VRes:         72,
		ColorPlanes:  1,
		BytesPerLine: uint16(width),
	}
	return buildPCXWithHeader(header, encodeRLE(indices), palette)
}

func buildPCXWithHeader(header pcxHeader, payload []byte, palette *Palette) []byte {
	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, &header)
	out.Write(payload)
	if palette != nil {
		out.WriteByte(pcxPaletteMarker)
		for _, c := range palette {
			out.Write(c[:])
		}
	}
	return out.Bytes()
}

// testPalette has a distinct color for every index.
func testPalette() *Palette {
	p := &Palette{}
	for i := range p {
		p[i] = [3]byte{byte(i), byte(255 - i), byte(i / 2)}
	}
	return p
}

// buildColormap is a 16x16 PCX whose pixels are indices 0..255 in order,
// so its first 256 decoded pixels are exactly pal.
func buildColormap(pal *Palette) []byte {
	indices := make([]byte, 256)
	for i := range indices {
		indices[i] = byte(i)
	}
	return buildPCX(16, 16, indices, pal)
}

// buildWAL produces a WAL texture with mip 0 at the given offset and the
// smaller mips after it.
func buildWAL(name string, width, height int, indices []byte, mip0 uint32) []byte {
	header := walHeader{
		Width:  uint32(width),
		Height: uint32(height),
		Flags:  0x10,
		Value:  7,
	}
	copy(header.Name[:], name)
	copy(header.AnimName[:], name+"_2")

	header.MipOffsets[0] = mip0
	next := mip0 + uint32(width*height)
	for level := 1; level < walMipLevels; level++ {
		header.MipOffsets[level] = next
		next += uint32((width >> uint(level)) * (height >> uint(level)))
	}

	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, &header)
	for uint32(out.Len()) < mip0 {
		out.WriteByte(0)
	}
	out.Write(indices)
	for uint32(out.Len()) < next {
		out.WriteByte(0)
	}
	return out.Bytes()
}
