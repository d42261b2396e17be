// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"strings"

	"github.com/pkg/errors"
)

// Format identifies an archive container format.
type Format int

const (
	// FormatUnknown is any extension this package cannot open.
	FormatUnknown Format = iota

	// FormatPack is the flat "PACK" archive used by Quake and Quake II (.pak).
	FormatPack

	// FormatZip is a ZIP container renamed for id Tech 3/4 games (.pk3, .pk4).
	FormatZip
)

func (f Format) String() string {
	switch f {
	case FormatPack:
		return "pack"
	case FormatZip:
		return "zip"
	default:
		return "unknown"
	}
}

// Entry is one file stored in an archive.
type Entry struct {
	// Name is the path as stored in the archive, with forward slashes.
	Name string

	// Offset is where the entry's bytes start inside a flat archive.
	// It is always zero for zip containers.
	Offset uint32

	// Size is the uncompressed size of the entry in bytes.
	Size uint32

	// Format is the container format the entry was listed from.
	Format Format
}

// Reader lists and reads entries for one container format.
type Reader interface {
	// List returns the archive's directory in stored order.
	List(path string) ([]Entry, error)

	// ReadEntry returns exactly entry.Size bytes of the entry.
	ReadEntry(path string, entry Entry) ([]byte, error)

	// Description is a human readable name for the format.
	Description() string
}

var (
	packFormatReader Reader = packReader{}
	zipFormatReader  Reader = zipReader{}
)

// FormatFromExtension classifies an archive by its file extension,
// including the leading dot. Matching ignores case.
func FormatFromExtension(ext string) Format {
	switch strings.ToLower(ext) {
	case ".pak":
		return FormatPack
	case ".pk3", ".pk4":
		return FormatZip
	default:
		return FormatUnknown
	}
}

// ReaderFor returns the reader implementing format.
func ReaderFor(format Format) (Reader, error) {
	switch format {
	case FormatPack:
		return packFormatReader, nil
	case FormatZip:
		return zipFormatReader, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "format %d", int(format))
	}
}

// List returns the directory of the archive at path.
func List(format Format, path string) ([]Entry, error) {
	r, err := ReaderFor(format)
	if err != nil {
		return nil, err
	}
	return r.List(path)
}

// ReadEntry returns the bytes of entry from the archive at path.
// On failure the returned slice is nil.
func ReadEntry(format Format, path string, entry Entry) ([]byte, error) {
	r, err := ReaderFor(format)
	if err != nil {
		return nil, err
	}
	return r.ReadEntry(path, entry)
}
