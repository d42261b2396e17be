// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"io"
	"math"
	"strings"

	"github.com/itchio/arkive/zip"
	"github.com/pkg/errors"
)

// zipReader reads ZIP containers (.pk3, .pk4).
type zipReader struct{}

func (zipReader) Description() string {
	return "ZIP-based Format (PK3/PK4)"
}

// List enumerates the container's members. Directory records (names ending
// in "/") are skipped, as are records whose size cannot be represented.
func (zipReader) List(path string) ([]Entry, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, ioError(err, "open %s", path)
	}
	defer zr.Close()

	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if f.UncompressedSize64 > math.MaxUint32 {
			continue
		}

		entries = append(entries, Entry{
			Name:   f.Name,
			Size:   uint32(f.UncompressedSize64),
			Format: FormatZip,
		})
	}

	return entries, nil
}

// ReadEntry opens the named member and reads exactly entry.Size bytes. The
// size comes from the directory listing, not from the member at read time.
func (zipReader) ReadEntry(path string, entry Entry) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, ioError(err, "open %s", path)
	}
	defer zr.Close()

	var member *zip.File
	for _, f := range zr.File {
		if f.Name == entry.Name {
			member = f
			break
		}
	}
	if member == nil {
		return nil, errors.Wrapf(ErrEntryNotFound, "%s in %s", entry.Name, path)
	}

	rc, err := member.Open()
	if err != nil {
		return nil, ioError(err, "open %s", entry.Name)
	}
	defer rc.Close()

	data := make([]byte, entry.Size)
	if _, err := io.ReadFull(rc, data); err != nil {
		return nil, ioError(err, "read %s", entry.Name)
	}

	return data, nil
}
