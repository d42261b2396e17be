// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// packReader reads flat "PACK" archives.
type packReader struct{}

func (packReader) Description() string {
	return "Quake/Quake 2 PAK Format"
}

// List reads the header and directory of a flat archive.
//
// The record count is DirLength/64. A trailing partial record is ignored.
func (packReader) List(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ioError(err, "open %s", path)
	}
	defer file.Close()

	// Read and validate header
	header, err := readPackHeader(file)
	if errors.Is(err, ErrInvalidSignature) {
		return nil, errors.Wrap(err, path)
	}
	if err != nil {
		return nil, ioError(err, "read header of %s", path)
	}

	stat, err := file.Stat()
	if err != nil {
		return nil, ioError(err, "stat %s", path)
	}

	// Refuse a directory that runs past the end of the file before
	// allocating room for it
	count := int(header.DirLength / packDirEntrySize)
	dirEnd := int64(header.DirOffset) + int64(count)*packDirEntrySize
	if dirEnd > stat.Size() {
		return nil, ioError(io.ErrUnexpectedEOF, "directory of %s ends at %d, file is %d bytes", path, dirEnd, stat.Size())
	}

	if _, err := file.Seek(int64(header.DirOffset), io.SeekStart); err != nil {
		return nil, ioError(err, "seek to directory of %s", path)
	}

	records, err := readPackDirectory(file, count)
	if err != nil {
		return nil, ioError(err, "read directory of %s", path)
	}

	entries := make([]Entry, len(records))
	for i, rec := range records {
		entries[i] = Entry{
			Name:   cString(rec.Name[:]),
			Offset: rec.Offset,
			Size:   rec.Size,
			Format: FormatPack,
		}
	}

	return entries, nil
}

// ReadEntry reads entry.Size bytes starting at entry.Offset.
func (packReader) ReadEntry(path string, entry Entry) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ioError(err, "open %s", path)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, ioError(err, "stat %s", path)
	}

	if end := int64(entry.Offset) + int64(entry.Size); end > stat.Size() {
		return nil, ioError(io.ErrUnexpectedEOF, "%s ends at %d, file is %d bytes", entry.Name, end, stat.Size())
	}

	if _, err := file.Seek(int64(entry.Offset), io.SeekStart); err != nil {
		return nil, ioError(err, "seek to %s", entry.Name)
	}

	data := make([]byte, entry.Size)
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, ioError(err, "read %s", entry.Name)
	}

	return data, nil
}
