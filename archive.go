// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"path/filepath"

	"github.com/pkg/errors"
)

// Archive is an opened archive: its path, format and directory.
//
// No file handle is held between calls. Each read opens the file again and
// closes it before returning.
type Archive struct {
	path    string
	format  Format
	reader  Reader
	entries []Entry
	byName  map[string]int
}

// OpenArchive classifies path by extension and reads its directory.
func OpenArchive(path string) (*Archive, error) {
	format := FormatFromExtension(filepath.Ext(path))
	return OpenArchiveFormat(path, format)
}

// OpenArchiveFormat reads the directory of path as the given format,
// ignoring its extension.
func OpenArchiveFormat(path string, format Format) (*Archive, error) {
	reader, err := ReaderFor(format)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	entries, err := reader.List(path)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int, len(entries))
	for i, e := range entries {
		// First occurrence wins for duplicated zip names
		if _, exists := byName[e.Name]; !exists {
			byName[e.Name] = i
		}
	}

	return &Archive{
		path:    path,
		format:  format,
		reader:  reader,
		entries: entries,
		byName:  byName,
	}, nil
}

// Path returns the file the archive was opened from.
func (a *Archive) Path() string { return a.path }

// Format returns the archive's container format.
func (a *Archive) Format() Format { return a.format }

// Description names the container format.
func (a *Archive) Description() string { return a.reader.Description() }

// Entries returns a copy of the directory in stored order.
func (a *Archive) Entries() ([]Entry, error) {
	entries := make([]Entry, len(a.entries))
	copy(entries, a.entries)
	return entries, nil
}

// Len returns the number of entries.
func (a *Archive) Len() int { return len(a.entries) }

// Find looks up an entry by its exact stored name.
func (a *Archive) Find(name string) (Entry, bool) {
	i, ok := a.byName[name]
	if !ok {
		return Entry{}, false
	}
	return a.entries[i], true
}

// HasFile reports whether the archive contains name.
func (a *Archive) HasFile(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// ReadEntry returns the bytes of entry.
func (a *Archive) ReadEntry(entry Entry) ([]byte, error) {
	return a.reader.ReadEntry(a.path, entry)
}

// ReadFile returns the bytes of the entry called name.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	entry, ok := a.Find(name)
	if !ok {
		return nil, errors.Wrapf(ErrEntryNotFound, "%s in %s", name, a.path)
	}
	return a.ReadEntry(entry)
}
