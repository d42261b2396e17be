// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"strings"

	"github.com/pkg/errors"
)

// normalizeName folds an entry name for lookups across archives.
// Archives built on Windows may use backslashes or mixed case.
func normalizeName(name string) string {
	normalized := strings.ReplaceAll(name, "\\", "/")
	normalized = strings.ToLower(normalized)
	for strings.Contains(normalized, "//") {
		normalized = strings.ReplaceAll(normalized, "//", "/")
	}
	return normalized
}

// SearchPath layers several archives by priority, the way the engine
// mounts pak0.pak, pak1.pak, ... The last archive has the highest
// priority: a name it contains hides the same name in earlier archives.
//
// The lookup map is built once when the search path is created, after
// which a SearchPath is safe for concurrent reads.
type SearchPath struct {
	archives []*Archive
	fileMap  map[string]location // normalized name -> winning entry
}

// location points at one entry of one layered archive.
type location struct {
	archive int
	entry   int
}

// OpenSearchPath opens every archive in paths, lowest priority first.
func OpenSearchPath(paths []string) (*SearchPath, error) {
	archives := make([]*Archive, 0, len(paths))

	for _, path := range paths {
		archive, err := OpenArchive(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open search path member %s", path)
		}
		archives = append(archives, archive)
	}

	return NewSearchPath(archives...), nil
}

// NewSearchPath layers already opened archives, lowest priority first.
func NewSearchPath(archives ...*Archive) *SearchPath {
	p := &SearchPath{archives: archives}
	p.rebuildFileMap()
	return p
}

// Archives returns the layered archives, lowest priority first.
func (p *SearchPath) Archives() []*Archive {
	return p.archives
}

// Find returns the highest-priority archive holding name, and its entry.
func (p *SearchPath) Find(name string) (*Archive, Entry, bool) {
	loc, found := p.fileMap[normalizeName(name)]
	if !found {
		return nil, Entry{}, false
	}

	archive := p.archives[loc.archive]
	return archive, archive.entries[loc.entry], true
}

// HasFile reports whether any archive holds name.
func (p *SearchPath) HasFile(name string) bool {
	_, _, ok := p.Find(name)
	return ok
}

// ReadFile reads the highest-priority copy of name.
func (p *SearchPath) ReadFile(name string) ([]byte, error) {
	archive, entry, ok := p.Find(name)
	if !ok {
		return nil, errors.Wrapf(ErrEntryNotFound, "%s in search path", name)
	}
	return archive.ReadEntry(entry)
}

// List returns the union of all names, in first-seen order from the lowest
// priority archive up. Names differing only in case or slash style are
// listed once.
func (p *SearchPath) List() []string {
	seen := make(map[string]struct{})
	var result []string
	for _, archive := range p.archives {
		for _, e := range archive.entries {
			key := normalizeName(e.Name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, e.Name)
		}
	}
	return result
}

// Entries returns the winning entry for every name, in List order. It lets
// a SearchPath act as a PaletteSource.
func (p *SearchPath) Entries() ([]Entry, error) {
	names := p.List()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if _, e, ok := p.Find(name); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// ReadEntry reads entry from the archive that wins for its name.
func (p *SearchPath) ReadEntry(entry Entry) ([]byte, error) {
	archive, e, ok := p.Find(entry.Name)
	if !ok {
		return nil, errors.Wrapf(ErrEntryNotFound, "%s in search path", entry.Name)
	}
	return archive.ReadEntry(e)
}

// rebuildFileMap rebuilds the lookup map, highest priority first so that
// later archives take precedence.
func (p *SearchPath) rebuildFileMap() {
	p.fileMap = make(map[string]location)

	for i := len(p.archives) - 1; i >= 0; i-- {
		for j, e := range p.archives[i].entries {
			key := normalizeName(e.Name)
			if _, exists := p.fileMap[key]; !exists {
				p.fileMap[key] = location{archive: i, entry: j}
			}
		}
	}
}
