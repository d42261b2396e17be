// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// ColormapEntry is the archive entry the shared texture palette comes from.
const ColormapEntry = "pics/colormap.pcx"

// Palette is 256 RGB triples.
type Palette [256][3]byte

// Color returns entry i as an opaque color.
func (p *Palette) Color(i uint8) color.RGBA {
	c := p[i]
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// PaletteSource is anything a palette can be loaded from: a directory to
// scan and a way to read one entry.
type PaletteSource interface {
	Entries() ([]Entry, error)
	ReadEntry(entry Entry) ([]byte, error)
}

// PaletteCache holds the palette used to resolve WAL textures.
//
// It is filled on first use from whichever source is passed to Ensure and
// never changes afterwards, even if later calls pass a different archive.
// Concurrent first calls share a single load. A failed load stores nothing.
type PaletteCache struct {
	// EntryName overrides ColormapEntry when set. Must not change after
	// the first call to Ensure.
	EntryName string

	mu      sync.RWMutex
	palette *Palette

	group       singleflight.Group
	populations int32
}

// NewPaletteCache returns an empty cache that loads from ColormapEntry.
func NewPaletteCache() *PaletteCache {
	return &PaletteCache{EntryName: ColormapEntry}
}

// Ensure returns the cached palette, loading it from src if the cache is
// still empty.
func (c *PaletteCache) Ensure(src PaletteSource) (*Palette, error) {
	if p := c.Palette(); p != nil {
		return p, nil
	}

	v, err, _ := c.group.Do("palette", func() (interface{}, error) {
		// Another caller may have finished between the check above and Do
		if p := c.Palette(); p != nil {
			return p, nil
		}

		atomic.AddInt32(&c.populations, 1)
		p, err := loadPalette(src, c.entryName())
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.palette = p
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Palette), nil
}

// Palette returns the cached palette, or nil if none has been loaded.
func (c *PaletteCache) Palette() *Palette {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.palette
}

// Populations reports how many times the cache scanned a source.
func (c *PaletteCache) Populations() int {
	return int(atomic.LoadInt32(&c.populations))
}

func (c *PaletteCache) entryName() string {
	if c.EntryName == "" {
		return ColormapEntry
	}
	return c.EntryName
}

// loadPalette finds name in src, decodes it as a PCX, and takes the RGB of
// its first 256 pixels.
func loadPalette(src PaletteSource, name string) (*Palette, error) {
	entries, err := src.Entries()
	if err != nil {
		return nil, paletteError(err, "list entries")
	}

	entry, ok := findEntry(entries, name)
	if !ok {
		return nil, errors.Wrapf(ErrPaletteUnavailable, "%s not found", name)
	}

	data, err := src.ReadEntry(entry)
	if err != nil {
		return nil, paletteError(err, "read %s", name)
	}

	img, err := DecodePCX(data, name)
	if err != nil {
		return nil, paletteError(err, "decode %s", name)
	}

	if img.Width*img.Height < len(Palette{}) {
		return nil, errors.Wrapf(ErrPaletteUnavailable, "%s has only %d pixels", name, img.Width*img.Height)
	}

	p := &Palette{}
	for i := range p {
		copy(p[i][:], img.Pixels[i*4:i*4+3])
	}

	return p, nil
}

// paletteError reports err as ErrPaletteUnavailable while keeping its
// original kind reachable through errors.Is.
func paletteError(err error, format string, args ...interface{}) error {
	return errors.Wrapf(&causedBy{kind: ErrPaletteUnavailable, cause: err}, format, args...)
}

// findEntry returns the first entry whose name equals name exactly.
func findEntry(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
