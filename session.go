// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"context"
	"sync"

	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is how many entries DecodeAll decodes at once by default.
const DefaultWorkers = 4

// Session is what a viewer holds on to: the archive currently open and
// the palette shared by every WAL texture decoded through it.
//
// Opening another archive keeps the palette that is already loaded.
type Session struct {
	consumer *state.Consumer
	palettes *PaletteCache
	workers  int

	mu      sync.RWMutex
	archive *Archive
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithConsumer sends the session's log messages to consumer.
func WithConsumer(consumer *state.Consumer) SessionOption {
	return func(s *Session) {
		if consumer != nil {
			s.consumer = consumer
		}
	}
}

// WithPaletteCache shares cache with the session instead of a private one.
func WithPaletteCache(cache *PaletteCache) SessionOption {
	return func(s *Session) {
		if cache != nil {
			s.palettes = cache
		}
	}
}

// WithWorkers bounds the parallelism of DecodeAll.
func WithWorkers(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewSession returns a session with no archive open.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		consumer: &state.Consumer{},
		palettes: NewPaletteCache(),
		workers:  DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open reads the directory of the archive at path and makes it current.
// On failure the previously open archive stays current.
func (s *Session) Open(path string) (*Archive, error) {
	a, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}

	s.consumer.Debugf("Opened %s (%s, %d entries)", path, a.Description(), a.Len())

	s.mu.Lock()
	s.archive = a
	s.mu.Unlock()
	return a, nil
}

// Archive returns the current archive, or nil.
func (s *Session) Archive() *Archive {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.archive
}

// Palettes returns the session's palette cache.
func (s *Session) Palettes() *PaletteCache {
	return s.palettes
}

func (s *Session) current() (*Archive, error) {
	a := s.Archive()
	if a == nil {
		return nil, errors.Wrap(ErrIO, "no archive open")
	}
	return a, nil
}

// Decode reads entry from the current archive and decodes it according to
// its kind. WAL textures load the shared palette first if it is not
// cached yet.
func (s *Session) Decode(entry Entry) (*Image, error) {
	a, err := s.current()
	if err != nil {
		return nil, err
	}

	kind := KindOf(entry.Name)
	if !kind.IsImage() {
		return nil, errors.Wrapf(ErrNotAnImage, "%s is %s", entry.Name, kind)
	}

	var pal *Palette
	if kind == KindWAL {
		if pal, err = s.ensurePalette(a); err != nil {
			return nil, errors.Wrapf(err, "decode %s", entry.Name)
		}
	}

	data, err := a.ReadEntry(entry)
	if err != nil {
		return nil, err
	}

	var img *Image
	switch kind {
	case KindPCX:
		img, err = DecodePCX(data, entry.Name)
	case KindWAL:
		img, err = DecodeWAL(data, entry.Name, pal)
	default:
		img, err = DecodeRaster(data, entry.Name)
	}
	if err != nil {
		return nil, err
	}

	for _, w := range img.Warnings {
		s.consumer.Warnf("%v", w)
	}
	return img, nil
}

// DecodeFile decodes the entry called name in the current archive.
func (s *Session) DecodeFile(name string) (*Image, error) {
	a, err := s.current()
	if err != nil {
		return nil, err
	}
	entry, ok := a.Find(name)
	if !ok {
		return nil, errors.Wrapf(ErrEntryNotFound, "%s in %s", name, a.Path())
	}
	return s.Decode(entry)
}

// DecodeAll decodes entries with bounded parallelism. Entries that fail
// are logged and left out; the others are returned in input order.
// Scheduling stops when ctx is done.
func (s *Session) DecodeAll(ctx context.Context, entries []Entry) ([]*Image, error) {
	results := make([]*Image, len(entries))

	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		i, entry := i, entry
		g.Go(func() error {
			img, err := s.Decode(entry)
			if err != nil {
				s.consumer.Warnf("Skipping %s: %v", entry.Name, err)
				return nil
			}
			results[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make([]*Image, 0, len(results))
	for _, img := range results {
		if img != nil {
			images = append(images, img)
		}
	}

	return images, ctx.Err()
}

// Text returns the entry decoded as text.
func (s *Session) Text(entry Entry) (string, error) {
	data, err := s.Bytes(entry)
	if err != nil {
		return "", err
	}
	return DecodeText(data), nil
}

// Bytes returns the raw bytes of entry from the current archive.
func (s *Session) Bytes(entry Entry) ([]byte, error) {
	a, err := s.current()
	if err != nil {
		return nil, err
	}
	return a.ReadEntry(entry)
}

func (s *Session) ensurePalette(a *Archive) (*Palette, error) {
	if p := s.palettes.Palette(); p != nil {
		return p, nil
	}

	s.consumer.Debugf("Loading texture palette from %s", a.Path())
	p, err := s.palettes.Ensure(a)
	if err != nil {
		s.consumer.Warnf("Texture palette unavailable: %v", err)
		return nil, err
	}
	return p, nil
}
