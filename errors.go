// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import "github.com/pkg/errors"

// Failure kinds. Every error returned by this package wraps exactly one of
// these, so callers branch with errors.Is.
var (
	// ErrIO covers missing or unreadable files and short reads.
	ErrIO = errors.New("pak: i/o error")

	// ErrInvalidSignature means a flat archive did not start with "PACK".
	ErrInvalidSignature = errors.New("pak: invalid signature")

	// ErrUnknownFormat is returned when asked to operate on an archive
	// whose extension is not recognized.
	ErrUnknownFormat = errors.New("pak: unknown archive format")

	// ErrEntryNotFound means the named entry is not in the archive.
	// It is also reported as an ErrIO.
	ErrEntryNotFound = &wrappedKind{msg: "pak: entry not found", parent: ErrIO}

	// ErrPaletteUnavailable means the colormap entry is missing or could
	// not be decoded, so indexed textures cannot be resolved.
	ErrPaletteUnavailable = errors.New("pak: palette unavailable")

	// ErrUnsupportedImage is returned for image variants that are rejected
	// rather than decoded (non-RLE or non-256-color PCX, empty textures).
	ErrUnsupportedImage = errors.New("pak: unsupported image")

	// ErrNotAnImage is returned when an entry's kind has no image decoder.
	ErrNotAnImage = errors.New("pak: entry is not an image")
)

// Warnings. These never fail a decode; they are attached to Image.Warnings.
var (
	// ErrUnsupportedPaletteMarker means the byte before the trailing
	// palette was not 0x0C and the image was resolved through an all-zero
	// palette.
	ErrUnsupportedPaletteMarker = errors.New("pak: trailing palette marker missing")

	// ErrDecodeTruncated means the compressed stream ran out before the
	// image was complete; the remaining pixels are index 0.
	ErrDecodeTruncated = errors.New("pak: compressed stream truncated")
)

// wrappedKind is a sentinel that also matches a broader sentinel.
type wrappedKind struct {
	msg    string
	parent error
}

func (w *wrappedKind) Error() string { return w.msg }

func (w *wrappedKind) Unwrap() error { return w.parent }

// ioError wraps a low-level failure under ErrIO, keeping the cause's text.
func ioError(err error, format string, args ...interface{}) error {
	return errors.Wrapf(&causedBy{kind: ErrIO, cause: err}, format, args...)
}

// causedBy reports kind to errors.Is while printing the underlying cause.
type causedBy struct {
	kind  error
	cause error
}

func (c *causedBy) Error() string {
	if c.cause == nil {
		return c.kind.Error()
	}
	return c.cause.Error()
}

func (c *causedBy) Is(target error) bool { return target == c.kind }

func (c *causedBy) Unwrap() error { return c.cause }
