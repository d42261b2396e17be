// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

/*
Package pak reads id Software game archives and decodes the legacy images
stored in them.

Two containers are supported: the flat "PACK" archive used by Quake and
Quake II (.pak), and the ZIP containers used by later id Tech games (.pk3,
.pk4). Two legacy image formats are decoded to RGBA: 256-color run-length
encoded PCX images, and Quake II WAL textures, whose colors come from the
palette in pics/colormap.pcx. Common raster formats (PNG, JPEG, GIF, BMP,
TIFF, WebP, TGA) found inside containers decode to the same Image type.

Nothing is ever written: there is no archive creation and no image export.

# Basic Usage

Listing an archive:

	archive, err := pak.OpenArchive("baseq2/pak0.pak")
	if err != nil {
		log.Fatal(err)
	}

	entries, _ := archive.Entries()
	for _, e := range entries {
		fmt.Println(e.Name, e.Size)
	}

Decoding images through a session, which loads the WAL palette on first use:

	session := pak.NewSession()
	if _, err := session.Open("baseq2/pak0.pak"); err != nil {
		log.Fatal(err)
	}

	img, err := session.DecodeFile("textures/e1u1/floor1_1.wal")
	if err != nil {
		log.Fatal(err)
	}
	rgba := img.RGBA()

# Errors

Every failure wraps one of the sentinel errors (ErrIO, ErrInvalidSignature,
ErrPaletteUnavailable, ...) and can be tested with errors.Is. Problems that
do not stop a decode, such as a missing PCX palette marker or a truncated
pixel stream, are reported in Image.Warnings instead.

# Palette

WAL textures carry no palette of their own. A PaletteCache is filled once
from pics/colormap.pcx and then reused for the rest of its life, even when a
session opens a different archive. Sessions can share one cache with
WithPaletteCache.
*/
package pak
