// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	xdraw "golang.org/x/image/draw"
)

// Thumbnail returns a copy of img scaled so that neither side exceeds
// maxDim, keeping the aspect ratio. Images already small enough are copied
// unscaled. Nearest-neighbor sampling keeps palette art crisp.
func Thumbnail(img *Image, maxDim int) *Image {
	w, h := thumbnailSize(img.Width, img.Height, maxDim)

	thumb := newImage(w, h, img.Name)
	if w == img.Width && h == img.Height {
		copy(thumb.Pixels, img.Pixels)
		return thumb
	}

	dst := thumb.RGBA()
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img.RGBA(), img.RGBA().Bounds(), xdraw.Src, nil)
	return thumb
}

// thumbnailSize fits w x h inside maxDim x maxDim without upscaling.
func thumbnailSize(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}

	if w >= h {
		nh := h * maxDim / w
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}

	nw := w * maxDim / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}
