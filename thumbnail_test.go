// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnailSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{64, 64, 128, 64, 64},
		{256, 128, 128, 128, 64},
		{128, 256, 64, 32, 64},
		{1000, 1, 100, 100, 1},
		{1, 1000, 100, 1, 100},
		{320, 200, 0, 320, 200},
	}

	for _, tt := range tests {
		w, h := thumbnailSize(tt.w, tt.h, tt.max)
		assert.Equal(t, tt.wantW, w, "%dx%d in %d", tt.w, tt.h, tt.max)
		assert.Equal(t, tt.wantH, h, "%dx%d in %d", tt.w, tt.h, tt.max)
	}
}

func TestThumbnail(t *testing.T) {
	img := newImage(4, 2, "wide")
	for i := 0; i < 8; i++ {
		if i%4 < 2 {
			img.setPixel(i, 255, 0, 0, 255)
		} else {
			img.setPixel(i, 0, 0, 255, 255)
		}
	}

	thumb := Thumbnail(img, 2)
	assert.Equal(t, 2, thumb.Width)
	assert.Equal(t, 1, thumb.Height)
	assert.Equal(t, "wide", thumb.Name)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, thumb.Pixels)

	same := Thumbnail(img, 16)
	assert.Equal(t, img.Pixels, same.Pixels)
	same.Pixels[0] = 1
	assert.Equal(t, byte(255), img.Pixels[0], "thumbnail is a copy")
}
