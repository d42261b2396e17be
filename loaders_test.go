// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestDecodeText(t *testing.T) {
	assert.Equal(t, "bind w +forward\n", DecodeText([]byte("bind w +forward\n")))
	assert.Equal(t, "naïve", DecodeText([]byte("naïve")))

	// 0xC9 0xCD 0xBB is a box-drawing corner and bar in code page 437
	assert.Equal(t, "╔═╗", DecodeText([]byte{0xC9, 0xCD, 0xBB}))
}

func TestDecodeRasterBMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 80, G: 80, B: 80, A: 255})
		}
	}
	src.SetRGBA(2, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	img, err := DecodeRaster(buf.Bytes(), "gfx/test.bmp")
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 2, img.Height)

	last := img.Pixels[(1*3+2)*4:]
	assert.Equal(t, []byte{200, 100, 50, 255}, last[:4])
}

func TestDecodeRasterGIF(t *testing.T) {
	pal := color.Palette{color.RGBA{A: 255}, color.RGBA{R: 255, A: 255}}
	src := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	src.SetColorIndex(1, 0, 1)

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, src, nil))

	img, err := DecodeRaster(buf.Bytes(), "gfx/anim.gif")
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pixels[4:8])
}

func TestDecodeRasterTGA(t *testing.T) {
	// Uncompressed 24-bit true color, 2x1, top-left origin, pixels in BGR
	header := []byte{
		0,             // id length
		0,             // no color map
		2,             // uncompressed true color
		0, 0, 0, 0, 0, // color map spec
		0, 0, 0, 0,    // origin
		2, 0,          // width
		1, 0,          // height
		24,            // bits per pixel
		0x20,          // top-left origin
	}
	data := append(header, 30, 20, 10, 60, 50, 40)

	img, err := DecodeRaster(data, "textures/base/wall.TGA")
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.Equal(t, []byte{10, 20, 30, 255, 40, 50, 60, 255}, img.Pixels)
}

func TestDecodeRasterPicksDecoderByExtension(t *testing.T) {
	png := encodePNG(t, 1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	img, err := DecodeRaster(png, "gfx/a.PNG")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 255}, img.Pixels)

	_, err = DecodeRaster(png, "gfx/a.xcf")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestDecodeRasterGarbage(t *testing.T) {
	for _, name := range []string{"junk.png", "junk.jpg", "junk.gif"} {
		_, err := DecodeRaster([]byte("definitely not an image"), name)
		assert.ErrorIs(t, err, ErrUnsupportedImage, name)
	}
}

func TestImageRGBAView(t *testing.T) {
	img := newImage(2, 2, "view")
	img.setPixel(3, 1, 2, 3, 4)

	rgba := img.RGBA()
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 4}, rgba.RGBAAt(1, 1))

	rgba.SetRGBA(0, 0, color.RGBA{R: 9})
	assert.Equal(t, byte(9), img.Pixels[0], "view shares the pixel buffer")
}
