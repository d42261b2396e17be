// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"bytes"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
	"golang.org/x/text/encoding/charmap"
)

// DecodeText returns data as a string. Valid UTF-8 is kept as is; anything
// else is read as code page 437, which is what DOS-era configs used.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.CodePage437.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

type rasterDecoder func(r io.Reader) (image.Image, error)

// rasterDecoders picks a decoder by extension. TGA has no magic number and
// registers itself with image.Decode as matching anything, so format
// sniffing cannot be trusted once it is linked in.
var rasterDecoders = map[string]rasterDecoder{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// DecodeRaster decodes a PNG, JPEG, GIF, BMP, TIFF, WebP or TGA image into
// an RGBA Image. The format is chosen by the extension of name.
func DecodeRaster(data []byte, name string) (*Image, error) {
	ext := strings.ToLower(path.Ext(name))
	decode, ok := rasterDecoders[ext]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedImage, "%s: no decoder for %q", name, ext)
	}

	src, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(&causedBy{kind: ErrUnsupportedImage, cause: err}, "decode %s", name)
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, errors.Wrapf(ErrUnsupportedImage, "%s: empty %s image", name, ext)
	}

	img := newImage(b.Dx(), b.Dy(), name)
	draw.Draw(img.RGBA(), img.RGBA().Bounds(), src, b.Min, draw.Src)

	return img, nil
}
