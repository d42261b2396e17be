// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"path"
	"strings"
)

// Kind is what an entry holds, judged by its extension.
type Kind int

const (
	KindOther Kind = iota
	KindPCX
	KindWAL
	KindImage // PNG, JPEG, GIF, BMP, TIFF, WebP, TGA
	KindText
	KindBinary
)

var kindNames = map[Kind]string{
	KindOther:  "other",
	KindPCX:    "pcx",
	KindWAL:    "wal",
	KindImage:  "image",
	KindText:   "text",
	KindBinary: "binary",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "other"
}

// IsImage reports whether entries of this kind decode to an Image.
func (k Kind) IsImage() bool {
	return k == KindPCX || k == KindWAL || k == KindImage
}

// Viewable reports whether a viewer can show entries of this kind.
func (k Kind) Viewable() bool {
	return k != KindOther
}

var kindByExt = map[string]Kind{
	".pcx": KindPCX,
	".wal": KindWAL,

	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".gif":  KindImage,
	".bmp":  KindImage,
	".tif":  KindImage,
	".tiff": KindImage,
	".webp": KindImage,
	".tga":  KindImage,

	".cfg":    KindText,
	".txt":    KindText,
	".script": KindText,
	".ent":    KindText,
	".def":    KindText,
	".qc":     KindText,
	".log":    KindText,
	".ini":    KindText,
	".shader": KindText,
	".mtr":    KindText,
	".skin":   KindText,
	".lst":    KindText,
	".menu":   KindText,
	".gui":    KindText,
	".guide":  KindText,
	".md":     KindText,
	".json":   KindText,
	".xml":    KindText,
	".vp":     KindText,
	".fp":     KindText,
	".glsl":   KindText,

	".dat": KindBinary,
}

// KindOf classifies an entry name by its extension, ignoring case.
func KindOf(name string) Kind {
	return kindByExt[strings.ToLower(path.Ext(name))]
}
