// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

// decodeRLE expands PCX run-length encoded src into dst and returns the
// number of bytes written.
//
// A byte with both top bits set is a run marker: its low six bits are the
// run length and the following byte is the value to repeat. Any other byte
// is a literal. Runs are clamped to the space left in dst, so an encoded
// stream that claims more never writes past len(dst). Decoding stops when
// dst is full or src is exhausted; a marker with no value byte after it
// counts as exhausted.
func decodeRLE(dst, src []byte) int {
	s, d := 0, 0

	for d < len(dst) && s < len(src) {
		b := src[s]
		s++

		if !isRunMarker(b) {
			dst[d] = b
			d++
			continue
		}

		if s >= len(src) {
			break
		}
		value := src[s]
		s++

		count := runCount(b)
		if remaining := len(dst) - d; count > remaining {
			count = remaining
		}
		for i := 0; i < count; i++ {
			dst[d+i] = value
		}
		d += count
	}

	return d
}

// isRunMarker reports whether b has the top two bits set.
func isRunMarker(b byte) bool {
	return b&rleMarkerMask == rleMarkerMask
}

// runCount is the run length carried in the low six bits of a marker.
func runCount(b byte) int {
	return int(b & rleCountMask)
}

// maxRLEOutput is the most pixels n encoded bytes can expand to.
func maxRLEOutput(n int) int {
	if n <= 0 {
		return 0
	}
	return n/2*rleCountMask + n%2
}
