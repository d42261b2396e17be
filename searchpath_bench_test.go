// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"fmt"
	"testing"
)

// openBenchSearchPath layers archives holding the same fileCount names.
func openBenchSearchPath(b *testing.B, archives, fileCount int) *SearchPath {
	var paths []string
	for i := 0; i < archives; i++ {
		var files []fixtureFile
		for j := 0; j < fileCount; j++ {
			files = append(files, fixtureFile{
				name: fmt.Sprintf("textures/e%du%d/file_%03d.wal", i%3+1, j%4, j),
				data: []byte(fmt.Sprintf("content %d %d", i, j)),
			})
		}
		paths = append(paths, writePak(b, fmt.Sprintf("pak%d.pak", i), files))
	}

	sp, err := OpenSearchPath(paths)
	if err != nil {
		b.Fatal(err)
	}
	return sp
}

// BenchmarkSearchPathLookup benchmarks name lookups through the map
func BenchmarkSearchPathLookup(b *testing.B) {
	sp := openBenchSearchPath(b, 5, 200)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sp.HasFile("textures/e1u0/file_000.wal")
		sp.HasFile("TEXTURES\\E2U1\\FILE_101.WAL")
		sp.HasFile("textures/e3u3/file_199.wal")
		sp.HasFile("textures/missing.wal")
	}
}

// BenchmarkSearchPathList benchmarks building the de-duplicated listing
func BenchmarkSearchPathList(b *testing.B) {
	sp := openBenchSearchPath(b, 5, 200)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sp.List()
	}
}

// BenchmarkSearchPathRead benchmarks reading the winning copy of a file
func BenchmarkSearchPathRead(b *testing.B) {
	sp := openBenchSearchPath(b, 3, 50)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := sp.ReadFile("textures/e1u0/file_000.wal"); err != nil {
			b.Fatal(err)
		}
	}
}
