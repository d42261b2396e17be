// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/itchio/wharf/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suprsokr/go-pak"
)

// writeTestPak writes a flat archive holding files in the given order.
func writeTestPak(t *testing.T, files map[string][]byte, order []string) string {
	t.Helper()

	var body bytes.Buffer
	var dir bytes.Buffer
	offset := uint32(12)
	for _, name := range order {
		data := files[name]
		var rec [64]byte
		copy(rec[:56], name)
		binary.LittleEndian.PutUint32(rec[56:60], offset)
		binary.LittleEndian.PutUint32(rec[60:64], uint32(len(data)))
		dir.Write(rec[:])
		body.Write(data)
		offset += uint32(len(data))
	}

	var out bytes.Buffer
	out.WriteString("PACK")
	binary.Write(&out, binary.LittleEndian, offset)
	binary.Write(&out, binary.LittleEndian, uint32(dir.Len()))
	out.Write(body.Bytes())
	out.Write(dir.Bytes())

	path := filepath.Join(t.TempDir(), "test.pak")
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0644))
	return path
}

func testContext() (*Context, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Context{
		Config:   defaultConfig(),
		Consumer: &state.Consumer{},
		Out:      out,
	}, out
}

func TestCommands(t *testing.T) {
	path := writeTestPak(t, map[string][]byte{
		"autoexec.cfg":   []byte("exec server.cfg\n"),
		"maps/base1.bsp": make([]byte, 2048),
		"progs.dat":      {0xDE, 0xAD},
	}, []string{"autoexec.cfg", "maps/base1.bsp", "progs.dat"})

	t.Run("ls", func(t *testing.T) {
		ctx, out := testContext()
		require.NoError(t, doLs(ctx, path))
		assert.Contains(t, out.String(), "maps/base1.bsp")
		assert.Contains(t, out.String(), "2.0 KiB")
		assert.Contains(t, out.String(), "3 entries")
	})

	t.Run("tree", func(t *testing.T) {
		ctx, out := testContext()
		require.NoError(t, doTree(ctx, path, ""))
		assert.Contains(t, out.String(), "maps/\n  base1.bsp")
	})

	t.Run("tree filter", func(t *testing.T) {
		ctx, out := testContext()
		require.NoError(t, doTree(ctx, path, "BASE"))
		assert.Equal(t, "maps/base1.bsp\n", out.String())
	})

	t.Run("cat text", func(t *testing.T) {
		ctx, out := testContext()
		require.NoError(t, doCat(ctx, path, "autoexec.cfg", false))
		assert.Equal(t, "exec server.cfg\n", out.String())
	})

	t.Run("cat binary", func(t *testing.T) {
		ctx, out := testContext()
		require.NoError(t, doCat(ctx, path, "progs.dat", false))
		assert.Contains(t, out.String(), "de ad")
	})

	t.Run("cat missing", func(t *testing.T) {
		ctx, _ := testContext()
		assert.ErrorIs(t, doCat(ctx, path, "nope.cfg", false), pak.ErrEntryNotFound)
	})

	t.Run("info non-image", func(t *testing.T) {
		ctx, out := testContext()
		require.NoError(t, doInfo(ctx, path, "autoexec.cfg"))
		assert.Contains(t, out.String(), "autoexec.cfg: text")
	})

	t.Run("palette without colormap", func(t *testing.T) {
		ctx, _ := testContext()
		assert.ErrorIs(t, doPalette(ctx, []string{path}), pak.ErrPaletteUnavailable)
	})
}
