// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/itchio/wharf/state"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/suprsokr/go-pak"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

// Context is what every command runs with.
type Context struct {
	Config   *Config
	Consumer *state.Consumer
	Out      io.Writer
}

// Must exits the process if err is non-nil.
func (ctx *Context) Must(err error) {
	if err != nil {
		if ctx.Config != nil && ctx.Config.Verbose {
			fmt.Fprintf(os.Stderr, "pakview: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "pakview: %v\n", err)
		}
		os.Exit(1)
	}
}

func (ctx *Context) newSession() *pak.Session {
	cache := pak.NewPaletteCache()
	cache.EntryName = ctx.Config.PaletteEntry
	return pak.NewSession(
		pak.WithConsumer(ctx.Consumer),
		pak.WithPaletteCache(cache),
		pak.WithWorkers(ctx.Config.Workers),
	)
}

type doCommand func(ctx *Context) error

var commands = make(map[string]doCommand)

var cmdArgs = struct {
	lsArchive *string

	treeArchive *string
	treeFilter  *string

	infoArchive *string
	infoEntry   *string

	imagesArchive *string
	imagesFilter  *string

	catArchive *string
	catEntry   *string
	catHex     *bool

	paletteArchives *[]string
}{}

func registerCommands(app *kingpin.Application) {
	ls := app.Command("ls", "List the entries of an archive")
	cmdArgs.lsArchive = ls.Arg("archive", "Archive to list").Required().String()
	commands[ls.FullCommand()] = func(ctx *Context) error { return doLs(ctx, *cmdArgs.lsArchive) }

	tree := app.Command("tree", "Print an archive as a directory tree")
	cmdArgs.treeArchive = tree.Arg("archive", "Archive to print").Required().String()
	cmdArgs.treeFilter = tree.Flag("filter", "Only show files whose path contains this text").String()
	commands[tree.FullCommand()] = func(ctx *Context) error {
		return doTree(ctx, *cmdArgs.treeArchive, *cmdArgs.treeFilter)
	}

	info := app.Command("info", "Decode one entry and describe it")
	cmdArgs.infoArchive = info.Arg("archive", "Archive holding the entry").Required().String()
	cmdArgs.infoEntry = info.Arg("entry", "Entry path inside the archive").Required().String()
	commands[info.FullCommand()] = func(ctx *Context) error {
		return doInfo(ctx, *cmdArgs.infoArchive, *cmdArgs.infoEntry)
	}

	images := app.Command("images", "Decode every image in an archive")
	cmdArgs.imagesArchive = images.Arg("archive", "Archive to scan").Required().String()
	cmdArgs.imagesFilter = images.Flag("filter", "Only decode images whose path contains this text").String()
	commands[images.FullCommand()] = func(ctx *Context) error {
		return doImages(ctx, *cmdArgs.imagesArchive, *cmdArgs.imagesFilter)
	}

	cat := app.Command("cat", "Print an entry as text or a hex dump")
	cmdArgs.catArchive = cat.Arg("archive", "Archive holding the entry").Required().String()
	cmdArgs.catEntry = cat.Arg("entry", "Entry path inside the archive").Required().String()
	cmdArgs.catHex = cat.Flag("hex", "Print a hex dump even for text entries").Bool()
	commands[cat.FullCommand()] = func(ctx *Context) error {
		return doCat(ctx, *cmdArgs.catArchive, *cmdArgs.catEntry, *cmdArgs.catHex)
	}

	palette := app.Command("palette", "Load the texture palette from a search path and print it")
	cmdArgs.paletteArchives = palette.Arg("archives", "Archives, lowest priority first").Required().Strings()
	commands[palette.FullCommand()] = func(ctx *Context) error {
		return doPalette(ctx, *cmdArgs.paletteArchives)
	}
}

func doLs(ctx *Context, path string) error {
	archive, err := pak.OpenArchive(path)
	if err != nil {
		return err
	}
	entries, err := archive.Entries()
	if err != nil {
		return err
	}

	var total uint64
	table := tablewriter.NewWriter(ctx.Out)
	table.SetAutoFormatHeaders(false)
	table.SetColWidth(60)
	table.SetHeader([]string{"Name", "Kind", "Size"})
	for _, e := range entries {
		total += uint64(e.Size)
		table.Append([]string{e.Name, pak.KindOf(e.Name).String(), humanize.IBytes(uint64(e.Size))})
	}
	table.SetFooter([]string{fmt.Sprintf("%d entries", len(entries)), archive.Description(), humanize.IBytes(total)})
	table.Render()
	return nil
}

func doTree(ctx *Context, path, filter string) error {
	archive, err := pak.OpenArchive(path)
	if err != nil {
		return err
	}
	entries, err := archive.Entries()
	if err != nil {
		return err
	}
	root := pak.BuildTree(entries)

	if filter != "" {
		for _, n := range root.Filter(filter) {
			fmt.Fprintln(ctx.Out, n.Entry.Name)
		}
		return nil
	}

	root.Walk(func(n *pak.Node, depth int) bool {
		if depth == 0 {
			return true
		}
		indent := strings.Repeat("  ", depth-1)
		if n.IsDir() {
			fmt.Fprintf(ctx.Out, "%s%s/\n", indent, n.Name)
		} else {
			fmt.Fprintf(ctx.Out, "%s%s (%s)\n", indent, n.Name, humanize.IBytes(uint64(n.Entry.Size)))
		}
		return true
	})
	return nil
}

func doInfo(ctx *Context, path, name string) error {
	session := ctx.newSession()
	archive, err := session.Open(path)
	if err != nil {
		return err
	}

	entry, ok := archive.Find(name)
	if !ok {
		return errors.Wrapf(pak.ErrEntryNotFound, "%s in %s", name, path)
	}

	kind := pak.KindOf(entry.Name)
	fmt.Fprintf(ctx.Out, "%s: %s, %s\n", entry.Name, kind, humanize.IBytes(uint64(entry.Size)))
	if !kind.IsImage() {
		return nil
	}

	if kind == pak.KindWAL {
		data, err := archive.ReadEntry(entry)
		if err != nil {
			return err
		}
		info, err := pak.ReadWALInfo(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.Out, "  texture name: %s\n", info.Name)
		if info.AnimName != "" {
			fmt.Fprintf(ctx.Out, "  next frame:   %s\n", info.AnimName)
		}
		fmt.Fprintf(ctx.Out, "  flags 0x%08X, contents 0x%08X, value %d\n", info.Flags, info.Contents, info.Value)
		for level, offset := range info.MipOffsets {
			fmt.Fprintf(ctx.Out, "  mip %d: %dx%d at +%d\n", level, info.Width>>uint(level), info.Height>>uint(level), offset)
		}
	}

	img, err := session.Decode(entry)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "  decoded %dx%d RGBA\n", img.Width, img.Height)
	for _, w := range img.Warnings {
		fmt.Fprintf(ctx.Out, "  warning: %v\n", w)
	}
	return nil
}

func doImages(ctx *Context, path, filter string) error {
	session := ctx.newSession()
	archive, err := session.Open(path)
	if err != nil {
		return err
	}
	entries, err := archive.Entries()
	if err != nil {
		return err
	}

	nodes := pak.BuildTree(entries).Filter(filter, pak.KindPCX, pak.KindWAL, pak.KindImage)
	ctx.Consumer.Infof("Decoding %d images from %s", len(nodes), path)

	images, err := session.DecodeAll(context.Background(), pak.Entries(nodes))
	if err != nil {
		return err
	}

	for _, img := range images {
		thumb := pak.Thumbnail(img, ctx.Config.ThumbnailSize)
		fmt.Fprintf(ctx.Out, "%s\t%dx%d\tthumbnail %dx%d\n", img.Name, img.Width, img.Height, thumb.Width, thumb.Height)
	}
	if skipped := len(nodes) - len(images); skipped > 0 {
		ctx.Consumer.Warnf("%d of %d images could not be decoded", skipped, len(nodes))
	}
	return nil
}

func doCat(ctx *Context, path, name string, forceHex bool) error {
	session := ctx.newSession()
	archive, err := session.Open(path)
	if err != nil {
		return err
	}

	entry, ok := archive.Find(name)
	if !ok {
		return errors.Wrapf(pak.ErrEntryNotFound, "%s in %s", name, path)
	}

	if pak.KindOf(entry.Name) == pak.KindText && !forceHex {
		text, err := session.Text(entry)
		if err != nil {
			return err
		}
		_, err = io.WriteString(ctx.Out, text)
		return err
	}

	data, err := session.Bytes(entry)
	if err != nil {
		return err
	}
	_, err = io.WriteString(ctx.Out, hex.Dump(data))
	return err
}

func doPalette(ctx *Context, paths []string) error {
	sp, err := pak.OpenSearchPath(paths)
	if err != nil {
		return err
	}

	cache := pak.NewPaletteCache()
	cache.EntryName = ctx.Config.PaletteEntry
	palette, err := cache.Ensure(sp)
	if err != nil {
		return err
	}

	for row := 0; row < 16; row++ {
		cells := make([]string, 16)
		for col := range cells {
			c := palette[row*16+col]
			cells[col] = fmt.Sprintf("%02x%02x%02x", c[0], c[1], c[2])
		}
		fmt.Fprintf(ctx.Out, "%3d: %s\n", row*16, strings.Join(cells, " "))
	}
	return nil
}
