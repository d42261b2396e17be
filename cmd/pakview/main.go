// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// Command pakview lists and inspects Quake-family archives.
package main

import (
	"fmt"
	"os"

	"github.com/itchio/wharf/state"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("pakview", "Browse .pak, .pk3 and .pk4 archives and decode their images")

	appArgs = struct {
		config  *string
		verbose *bool
		workers *int
	}{
		app.Flag("config", "Path to a TOML config file").String(),
		app.Flag("verbose", "Show debug messages").Short('v').Bool(),
		app.Flag("workers", "How many images to decode at once").Int(),
	}
)

func main() {
	registerCommands(app)

	fullCmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := loadConfig(*appArgs.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pakview: %v\n", err)
		os.Exit(1)
	}
	if *appArgs.verbose {
		cfg.Verbose = true
	}
	if *appArgs.workers > 0 {
		cfg.Workers = *appArgs.workers
	}

	ctx := &Context{
		Config:   cfg,
		Consumer: newConsumer(cfg.Verbose),
		Out:      os.Stdout,
	}

	do, ok := commands[fullCmd]
	if !ok {
		app.FatalUsage("unknown command %s", fullCmd)
	}
	ctx.Must(do(ctx))
}

// newConsumer prints log messages to stderr, dropping debug ones unless
// verbose is set.
func newConsumer(verbose bool) *state.Consumer {
	return &state.Consumer{
		OnMessage: func(level, msg string) {
			if level == "debug" && !verbose {
				return
			}
			fmt.Fprintf(os.Stderr, "%s: %s\n", level, msg)
		},
	}
}
