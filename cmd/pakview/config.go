// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/suprsokr/go-pak"
)

// Config holds pakview settings. Values come from defaults, then the TOML
// file, then command-line flags.
type Config struct {
	// PaletteEntry is the archive entry WAL palettes are loaded from.
	PaletteEntry string `toml:"palette_entry"`

	// Workers bounds how many images are decoded at once.
	Workers int `toml:"workers"`

	// ThumbnailSize is the longest side of thumbnails, in pixels.
	ThumbnailSize int `toml:"thumbnail_size"`

	Verbose bool `toml:"verbose"`
}

func defaultConfig() *Config {
	return &Config{
		PaletteEntry:  pak.ColormapEntry,
		Workers:       pak.DefaultWorkers,
		ThumbnailSize: 128,
	}
}

// defaultConfigPath is $XDG_CONFIG_HOME/pakview/config.toml or the
// platform equivalent.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pakview", "config.toml")
}

// loadConfig reads the file at path over the defaults. An empty path means
// the default location, which may be absent; an explicit path must exist.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !explicit && os.IsNotExist(errors.Cause(err)) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "load config %s", path)
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PaletteEntry == "" {
		return errors.New("palette_entry must not be empty")
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.ThumbnailSize < 1 {
		return errors.Errorf("thumbnail_size must be at least 1, got %d", c.ThumbnailSize)
	}
	return nil
}
