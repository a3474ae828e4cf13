// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultDataDirname  = "data"
	defaultLogLevel     = "info"
	defaultListenAddr   = "127.0.0.1:19110"
	defaultMaxRollSize  = 10 * 1024 * 1024
	defaultMaxRolls     = 3
)

// config holds every hwwalletd command-line option, parsed the way
// exccd's config.go uses go-flags: one struct, `long`/`description`
// struct tags, defaults applied before Parse runs.
type config struct {
	DataDir    string `long:"datadir" description:"Directory holding the non-volatile store"`
	ListenAddr string `long:"listen" description:"WebSocket address the simulator listens on"`
	LogLevel   string `long:"loglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	LogDir     string `long:"logdir" description:"Directory to write rotated logs to (empty disables rotation)"`
}

func defaultConfig() config {
	return config{
		DataDir:    defaultDataDirname,
		ListenAddr: defaultListenAddr,
		LogLevel:   defaultLogLevel,
	}
}

// loadConfig parses the process's command-line arguments into a config,
// applying defaults first so unset flags keep a sane value.
func loadConfig() (*config, error) {
	cfg := defaultConfig()
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	if cfg.LogDir != "" {
		cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	}

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &cfg, nil
}

// cleanAndExpandPath expands a leading ~ to the user's home directory and
// cleans the result, mirroring exccd's config helper of the same name.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return filepath.Clean(os.ExpandEnv(path))
}
