// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command hwwalletd runs the hardware wallet core over a simulated
// transport: a WebSocket stands in for the USART/USB link a real device
// would use, so the protocol, wallet, and storage packages can be
// exercised end to end without physical hardware.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/EXCCoin/hwwallet-core/hostsim"
	"github.com/EXCCoin/hwwallet-core/internal/hwlog"
	"github.com/EXCCoin/hwwallet-core/protocol"
	"github.com/EXCCoin/hwwallet-core/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.LogDir != "" {
		logPath := cfg.LogDir + "/hwwalletd.log"
		if err := hwlog.UseRotatingFile(logPath, defaultMaxRollSize, defaultMaxRolls); err != nil {
			return fmt.Errorf("setting up log rotation: %w", err)
		}
	}
	hwlog.SetLogLevels(cfg.LogLevel)

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	rng := hostsim.OSRandomSource{}
	ui := hostsim.NewConsoleUI(os.Stdin, os.Stdout)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		stream, err := hostsim.Accept(w, r)
		if err != nil {
			hwlog.Prot.Errorf("accept: %v", err)
			return
		}
		defer stream.Close()

		session := protocol.NewSession(store, stream, ui, rng)
		hwlog.Prot.Infof("session %d opened", session.ID)
		for {
			if err := session.ServeOne(); err != nil {
				hwlog.Prot.Infof("session %d closed: %v", session.ID, err)
				return
			}
		}
	})

	hwlog.Prot.Infof("listening on %s", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, nil)
}
