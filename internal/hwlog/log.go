// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hwlog centralises the subsystem loggers the rest of the module
// uses, following the same backend-and-subsystem-tag pattern exccd's
// top-level log.go uses: one rotated backend, one slog.Logger per
// subsystem, independently levelled.
package hwlog

import (
	"os"

	"github.com/decred/slog"
	rotator "github.com/jrick/logrotate"
)

// backendLog is the logging backend all subsystem loggers share.
var backendLog = slog.NewBackend(os.Stdout)

// Subsystem loggers, tagged the way exccd tags BTCD/WLLT/PEER/etc: fixed
// four-character subsystem codes.
var (
	Bigi = backendLog.Logger("BIGI") // internal/bigint
	Curv = backendLog.Logger("CURV") // internal/curve
	Ecds = backendLog.Logger("ECDS") // internal/ecdsa
	Bip3 = backendLog.Logger("BIP3") // internal/bip32
	Stor = backendLog.Logger("STOR") // storage
	Xexm = backendLog.Logger("XEX ") // internal/xex
	Wlet = backendLog.Logger("WLET") // wallet
	Txpr = backendLog.Logger("TXPR") // txparser
	Prot = backendLog.Logger("PROT") // protocol
)

var subsystems = map[string]slog.Logger{
	"BIGI": Bigi,
	"CURV": Curv,
	"ECDS": Ecds,
	"BIP3": Bip3,
	"STOR": Stor,
	"XEX ": Xexm,
	"WLET": Wlet,
	"TXPR": Txpr,
	"PROT": Prot,
}

// SetLogLevels sets every registered subsystem logger to levelStr (e.g.
// "debug", "info", "warn").
func SetLogLevels(levelStr string) {
	level, ok := slog.LevelFromString(levelStr)
	if !ok {
		return
	}
	for _, logger := range subsystems {
		logger.SetLevel(level)
	}
}

// UseRotatingFile points the shared backend at a rotated log file on disk,
// replacing the default stdout destination. maxRollSize and maxRolls
// follow jrick/logrotate's New signature: the byte threshold at which a
// file is rolled, and how many rolled files to retain.
func UseRotatingFile(path string, maxRollSize int64, maxRolls int) error {
	r, err := rotator.New(path, maxRollSize, false, maxRolls)
	if err != nil {
		return err
	}
	backendLog = slog.NewBackend(r)
	for tag := range subsystems {
		subsystems[tag] = backendLog.Logger(tag)
	}
	Bigi, Curv, Ecds, Bip3 = subsystems["BIGI"], subsystems["CURV"], subsystems["ECDS"], subsystems["BIP3"]
	Stor, Xexm, Wlet = subsystems["STOR"], subsystems["XEX "], subsystems["WLET"]
	Txpr, Prot = subsystems["TXPR"], subsystems["PROT"]
	return nil
}
