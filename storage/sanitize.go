// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"crypto/rand"

	"github.com/EXCCoin/hwwallet-core/internal/hwlog"
)

// Sanitize clears length bytes at offset within partition p using four
// overwrite passes (all-zero, all-one, random, random), then rewrites every
// candidate version-field location inside the cleared range with the
// NothingThere tag, so a subsequent wallet listing cannot misinterpret
// leftover random bytes as a valid wallet version.
func Sanitize(s *Store, p Partition, offset uint32, length uint32) error {
	passes := []func([]byte) error{
		fillZero,
		fillOnes,
		fillRandom,
		fillRandom,
	}

	for _, fill := range passes {
		buf := make([]byte, length)
		if err := fill(buf); err != nil {
			hwlog.Stor.Errorf("sanitize pass failed: %v", err)
			return IoError
		}
		if err := s.Write(p, offset, buf); err != nil {
			return err
		}
		if err := s.Flush(); err != nil {
			return err
		}
	}

	return rewriteVersionTags(s, p, offset, length)
}

func fillZero(buf []byte) error {
	for i := range buf {
		buf[i] = 0x00
	}
	return nil
}

func fillOnes(buf []byte) error {
	for i := range buf {
		buf[i] = 0xFF
	}
	return nil
}

func fillRandom(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}

// rewriteVersionTags stamps NothingThere at every WalletRecordSize-aligned
// offset inside [offset, offset+length) that could hold a version field,
// so a list-wallets scan never treats random post-sanitise bytes as a
// valid version tag.
func rewriteVersionTags(s *Store, p Partition, offset, length uint32) error {
	var tag [LenVersion]byte // NothingThere == 0

	start := (offset / WalletRecordSize) * WalletRecordSize
	for slot := start; slot < offset+length; slot += WalletRecordSize {
		if err := s.Write(p, slot+OffsetVersion, tag[:]); err != nil {
			return err
		}
	}
	return s.Flush()
}
