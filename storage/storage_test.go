// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWriteFlushRead(t *testing.T) {
	s := openTestStore(t)
	want := []byte("hello, flash")
	if err := s.Write(Accounts, 0, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := make([]byte, len(want))
	if err := s.Read(Accounts, 0, got); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Read = %q, want %q", got, want)
	}
}

func TestReadSeesBufferedWriteBeforeFlush(t *testing.T) {
	s := openTestStore(t)
	want := []byte("buffered")
	if err := s.Write(Accounts, 16, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := make([]byte, len(want))
	if err := s.Read(Accounts, 16, got); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("unflushed Read = %q, want %q", got, want)
	}
}

func TestOutOfRangeIsInvalidAddress(t *testing.T) {
	s := openTestStore(t)
	buf := make([]byte, 16)
	err := s.Write(Global, uint32(globalCapacity), buf)
	if err != InvalidAddress {
		t.Fatalf("expected InvalidAddress, got %v", err)
	}
}

func TestSanitizeClearsAndStampsVersion(t *testing.T) {
	s := openTestStore(t)
	if err := s.Write(Accounts, OffsetVersion, []byte{0x02, 0x00, 0x00, 0x00}); err != nil {
		t.Fatal(err)
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}

	if err := Sanitize(s, Accounts, 0, WalletRecordSize); err != nil {
		t.Fatalf("Sanitize: %v", err)
	}

	var tag [LenVersion]byte
	if err := s.Read(Accounts, OffsetVersion, tag[:]); err != nil {
		t.Fatal(err)
	}
	for _, b := range tag {
		if b != 0 {
			t.Fatalf("version tag after sanitise = %x, want all-zero (NothingThere)", tag)
		}
	}
}
