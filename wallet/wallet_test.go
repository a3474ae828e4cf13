// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"bytes"
	"testing"

	"github.com/EXCCoin/hwwallet-core/address"
	"github.com/EXCCoin/hwwallet-core/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

const maxTestingAddresses = 7

func TestNewWalletSevenAddressesThenFull(t *testing.T) {
	s := openTestStore(t)
	w := New(s, 0)

	if err := w.NewWallet("test", "", nil); err != nil {
		t.Fatalf("NewWallet: %v", err)
	}

	seen := make(map[string]bool)
	seenKeys := make(map[string]bool)
	for i := 0; i < maxTestingAddresses; i++ {
		handle, err := w.MakeNewAddress(maxTestingAddresses)
		if err != nil {
			t.Fatalf("MakeNewAddress #%d: %v", i, err)
		}
		addr, pub, err := w.GetAddressAndPublicKey(handle, address.MainNetPubKeyHashAddrID)
		if err != nil {
			t.Fatalf("GetAddressAndPublicKey(%d): %v", handle, err)
		}
		if seen[addr] {
			t.Fatalf("address for handle %d duplicates a previous address", handle)
		}
		if seenKeys[string(pub)] {
			t.Fatalf("public key for handle %d duplicates a previous key", handle)
		}
		seen[addr] = true
		seenKeys[string(pub)] = true
	}

	n, err := w.GetNumAddresses()
	if err != nil {
		t.Fatalf("GetNumAddresses: %v", err)
	}
	if n != maxTestingAddresses {
		t.Fatalf("GetNumAddresses = %d, want %d", n, maxTestingAddresses)
	}

	if _, err := w.MakeNewAddress(maxTestingAddresses); err != Full {
		t.Fatalf("eighth MakeNewAddress = %v, want Full", err)
	}
}

func TestInitWalletWrongPasswordIsNotThere(t *testing.T) {
	s := openTestStore(t)
	w := New(s, 0)
	if err := w.NewWallet("test", "correct horse", nil); err != nil {
		t.Fatalf("NewWallet: %v", err)
	}
	w.UninitWallet()

	w2 := New(s, 0)
	if err := w2.InitWallet("wrong password"); err != NotThere {
		t.Fatalf("InitWallet with wrong password = %v, want NotThere", err)
	}
}

func TestInitWalletCorrectPasswordRestoresState(t *testing.T) {
	s := openTestStore(t)
	w := New(s, 0)
	if err := w.NewWallet("test", "hunter2", nil); err != nil {
		t.Fatalf("NewWallet: %v", err)
	}
	handle, err := w.MakeNewAddress(maxTestingAddresses)
	if err != nil {
		t.Fatalf("MakeNewAddress: %v", err)
	}
	wantAddr, wantPub, err := w.GetAddressAndPublicKey(handle, address.MainNetPubKeyHashAddrID)
	if err != nil {
		t.Fatalf("GetAddressAndPublicKey: %v", err)
	}
	w.UninitWallet()

	w2 := New(s, 0)
	if err := w2.InitWallet("hunter2"); err != nil {
		t.Fatalf("InitWallet: %v", err)
	}
	n, err := w2.GetNumAddresses()
	if err != nil || n != 1 {
		t.Fatalf("GetNumAddresses = %d, %v, want 1, nil", n, err)
	}
	gotAddr, gotPub, err := w2.GetAddressAndPublicKey(handle, address.MainNetPubKeyHashAddrID)
	if err != nil {
		t.Fatalf("GetAddressAndPublicKey after reload: %v", err)
	}
	if gotAddr != wantAddr || !bytes.Equal(gotPub, wantPub) {
		t.Fatalf("reloaded wallet derived a different address/key for the same handle")
	}
}

func TestGetPrivateKeyRejectsInvalidHandle(t *testing.T) {
	s := openTestStore(t)
	w := New(s, 0)
	if err := w.NewWallet("test", "", nil); err != nil {
		t.Fatalf("NewWallet: %v", err)
	}

	if _, err := w.GetPrivateKey(0); err != BadAddress {
		t.Fatalf("handle 0 = %v, want BadAddress", err)
	}
	if _, err := w.GetPrivateKey(0xFFFFFFFF); err != BadAddress {
		t.Fatalf("handle 0xFFFFFFFF = %v, want BadAddress", err)
	}
	if _, err := w.GetPrivateKey(1); err != InvalidHandle {
		t.Fatalf("unissued handle 1 = %v, want InvalidHandle", err)
	}
}

func TestOperationsRequireLoaded(t *testing.T) {
	s := openTestStore(t)
	w := New(s, 0)

	if _, err := w.MakeNewAddress(maxTestingAddresses); err != NotLoaded {
		t.Fatalf("MakeNewAddress on unloaded wallet = %v, want NotLoaded", err)
	}
	if _, err := w.GetNumAddresses(); err != NotLoaded {
		t.Fatalf("GetNumAddresses on unloaded wallet = %v, want NotLoaded", err)
	}
	if _, err := w.GetPrivateKey(1); err != NotLoaded {
		t.Fatalf("GetPrivateKey on unloaded wallet = %v, want NotLoaded", err)
	}
}

func TestChangeWalletNamePreservesAddresses(t *testing.T) {
	s := openTestStore(t)
	w := New(s, 0)
	if err := w.NewWallet("old-name", "", nil); err != nil {
		t.Fatalf("NewWallet: %v", err)
	}
	handle, err := w.MakeNewAddress(maxTestingAddresses)
	if err != nil {
		t.Fatalf("MakeNewAddress: %v", err)
	}
	wantAddr, _, err := w.GetAddressAndPublicKey(handle, address.MainNetPubKeyHashAddrID)
	if err != nil {
		t.Fatalf("GetAddressAndPublicKey: %v", err)
	}

	if err := w.ChangeWalletName("new-name"); err != nil {
		t.Fatalf("ChangeWalletName: %v", err)
	}

	gotAddr, _, err := w.GetAddressAndPublicKey(handle, address.MainNetPubKeyHashAddrID)
	if err != nil {
		t.Fatalf("GetAddressAndPublicKey after rename: %v", err)
	}
	if gotAddr != wantAddr {
		t.Fatalf("address changed after rename: got %s, want %s", gotAddr, wantAddr)
	}
}

func TestChangeEncryptionKeyThenRequiresNewPassword(t *testing.T) {
	s := openTestStore(t)
	w := New(s, 0)
	if err := w.NewWallet("test", "old-pw", nil); err != nil {
		t.Fatalf("NewWallet: %v", err)
	}
	if err := w.ChangeEncryptionKey("new-pw"); err != nil {
		t.Fatalf("ChangeEncryptionKey: %v", err)
	}
	w.UninitWallet()

	w2 := New(s, 0)
	if err := w2.InitWallet("old-pw"); err != NotThere {
		t.Fatalf("InitWallet with stale password = %v, want NotThere", err)
	}
	w3 := New(s, 0)
	if err := w3.InitWallet("new-pw"); err != nil {
		t.Fatalf("InitWallet with new password: %v", err)
	}
}

func TestDeleteWalletThenInitFails(t *testing.T) {
	s := openTestStore(t)
	w := New(s, 0)
	if err := w.NewWallet("test", "", nil); err != nil {
		t.Fatalf("NewWallet: %v", err)
	}
	if err := w.DeleteWallet(); err != nil {
		t.Fatalf("DeleteWallet: %v", err)
	}

	w2 := New(s, 0)
	if err := w2.InitWallet(""); err != NotThere {
		t.Fatalf("InitWallet after delete = %v, want NotThere", err)
	}
}

func TestIsIssuedTracksMakeNewAddress(t *testing.T) {
	s := openTestStore(t)
	w := New(s, 0)
	if err := w.NewWallet("test", "", nil); err != nil {
		t.Fatalf("NewWallet: %v", err)
	}
	if w.IsIssued(1) {
		t.Fatal("handle 1 reported issued before MakeNewAddress")
	}
	handle, err := w.MakeNewAddress(maxTestingAddresses)
	if err != nil {
		t.Fatalf("MakeNewAddress: %v", err)
	}
	if !w.IsIssued(handle) {
		t.Fatalf("handle %d not reported issued after MakeNewAddress", handle)
	}
}
