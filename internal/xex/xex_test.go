// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package xex

import (
	"bytes"
	"testing"
)

func testKeys() Keys {
	var k Keys
	for i := range k.K1 {
		k.K1[i] = byte(i)
	}
	for i := range k.K2 {
		k.K2[i] = byte(i + 1)
	}
	return k
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	keys := testKeys()
	plain := []byte("0123456789abcdef")

	ct, err := EncryptBlock(keys, 48, plain)
	if err != nil {
		t.Fatalf("EncryptBlock: %v", err)
	}
	pt, err := DecryptBlock(keys, 48, ct)
	if err != nil {
		t.Fatalf("DecryptBlock: %v", err)
	}
	if !bytes.Equal(pt, plain) {
		t.Fatalf("round trip = %q, want %q", pt, plain)
	}
}

func TestSameBlockDifferentOffsetsDiffer(t *testing.T) {
	keys := testKeys()
	plain := []byte("samesameblock!!!")

	a, err := EncryptBlock(keys, 0, plain)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptBlock(keys, 16, plain)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("identical plaintext at different offsets produced identical ciphertext")
	}
}

func TestZeroKeyIsIdentity(t *testing.T) {
	var keys Keys
	plain := []byte("plaintextplain!!")
	ct, err := EncryptBlock(keys, 64, plain)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ct, plain) {
		t.Fatal("all-zero key should leave plaintext unchanged (unencrypted marker)")
	}
}

func TestEncryptRangeDecryptRange(t *testing.T) {
	keys := testKeys()
	data := bytes.Repeat([]byte("X"), 64)

	ct, err := EncryptRange(keys, 48, data)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := DecryptRange(keys, 48, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, data) {
		t.Fatal("range round trip failed")
	}
}

func TestShortBlockRejected(t *testing.T) {
	keys := testKeys()
	if _, err := EncryptBlock(keys, 0, []byte("short")); err != ErrShortBlock {
		t.Fatalf("expected ErrShortBlock, got %v", err)
	}
}
