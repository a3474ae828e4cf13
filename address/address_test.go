// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	hash := make([]byte, 20)
	for i := range hash {
		hash[i] = byte(i)
	}

	encoded := Encode(MainNetPubKeyHashAddrID, hash)
	version, decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if version != MainNetPubKeyHashAddrID {
		t.Fatalf("version = %#x, want %#x", version, MainNetPubKeyHashAddrID)
	}
	if !bytes.Equal(decoded, hash) {
		t.Fatalf("decoded hash = %x, want %x", decoded, hash)
	}
}

func TestDecodeRejectsCorruptedChecksum(t *testing.T) {
	hash := make([]byte, 20)
	encoded := Encode(MainNetPubKeyHashAddrID, hash)
	corrupted := []byte(encoded)
	corrupted[len(corrupted)-1]++
	if _, _, err := Decode(string(corrupted)); err == nil {
		t.Fatal("expected an error decoding a corrupted address")
	}
}

func TestHash160Length(t *testing.T) {
	got := Hash160([]byte("any serialized public key bytes"))
	if len(got) != 20 {
		t.Fatalf("Hash160 length = %d, want 20", len(got))
	}
}

func TestDifferentNetworksProduceDifferentAddresses(t *testing.T) {
	hash := make([]byte, 20)
	main := Encode(MainNetPubKeyHashAddrID, hash)
	test := Encode(TestNetPubKeyHashAddrID, hash)
	if main == test {
		t.Fatal("mainnet and testnet encodings of the same hash must differ")
	}
}
