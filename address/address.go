// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address implements base58check encoding/decoding of Bitcoin
// pubkey-hash addresses, following the same Hash160 = RIPEMD160(SHA256(.))
// construction the teacher's exccutil package uses.
package address

import (
	"bytes"
	"crypto/sha256"
	"errors"

	"github.com/EXCCoin/base58"
	"golang.org/x/crypto/ripemd160"
)

// Network version bytes for P2PKH addresses.
const (
	MainNetPubKeyHashAddrID byte = 0x00
	TestNetPubKeyHashAddrID byte = 0x6f
)

// ErrChecksumMismatch is returned by Decode when the trailing 4-byte
// checksum does not match the computed double-SHA-256 checksum.
var ErrChecksumMismatch = errors.New("address: checksum mismatch")

// ErrInvalidLength is returned by Decode when the base58-decoded payload
// is not exactly 1 (version) + 20 (hash) + 4 (checksum) bytes.
var ErrInvalidLength = errors.New("address: invalid decoded length")

// Hash160 returns RIPEMD160(SHA256(b)), the hash used to identify a public
// key in a P2PKH address.
func Hash160(b []byte) []byte {
	sha := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}

func doubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// Encode base58check-encodes a 20-byte pubkey hash under the given network
// version byte: base58(version || hash160 || doubleSHA256(version||hash160)[:4]).
func Encode(versionByte byte, hash160 []byte) string {
	payload := make([]byte, 0, 1+20+4)
	payload = append(payload, versionByte)
	payload = append(payload, hash160...)

	checksum := doubleSHA256(payload)
	payload = append(payload, checksum[:4]...)
	return base58.Encode(payload)
}

// Decode reverses Encode, returning the version byte and the 20-byte
// pubkey hash.
func Decode(addr string) (versionByte byte, hash160 []byte, err error) {
	decoded := base58.Decode(addr)
	if len(decoded) != 1+20+4 {
		return 0, nil, ErrInvalidLength
	}

	payload := decoded[:1+20]
	checksum := decoded[1+20:]
	want := doubleSHA256(payload)
	if !bytes.Equal(checksum, want[:4]) {
		return 0, nil, ErrChecksumMismatch
	}

	return payload[0], payload[1:], nil
}
