// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ecdsa implements RFC 6979 deterministic nonce derivation and
// ECDSA signing over secp256k1, plus BIP 62's low-S canonicalisation and
// DER encoding of the result.
package ecdsa

import (
	"crypto/hmac"
	"crypto/sha256"
)

// hmacDRBG is the minimal HMAC-DRBG construction RFC 6979 §3.2 describes:
// enough of SP 800-90A's HMAC_DRBG to deterministically produce as many
// 32-byte blocks as needed from a fixed seed, with no reseed or
// prediction-resistance machinery (none of which RFC 6979 uses).
type hmacDRBG struct {
	k, v [32]byte
}

// newHMACDRBG instantiates the DRBG from seedMaterial, which RFC 6979
// §3.3a defines as big-endian(privateKey) || big-endian(digest).
func newHMACDRBG(seedMaterial []byte) *hmacDRBG {
	d := &hmacDRBG{}
	for i := range d.k {
		d.k[i] = 0x00
	}
	for i := range d.v {
		d.v[i] = 0x01
	}

	d.update(seedMaterial)
	return d
}

func (d *hmacDRBG) update(providedData []byte) {
	mac := hmac.New(sha256.New, d.k[:])
	mac.Write(d.v[:])
	mac.Write([]byte{0x00})
	mac.Write(providedData)
	copy(d.k[:], mac.Sum(nil))

	mac = hmac.New(sha256.New, d.k[:])
	mac.Write(d.v[:])
	copy(d.v[:], mac.Sum(nil))

	if len(providedData) == 0 {
		return
	}

	mac = hmac.New(sha256.New, d.k[:])
	mac.Write(d.v[:])
	mac.Write([]byte{0x01})
	mac.Write(providedData)
	copy(d.k[:], mac.Sum(nil))

	mac = hmac.New(sha256.New, d.k[:])
	mac.Write(d.v[:])
	copy(d.v[:], mac.Sum(nil))
}

// generate returns the next 32-byte output block.
func (d *hmacDRBG) generate() [32]byte {
	mac := hmac.New(sha256.New, d.k[:])
	mac.Write(d.v[:])
	copy(d.v[:], mac.Sum(nil))

	var out [32]byte
	copy(out[:], d.v[:])
	d.update(nil)
	return out
}
