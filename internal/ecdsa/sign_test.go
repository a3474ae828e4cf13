// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/EXCCoin/hwwallet-core/internal/bigint"
	"github.com/EXCCoin/hwwallet-core/internal/curve"
)

// TestRFC6979KnownVectorVerifies exercises the RFC 6979 "fpgaminer #1"
// inputs (private key 1, message "Satoshi Nakamoto", SHA-256 hashed once)
// and checks the deterministically produced signature verifies against
// the corresponding public key, and that r and s match the named vector
// bit-for-bit rather than merely being internally self-consistent: a
// differently-seeded but self-consistent DRBG would still pass Verify.
func TestRFC6979KnownVectorVerifies(t *testing.T) {
	d := bigint.SetUint64(1)
	digest := sha256.Sum256([]byte("Satoshi Nakamoto"))

	sig, err := Sign(d, digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	pub := curve.Mul(d, curve.Generator()).ToAffine()
	if !Verify(pub, digest, sig) {
		t.Fatal("RFC 6979 vector signature failed to verify")
	}

	rBytes := sig.R.BytesBE()
	sBytes := sig.S.BytesBE()
	rHex := strings.ToUpper(hex.EncodeToString(rBytes[:]))
	sHex := strings.ToUpper(hex.EncodeToString(sBytes[:]))

	const rPrefix, rSuffix = "934B1EA1", "0EE3D8"
	const sPrefix, sSuffix = "2442CE9D", "FD9E5"
	if !strings.HasPrefix(rHex, rPrefix) || !strings.HasSuffix(rHex, rSuffix) {
		t.Fatalf("r = %s, want prefix %s and suffix %s (RFC 6979 fpgaminer #1)", rHex, rPrefix, rSuffix)
	}
	if !strings.HasPrefix(sHex, sPrefix) || !strings.HasSuffix(sHex, sSuffix) {
		t.Fatalf("s = %s, want prefix %s and suffix %s (RFC 6979 fpgaminer #1)", sHex, sPrefix, sSuffix)
	}
}

func TestSignIsDeterministic(t *testing.T) {
	d := bigint.SetUint64(424242)
	digest := sha256.Sum256([]byte("repeat me"))
	a, err := Sign(d, digest)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sign(d, digest)
	if err != nil {
		t.Fatal(err)
	}
	if bigint.Cmp3(a.R, b.R) != bigint.Equal || bigint.Cmp3(a.S, b.S) != bigint.Equal {
		t.Fatal("two signs over the same (d, h) produced different signatures")
	}
}

func TestSignatureVerifiesAndIsLowS(t *testing.T) {
	for _, k := range []uint64{1, 2, 42, 123456789} {
		d := bigint.SetUint64(k)
		pub := curve.Mul(d, curve.Generator()).ToAffine()
		digest := sha256.Sum256([]byte("a transaction signature hash"))

		sig, err := Sign(d, digest)
		if err != nil {
			t.Fatalf("Sign(%d): %v", k, err)
		}
		if bigint.Cmp3(sig.S, halfOrder) == bigint.Greater {
			t.Fatalf("Sign(%d): s exceeds n/2", k)
		}
		if !Verify(pub, digest, sig) {
			t.Fatalf("Verify(%d): signature did not verify", k)
		}
	}
}

func TestEncodeDERShapeAndTrailer(t *testing.T) {
	d := bigint.SetUint64(7)
	digest := sha256.Sum256([]byte("der test"))
	sig, err := Sign(d, digest)
	if err != nil {
		t.Fatal(err)
	}
	der := EncodeDER(sig)
	if len(der) < 8 || len(der) > 73 {
		t.Fatalf("DER length %d out of [8,73]", len(der))
	}
	if der[0] != 0x30 {
		t.Fatalf("expected SEQUENCE tag 0x30, got %#x", der[0])
	}
	if der[len(der)-1] != SighashAll {
		t.Fatalf("expected trailing SIGHASH_ALL byte, got %#x", der[len(der)-1])
	}
	if der[2] != 0x02 || der[2+2+int(der[3])] != 0x02 {
		t.Fatalf("expected two INTEGER tags in %x", der)
	}
}
