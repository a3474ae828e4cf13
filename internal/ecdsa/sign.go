// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"errors"

	"github.com/EXCCoin/hwwallet-core/internal/bigint"
	"github.com/EXCCoin/hwwallet-core/internal/curve"
)

// ErrInvalidPrivateKey is returned when the supplied private key is not in
// [1, n-1].
var ErrInvalidPrivateKey = errors.New("ecdsa: private key out of range")

// Signature is an ECDSA signature in its raw (r, s) form, both reduced
// modulo the curve order n.
type Signature struct {
	R, S bigint.Element
}

// Sign deterministically signs the 32-byte digest h with private key d,
// following RFC 6979 §3.2 for nonce generation and BIP 62's low-S rule for
// canonicalisation. Equal (d, h) pairs always produce an identical
// signature.
func Sign(d bigint.Element, h [32]byte) (Signature, error) {
	n := bigint.FieldN
	if d.IsZero() || bigint.Cmp3(d, n.N) != bigint.Less {
		return Signature{}, ErrInvalidPrivateKey
	}

	seedMaterial := make([]byte, 0, 64)
	dBytes := d.BytesBE()
	seedMaterial = append(seedMaterial, dBytes[:]...)
	seedMaterial = append(seedMaterial, h[:]...)

	drbg := newHMACDRBG(seedMaterial)
	g := curve.Generator()

	for {
		block := drbg.generate()
		k := bigint.SetBytesBE(block[:])
		if k.IsZero() || bigint.Cmp3(k, n.N) != bigint.Less {
			continue
		}

		R := curve.Mul(k, g).ToAffine()
		if R.IsIdentity {
			continue
		}
		r := bigint.ReduceMod(R.X, n)
		if r.IsZero() {
			continue
		}

		hInt := bigint.ReduceMod(bigint.SetBytesBE(h[:]), n)
		kInv := bigint.InvertMod(k, n)
		rd := bigint.MulMod(r, d, n)
		s := bigint.MulMod(kInv, bigint.AddMod(hInt, rd, n), n)
		if s.IsZero() {
			continue
		}

		s = canonicalizeLowS(s, n)
		return Signature{R: r, S: s}, nil
	}
}

// halfOrder is n/2, used to decide whether s needs flipping under BIP 62.
var halfOrder = bigint.ShiftRightOne(bigint.FieldN.N)

// canonicalizeLowS replaces s with n-s whenever s > n/2, which is BIP 62's
// "low S" rule: it is required for mainnet relay because (r, s) and
// (r, n-s) verify against the same public key, and without this rule an
// attacker could mutate a valid signature's S value without invalidating
// it (transaction malleability).
func canonicalizeLowS(s bigint.Element, n bigint.Modulus) bigint.Element {
	if bigint.Cmp3(s, halfOrder) == bigint.Greater {
		return bigint.SubMod(bigint.Zero(), s, n)
	}
	return s
}

// Verify reports whether sig is a valid ECDSA signature over digest h for
// public key pub. It exists primarily to support the package's own tests
// and property checks; production firmware only ever signs.
func Verify(pub curve.Affine, h [32]byte, sig Signature) bool {
	n := bigint.FieldN
	if sig.R.IsZero() || bigint.Cmp3(sig.R, n.N) != bigint.Less {
		return false
	}
	if sig.S.IsZero() || bigint.Cmp3(sig.S, n.N) != bigint.Less {
		return false
	}

	sInv := bigint.InvertMod(sig.S, n)
	hInt := bigint.ReduceMod(bigint.SetBytesBE(h[:]), n)
	u1 := bigint.MulMod(hInt, sInv, n)
	u2 := bigint.MulMod(sig.R, sInv, n)

	g := curve.Generator()
	p1 := curve.Mul(u1, g)
	p2 := curve.Mul(u2, pub)
	sum := curve.AddMixed(p1, p2.ToAffine()).ToAffine()
	if sum.IsIdentity {
		return false
	}
	x := bigint.ReduceMod(sum.X, n)
	return bigint.Cmp3(x, sig.R) == bigint.Equal
}
