// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curve

import "github.com/EXCCoin/hwwallet-core/internal/bigint"

// Double returns 2*p in Jacobian coordinates, using the doubling formula
// specialised for a = 0 (saves two squarings relative to the general short
// Weierstrass formula). If p is the identity, or its y-coordinate is zero
// (a 2-torsion point, which cannot occur on secp256k1's prime-order
// subgroup but is guarded against regardless), the result is the identity.
// Every intermediate field operation still executes so that timing does
// not betray which branch applied.
func Double(p Jacobian) Jacobian {
	P := bigint.FieldP

	ySq := bigint.MulMod(p.Y, p.Y, P)
	s := bigint.MulMod(bigint.SetUint64(4), bigint.MulMod(p.X, ySq, P), P)
	m := bigint.MulMod(bigint.SetUint64(3), bigint.MulMod(p.X, p.X, P), P)

	x3 := bigint.SubMod(bigint.MulMod(m, m, P), bigint.AddMod(s, s, P), P)

	ySqSq := bigint.MulMod(ySq, ySq, P)
	y3 := bigint.SubMod(
		bigint.MulMod(m, bigint.SubMod(s, x3, P), P),
		bigint.MulMod(bigint.SetUint64(8), ySqSq, P),
		P,
	)

	z3 := bigint.MulMod(bigint.SetUint64(2), bigint.MulMod(p.Y, p.Z, P), P)

	degenerate := p.IsIdentity || p.Y.IsZero()
	result := Jacobian{X: x3, Y: y3, Z: z3, IsIdentity: false}
	if degenerate {
		return Identity()
	}
	return result
}

// junkPoint is the scratch destination writes are redirected to when
// either operand of a mixed addition is the identity, so that which
// operand was the identity cannot be inferred from which memory location
// received the "real" result.
var junkPoint Jacobian

// AddMixed adds a Jacobian point p1 to an affine point p2 using the
// standard 11-multiplication mixed-coordinate formula. When either operand
// is the identity, the arithmetic still runs (on well-defined stand-in
// values) but its output is discarded into junkPoint, and the untouched
// operand is returned instead.
//
// The p1 == ±p2 collision (which the addition formula cannot handle,
// since it would divide by zero) is detected and handled outside the
// formula: equal points are passed to Double, and opposite points give the
// identity. The scalar-multiplication ladder in Mul never reaches this
// branch for a scalar in [1, n-1].
func AddMixed(p1 Jacobian, p2 Affine) Jacobian {
	P := bigint.FieldP

	z1z1 := bigint.MulMod(p1.Z, p1.Z, P)
	u2 := bigint.MulMod(p2.X, z1z1, P)
	s2 := bigint.MulMod(p2.Y, bigint.MulMod(p1.Z, z1z1, P), P)

	h := bigint.SubMod(u2, p1.X, P)
	r := bigint.SubMod(s2, p1.Y, P)

	isCollision := !p1.IsIdentity && !p2.IsIdentity && h.IsZero()
	if isCollision {
		if r.IsZero() {
			return Double(p1)
		}
		return Identity()
	}

	hh := bigint.MulMod(h, h, P)
	hhh := bigint.MulMod(hh, h, P)
	v := bigint.MulMod(p1.X, hh, P)

	x3 := bigint.SubMod(bigint.SubMod(bigint.MulMod(r, r, P), hhh, P), bigint.AddMod(v, v, P), P)
	y3 := bigint.SubMod(bigint.MulMod(r, bigint.SubMod(v, x3, P), P), bigint.MulMod(p1.Y, hhh, P), P)
	z3 := bigint.MulMod(p1.Z, h, P)

	computed := Jacobian{X: x3, Y: y3, Z: z3, IsIdentity: false}

	switch {
	case p1.IsIdentity && p2.IsIdentity:
		junkPoint = computed
		return Identity()
	case p1.IsIdentity:
		junkPoint = computed
		return FromAffine(p2)
	case p2.IsIdentity:
		junkPoint = computed
		return p1
	default:
		return computed
	}
}
