// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package curve implements secp256k1 point arithmetic: affine and
// Jacobian representations, doubling, mixed addition, scalar
// multiplication, and wire (de)serialisation. It is built directly on
// internal/bigint rather than a general-purpose big-integer library,
// because every operation here must run in the field bigint.FieldP
// exclusively and at fixed cost.
package curve

import "github.com/EXCCoin/hwwallet-core/internal/bigint"

// curveB is the secp256k1 curve parameter b in y^2 = x^3 + b (a = 0).
var curveB = bigint.SetUint64(7)

// Affine is a point in affine coordinates. When IsIdentity is set, X and Y
// carry no meaning but are still populated by every operation that writes
// an Affine value, preserving constant-time write discipline even for the
// point at infinity.
type Affine struct {
	X, Y       bigint.Element
	IsIdentity bool
}

// Jacobian is a point in Jacobian projective coordinates, related to the
// affine point by x_aff = X/Z^2, y_aff = Y/Z^3. Converting to affine costs
// one field inversion; converting from affine is free (Z = 1).
type Jacobian struct {
	X, Y, Z    bigint.Element
	IsIdentity bool
}

// Identity returns the Jacobian point at infinity, with coordinates still
// populated (zeroed) rather than left undefined.
func Identity() Jacobian {
	return Jacobian{X: bigint.Zero(), Y: bigint.Zero(), Z: bigint.Zero(), IsIdentity: true}
}

// FromAffine lifts an affine point into Jacobian coordinates with Z = 1.
func FromAffine(p Affine) Jacobian {
	if p.IsIdentity {
		return Identity()
	}
	return Jacobian{X: p.X, Y: p.Y, Z: bigint.SetUint64(1), IsIdentity: false}
}

// ToAffine converts a Jacobian point to affine coordinates. It always
// performs the inversion and both multiplications, then selects the
// identity result afterward, so the cost does not reveal whether p was the
// identity.
func (p Jacobian) ToAffine() Affine {
	zInv := bigint.InvertMod(p.Z, bigint.FieldP)
	zInv2 := bigint.MulMod(zInv, zInv, bigint.FieldP)
	zInv3 := bigint.MulMod(zInv2, zInv, bigint.FieldP)

	x := bigint.MulMod(p.X, zInv2, bigint.FieldP)
	y := bigint.MulMod(p.Y, zInv3, bigint.FieldP)

	return Affine{
		X:          x,
		Y:          y,
		IsIdentity: p.IsIdentity,
	}
}

// IsOnCurve reports whether the affine point satisfies y^2 = x^3 + 7 mod p.
// The identity point is considered on-curve by convention.
func IsOnCurve(p Affine) bool {
	if p.IsIdentity {
		return true
	}
	lhs := bigint.MulMod(p.Y, p.Y, bigint.FieldP)
	x2 := bigint.MulMod(p.X, p.X, bigint.FieldP)
	x3 := bigint.MulMod(x2, p.X, bigint.FieldP)
	rhs := bigint.AddMod(x3, curveB, bigint.FieldP)
	return bigint.Cmp3(lhs, rhs) == bigint.Equal
}

// Generator returns secp256k1's base point G in affine coordinates.
func Generator() Affine {
	return Affine{
		X: bigint.SetBytesBE(genX[:]),
		Y: bigint.SetBytesBE(genY[:]),
	}
}

var genX = [32]byte{
	0x79, 0xbe, 0x66, 0x7e, 0xf9, 0xdc, 0xbb, 0xac,
	0x55, 0xa0, 0x62, 0x95, 0xce, 0x87, 0x0b, 0x07,
	0x02, 0x9b, 0xfc, 0xdb, 0x2d, 0xce, 0x28, 0xd9,
	0x59, 0xf2, 0x81, 0x5b, 0x16, 0xf8, 0x17, 0x98,
}

var genY = [32]byte{
	0x48, 0x3a, 0xda, 0x77, 0x26, 0xa3, 0xc4, 0x65,
	0x5d, 0xa4, 0xfb, 0xfc, 0x0e, 0x11, 0x08, 0xa8,
	0xfd, 0x17, 0xb4, 0x48, 0xa6, 0x85, 0x54, 0x19,
	0x9c, 0x47, 0xd0, 0x8f, 0xfb, 0x10, 0xd4, 0xb8,
}
