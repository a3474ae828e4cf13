// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curve

import (
	"testing"

	"github.com/EXCCoin/hwwallet-core/internal/bigint"
)

func TestGeneratorIsOnCurve(t *testing.T) {
	if !IsOnCurve(Generator()) {
		t.Fatal("generator point does not satisfy y^2 = x^3 + 7")
	}
}

func TestDoubleMatchesAdd(t *testing.T) {
	g := Generator()
	doubled := Double(FromAffine(g)).ToAffine()
	added := AddMixed(FromAffine(g), g).ToAffine()
	if bigint.Cmp3(doubled.X, added.X) != bigint.Equal || bigint.Cmp3(doubled.Y, added.Y) != bigint.Equal {
		t.Fatalf("2G via double = %+v, via add = %+v", doubled, added)
	}
}

func TestIdentityLaw(t *testing.T) {
	g := Generator()
	withIdentity := AddMixed(Identity(), g)
	affine := withIdentity.ToAffine()
	if bigint.Cmp3(affine.X, g.X) != bigint.Equal || bigint.Cmp3(affine.Y, g.Y) != bigint.Equal {
		t.Fatalf("O + G = %+v, want G = %+v", affine, g)
	}
}

func TestScalarMulOneIsGenerator(t *testing.T) {
	g := Generator()
	got := Mul(bigint.SetUint64(1), g).ToAffine()
	if bigint.Cmp3(got.X, g.X) != bigint.Equal || bigint.Cmp3(got.Y, g.Y) != bigint.Equal {
		t.Fatalf("1*G = %+v, want G = %+v", got, g)
	}
}

func TestScalarMulTwoMatchesDouble(t *testing.T) {
	g := Generator()
	viaMul := Mul(bigint.SetUint64(2), g).ToAffine()
	viaDouble := Double(FromAffine(g)).ToAffine()
	if bigint.Cmp3(viaMul.X, viaDouble.X) != bigint.Equal || bigint.Cmp3(viaMul.Y, viaDouble.Y) != bigint.Equal {
		t.Fatalf("2*G via ladder = %+v, via double = %+v", viaMul, viaDouble)
	}
}

func TestScalarMulByOrderIsIdentity(t *testing.T) {
	g := Generator()
	got := Mul(bigint.FieldN.N, g)
	if !got.IsIdentity && !got.ToAffine().IsIdentity {
		t.Fatalf("n*G should be the identity")
	}
}

func TestSerializeRoundTripCompressed(t *testing.T) {
	g := Generator()
	enc := SerializeCompressed(g)
	got, err := Deserialize(enc)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if bigint.Cmp3(got.X, g.X) != bigint.Equal || bigint.Cmp3(got.Y, g.Y) != bigint.Equal {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, g)
	}
}

func TestSerializeRoundTripUncompressed(t *testing.T) {
	g := Generator()
	enc := SerializeUncompressed(g)
	got, err := Deserialize(enc)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if bigint.Cmp3(got.X, g.X) != bigint.Equal || bigint.Cmp3(got.Y, g.Y) != bigint.Equal {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, g)
	}
}

func TestSerializeIdentity(t *testing.T) {
	enc := SerializeCompressed(Affine{IsIdentity: true})
	if len(enc) != 1 || enc[0] != 0x00 {
		t.Fatalf("identity serialisation = %x, want [00]", enc)
	}
	got, err := Deserialize(enc)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !got.IsIdentity {
		t.Fatal("expected decoded identity flag to be set")
	}
}

func TestDeserializeRejectsOffCurvePoint(t *testing.T) {
	enc := SerializeUncompressed(Generator())
	enc[64] ^= 0x01 // corrupt Y's low byte
	if _, err := Deserialize(enc); err == nil {
		t.Fatal("expected error decoding a corrupted point")
	}
}
