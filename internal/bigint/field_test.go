// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bigint

import "testing"

func TestAddSubModRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		a, b Element
	}{
		{"small", SetUint64(3), SetUint64(5)},
		{"a==n-1", SubNoMod(FieldP.N, SetUint64(1)), SetUint64(2)},
		{"zero", Zero(), SetUint64(123456789)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sum := AddMod(test.a, test.b, FieldP)
			back := SubMod(sum, test.b, FieldP)
			if Cmp3(back, ReduceMod(test.a, FieldP)) != Equal {
				t.Fatalf("(a+b)-b = %v, want %v", back, test.a)
			}
		})
	}
}

func TestMulModIdentity(t *testing.T) {
	one := SetUint64(1)
	v := SetUint64(987654321)
	got := MulMod(v, one, FieldP)
	if Cmp3(got, v) != Equal {
		t.Fatalf("v*1 = %v, want %v", got, v)
	}
}

func TestInvertMod(t *testing.T) {
	v := SetUint64(1234567891)
	inv := InvertMod(v, FieldP)
	product := MulMod(v, inv, FieldP)
	if Cmp3(product, SetUint64(1)) != Equal {
		t.Fatalf("v*v^-1 = %v, want 1", product)
	}
}

func TestCmp3Symmetry(t *testing.T) {
	a := SetUint64(10)
	b := SetUint64(20)
	if Cmp3(a, b) != Less {
		t.Fatal("expected a < b")
	}
	if Cmp3(b, a) != Greater {
		t.Fatal("expected b > a")
	}
	if Cmp3(a, a) != Equal {
		t.Fatal("expected a == a")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	v := SetUint64(0xdeadbeefcafebabe)
	be := v.BytesBE()
	got := SetBytesBE(be[:])
	if Cmp3(got, v) != Equal {
		t.Fatalf("round trip mismatch: got %v want %v", got, v)
	}
}

func TestShiftRightOne(t *testing.T) {
	v := SetUint64(4)
	got := ShiftRightOne(v)
	if Cmp3(got, SetUint64(2)) != Equal {
		t.Fatalf("4>>1 = %v, want 2", got)
	}
}
