// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bigint implements constant-time 256-bit unsigned integer
// arithmetic reduced modulo a runtime-selectable prime field.
//
// Every exported operation takes the field explicitly as a Modulus value;
// there is no process-wide "current field" the way the original firmware
// carried one between setFieldToP/setFieldToN calls. Carrying the field as
// an explicit argument removes the footgun of a caller forgetting which
// field was last installed.
package bigint

import "math/bits"

// Element is a 256-bit unsigned integer stored as four 64-bit limbs in
// little-endian limb order: Element[0] holds the least-significant 64 bits.
type Element [4]uint64

// Cmp is the result of comparing two Elements.
type Cmp int

const (
	Less Cmp = -1
	Equal Cmp = 0
	Greater Cmp = 1
)

// Modulus is a field parameter: the modulus itself plus its precomputed
// two's complement (notN). The shift-and-subtract reduction in Mul
// (reduceWide) does not use notN; it subtracts shifted copies of N directly.
type Modulus struct {
	N    Element
	notN Element // two's complement of N within 256 bits: (^N)+1
}

// NewModulus builds a Modulus from its little-endian limb representation.
func NewModulus(n Element) Modulus {
	m := Modulus{N: n}
	var carry uint64 = 1
	for i := range n {
		m.notN[i] = ^n[i]
	}
	for i := range m.notN {
		sum, c := bits.Add64(m.notN[i], 0, carry)
		m.notN[i] = sum
		carry = c
	}
	return m
}

// Zero sets z to zero.
func Zero() Element { return Element{} }

// SetUint64 returns an Element holding the given small value.
func SetUint64(v uint64) Element { return Element{v, 0, 0, 0} }

// IsZero reports whether z is zero. The comparison touches every limb
// regardless of where a nonzero limb is found.
func (z Element) IsZero() bool {
	var acc uint64
	for _, w := range z {
		acc |= w
	}
	return acc == 0
}

// Cmp3 compares a and b. Every limb is visited regardless of where the
// inputs first differ, so the running time does not depend on the position
// of the most significant differing bit.
func Cmp3(a, b Element) Cmp {
	var gt, lt uint64
	for i := 3; i >= 0; i-- {
		agb := ctGT(a[i], b[i])
		bga := ctGT(b[i], a[i])
		// Only the most significant limb where they differ should decide
		// the result; once gt or lt is set, further limbs must not
		// override it.
		already := gt | lt
		gt |= agb &^ already
		lt |= bga &^ already
	}
	switch {
	case gt != 0:
		return Greater
	case lt != 0:
		return Less
	default:
		return Equal
	}
}

// ctGT returns all-ones if x > y, else zero, without branching on the
// relative magnitude of x and y.
func ctGT(x, y uint64) uint64 {
	_, borrow := bits.Sub64(y, x, 0)
	// borrow == 1 means y < x, i.e. x > y.
	return -borrow
}

// addRaw adds a and b as plain 256-bit integers, returning the 256-bit sum
// and a carry-out bit (0 or 1).
func addRaw(a, b Element) (Element, uint64) {
	var z Element
	var carry uint64
	for i := 0; i < 4; i++ {
		s, c := bits.Add64(a[i], b[i], carry)
		z[i] = s
		carry = c
	}
	return z, carry
}

// subRaw subtracts b from a as plain 256-bit integers, returning the
// (possibly wrapped) difference and a borrow-out bit (0 or 1).
func subRaw(a, b Element) (Element, uint64) {
	var z Element
	var borrow uint64
	for i := 0; i < 4; i++ {
		d, bo := bits.Sub64(a[i], b[i], borrow)
		z[i] = d
		borrow = bo
	}
	return z, borrow
}

func selectElement(mask uint64, a, b Element) Element {
	var z Element
	for i := range z {
		z[i] = (a[i] & mask) | (b[i] &^ mask)
	}
	return z
}

// AddMod returns (a + b) mod m.N. The sum may overflow 256 bits by at most
// one bit and exceed the modulus by at most one further subtraction; both
// cases are folded back in with conditional (constant-time-selected)
// subtractions.
func AddMod(a, b Element, m Modulus) Element {
	sum, carry := addRaw(a, b)
	reduced, borrow := subRaw(sum, m.N)
	// If the raw addition carried out of 256 bits, the true sum exceeds
	// m.N regardless of what the 256-bit subtraction's borrow says, so the
	// reduced value must be used. Otherwise use it only when the
	// subtraction did not borrow (sum >= m.N).
	useReduced := (carry != 0) || (borrow == 0)
	mask := uint64(0)
	if useReduced {
		mask = ^uint64(0)
	}
	return selectElement(mask, reduced, sum)
}

// SubNoMod returns a - b as a 256-bit wraparound difference without
// reducing modulo anything, matching the spec's "sub-no-mod" primitive.
func SubNoMod(a, b Element) Element {
	z, _ := subRaw(a, b)
	return z
}

// SubMod returns (a - b) mod m.N.
func SubMod(a, b Element, m Modulus) Element {
	diff, borrow := subRaw(a, b)
	var mask uint64
	if borrow != 0 {
		mask = ^uint64(0)
	}
	corrected, _ := addRaw(diff, m.N)
	return selectElement(mask, corrected, diff)
}

// ShiftRightOne shifts z right by one bit, discarding the bit shifted out,
// without any modular reduction.
func ShiftRightOne(z Element) Element {
	var out Element
	var carryIn uint64
	for i := 3; i >= 0; i-- {
		out[i] = (z[i] >> 1) | (carryIn << 63)
		carryIn = z[i] & 1
	}
	return out
}

// Endian swaps the 32 constituent bytes of z between little- and
// big-endian byte order (self-inverse).
func (z Element) Endian() Element {
	b := z.BytesLE()
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return fromBytesLE(b)
}

// BytesLE returns z's 32-byte little-endian encoding.
func (z Element) BytesLE() [32]byte {
	var out [32]byte
	for i, w := range z {
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(w >> (8 * j))
		}
	}
	return out
}

func fromBytesLE(b [32]byte) Element {
	var z Element
	for i := range z {
		var w uint64
		for j := 7; j >= 0; j-- {
			w = (w << 8) | uint64(b[i*8+j])
		}
		z[i] = w
	}
	return z
}

// SetBytesBE interprets b (must be 32 bytes) as a big-endian integer.
func SetBytesBE(b []byte) Element {
	var le [32]byte
	for i := 0; i < 32; i++ {
		le[i] = b[31-i]
	}
	return fromBytesLE(le)
}

// BytesBE returns z's 32-byte big-endian encoding.
func (z Element) BytesBE() [32]byte {
	le := z.BytesLE()
	var be [32]byte
	for i := 0; i < 32; i++ {
		be[i] = le[31-i]
	}
	return be
}
