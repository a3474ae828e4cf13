// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bigint

import "math/bits"

// wide is a 512-bit unsigned integer, little-endian limb order, used only
// as the intermediate product of two Elements and its reduction.
type wide [8]uint64

func mulWide(a, b Element) wide {
	var z wide
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			lo, c1 := bits.Add64(lo, z[i+j], 0)
			lo, c2 := bits.Add64(lo, carry, 0)
			z[i+j] = lo
			carry = hi + c1 + c2
		}
		z[i+4] += carry
	}
	return z
}

func subWide(a, b wide) (wide, uint64) {
	var z wide
	var borrow uint64
	for i := 0; i < 8; i++ {
		d, bo := bits.Sub64(a[i], b[i], borrow)
		z[i] = d
		borrow = bo
	}
	return z, borrow
}

func selectWide(mask uint64, a, b wide) wide {
	var z wide
	for i := range z {
		z[i] = (a[i] & mask) | (b[i] &^ mask)
	}
	return z
}

// shiftLeftWide returns m (a 256-bit value) shifted left by s bits (0 <=
// s <= 256) and widened to 512 bits. s is always a public loop counter
// (never secret data), so branching on it leaks nothing sensitive.
func shiftLeftWide(m Element, s uint) wide {
	var out wide
	wordShift := int(s / 64)
	bitShift := s % 64
	for i := 0; i < 4; i++ {
		idx := i + wordShift
		if idx >= 8 {
			continue
		}
		if bitShift == 0 {
			out[idx] |= m[i]
			continue
		}
		out[idx] |= m[i] << bitShift
		if idx+1 < 8 {
			out[idx+1] |= m[i] >> (64 - bitShift)
		}
	}
	return out
}

func wideLow(w wide) Element {
	return Element{w[0], w[1], w[2], w[3]}
}

// reduceWide reduces a 512-bit product modulo m.N using the iterative
// shift-and-subtract strategy the spec describes: for decreasing shift
// amounts k, conditionally subtract N<<k from the running remainder. Every
// one of the 257 steps executes the same shift/subtract/select sequence
// regardless of whether the subtraction was "needed", so the timing does
// not depend on the product's value.
func reduceWide(product wide, m Modulus) Element {
	r := product
	for s := 256; s >= 0; s-- {
		shifted := shiftLeftWide(m.N, uint(s))
		diff, borrow := subWide(r, shifted)
		mask := uint64(0)
		if borrow == 0 {
			mask = ^uint64(0)
		}
		r = selectWide(mask, diff, r)
	}
	return wideLow(r)
}

// MulMod returns (a * b) mod m.N.
func MulMod(a, b Element, m Modulus) Element {
	product := mulWide(a, b)
	return reduceWide(product, m)
}

// ReduceMod reduces an Element already known to be less than 2*m.N (e.g.
// after a single addition) down to canonical range. It is also safe to call
// on an arbitrary Element, since reduceWide's 257-step ladder handles any
// 256-bit input.
func ReduceMod(a Element, m Modulus) Element {
	var wide8 wide
	copy(wide8[:4], a[:])
	return reduceWide(wide8, m)
}
