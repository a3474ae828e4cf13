// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bigint

// InvertMod returns a^-1 mod m.N via Fermat's little theorem (m.N must be
// prime): a^(N-2) mod N, computed by binary square-and-multiply. The
// exponent N-2 is a curve parameter, not secret data, so branching on its
// bits (as the square-and-multiply loop does) leaks nothing; only the base
// a is secret, and every bit of the exponent performs a squaring plus a
// constant-time-selected conditional multiply.
func InvertMod(a Element, m Modulus) Element {
	exponent := SubNoMod(m.N, SetUint64(2))

	result := SetUint64(1)
	base := a
	for i := 0; i < 256; i++ {
		bit := exponentBit(exponent, i)

		multiplied := MulMod(result, base, m)
		mask := uint64(0)
		if bit != 0 {
			mask = ^uint64(0)
		}
		result = selectElement(mask, multiplied, result)

		base = MulMod(base, base, m)
	}
	return result
}

func exponentBit(e Element, i int) uint64 {
	limb := e[i/64]
	return (limb >> uint(i%64)) & 1
}
