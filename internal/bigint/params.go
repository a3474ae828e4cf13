// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bigint

// FieldP and FieldN are the two moduli this firmware core ever needs:
// secp256k1's base field prime p, and the order n of the generator
// subgroup. Every caller that needs one of these passes it explicitly
// instead of relying on a previously "installed" global, per the
// redesign called out for the original firmware's setFieldToP/setFieldToN
// pattern.
var (
	FieldP = NewModulus(Element{
		0xFFFFFFFEFFFFFC2F,
		0xFFFFFFFFFFFFFFFF,
		0xFFFFFFFFFFFFFFFF,
		0xFFFFFFFFFFFFFFFF,
	})

	FieldN = NewModulus(Element{
		0xBFD25E8CD0364141,
		0xBAAEDCE6AF48A03B,
		0xFFFFFFFFFFFFFFFE,
		0xFFFFFFFFFFFFFFFF,
	})
)
