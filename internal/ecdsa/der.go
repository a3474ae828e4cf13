// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

// SighashAll is the single hash-type byte BIP 62's mainnet relay policy
// appends after a DER-encoded signature.
const SighashAll = 0x01

// EncodeDER serialises sig as SEQUENCE { INTEGER r, INTEGER s } followed
// by the single SIGHASH_ALL byte, per the spec's wire format. The maximum
// possible length is 73 bytes (2 + 2*(2+33) + 1); the buffer is allocated
// at that size and truncated to the integers' actual shortest-form
// lengths.
//
// DER integers are two's-complement signed, so a value whose top bit is
// set needs a leading 0x00 byte to keep it positive; DER also requires the
// shortest encoding, so redundant leading zero bytes are stripped unless
// removing one would flip the sign. S is stripped first because pruning R
// would shift S's offset in the buffer, not the other way around.
func EncodeDER(sig Signature) []byte {
	buf := make([]byte, 0, 73)
	buf = append(buf, 0x30, 0x00) // SEQUENCE, length patched below

	sBytes := derInt(sig.S.BytesBE())
	rBytes := derInt(sig.R.BytesBE())

	buf = append(buf, 0x02, byte(len(rBytes)))
	buf = append(buf, rBytes...)
	buf = append(buf, 0x02, byte(len(sBytes)))
	buf = append(buf, sBytes...)

	buf[1] = byte(len(buf) - 2)
	buf = append(buf, SighashAll)
	return buf
}

// derInt converts a 32-byte big-endian unsigned integer into its DER
// INTEGER content octets: strip leading zero bytes down to the shortest
// representation, then re-prepend a single 0x00 if the remaining high bit
// is set.
func derInt(be [32]byte) []byte {
	i := 0
	for i < len(be)-1 && be[i] == 0x00 {
		i++
	}
	trimmed := be[i:]
	if trimmed[0]&0x80 != 0 {
		out := make([]byte, 0, len(trimmed)+1)
		out = append(out, 0x00)
		out = append(out, trimmed...)
		return out
	}
	return append([]byte(nil), trimmed...)
}
