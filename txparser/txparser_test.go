// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txparser

import (
	"crypto/sha256"
	"io"
	"testing"

	"github.com/EXCCoin/hwwallet-core/address"
	"github.com/davecgh/go-spew/spew"
)

// byteStream is a fixed-buffer hostio.ByteStream backed by an in-memory
// slice, standing in for the network transport during tests.
type byteStream struct {
	data []byte
	pos  int
}

func (s *byteStream) GetByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

func (s *byteStream) PutByte(b byte) error {
	s.data = append(s.data, b)
	return nil
}

func putU32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func putU64LE(buf []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(v>>(8*uint(i))))
	}
	return buf
}

func p2pkhScript(hash160 [20]byte) []byte {
	out := make([]byte, 0, 25)
	out = append(out, opDup, opHash160, opData20)
	out = append(out, hash160[:]...)
	out = append(out, opEqualVerify, opCheckSig)
	return out
}

// buildTransaction assembles a standard 1-input/2-output transaction with
// the given output amounts and recipient hashes, mirroring the shape of
// the spec's worked example (one input, two P2PKH outputs of 6 BTC and
// 0.01234567 BTC), but built here from known components so the expected
// double-SHA-256 can be computed independently rather than transcribed
// from an external fixture.
func buildTransaction(amounts []uint64, hashes [][20]byte) []byte {
	var tx []byte
	tx = putU32LE(tx, txVersion)

	tx = append(tx, 0x01) // num_inputs = 1
	var prevHash [32]byte
	for i := range prevHash {
		prevHash[i] = byte(i)
	}
	tx = append(tx, prevHash[:]...)
	tx = putU32LE(tx, 0) // previous output index
	tx = append(tx, 0x00) // empty scriptSig
	tx = putU32LE(tx, sequenceFinal)

	tx = append(tx, byte(len(amounts))) // num_outputs
	for i, amt := range amounts {
		tx = putU64LE(tx, amt)
		tx = append(tx, outputScriptLen)
		tx = append(tx, p2pkhScript(hashes[i])...)
	}

	tx = putU32LE(tx, 0)         // locktime
	tx = putU32LE(tx, sighashAll) // hashtype trailer
	return tx
}

func hashOf(b byte) [20]byte {
	var h [20]byte
	for i := range h {
		h[i] = b
	}
	return h
}

func TestParseKnownGoodTransaction(t *testing.T) {
	amounts := []uint64{600000000, 1234567} // 6.0 BTC, 0.01234567 BTC
	hashes := [][20]byte{hashOf(0xAA), hashOf(0xBB)}
	tx := buildTransaction(amounts, hashes)

	var seen []string
	onOutput := func(amountText, addressText string) {
		seen = append(seen, amountText+" "+addressText)
	}

	stream := &byteStream{data: tx}
	sigHash, txHash, code := Parse(stream, uint32(len(tx)), address.MainNetPubKeyHashAddrID, onOutput)
	if code != Ok {
		t.Fatalf("Parse: %v", code)
	}
	if len(seen) != 2 {
		t.Fatalf("new_output_seen called %d times, want 2", len(seen))
	}
	wantFirst := "6.00000000 " + address.Encode(address.MainNetPubKeyHashAddrID, hashes[0][:])
	if seen[0] != wantFirst {
		t.Fatalf("first output = %q, want %q", seen[0], wantFirst)
	}
	wantSecond := "0.01234567 " + address.Encode(address.MainNetPubKeyHashAddrID, hashes[1][:])
	if seen[1] != wantSecond {
		t.Fatalf("second output = %q, want %q", seen[1], wantSecond)
	}

	want := sha256.Sum256(tx)
	wantSigHash := sha256.Sum256(want[:])
	if sigHash != wantSigHash {
		t.Fatalf("sigHash mismatch:\ngot:  %s\nwant: %s", spew.Sdump(sigHash), spew.Sdump(wantSigHash))
	}

	wantTxHash := sha256.Sum256(tx) // no input script bytes present to exclude
	if txHash != wantTxHash {
		t.Fatalf("txHash mismatch:\ngot:  %s\nwant: %s", spew.Sdump(txHash), spew.Sdump(wantTxHash))
	}
	if stream.pos != len(tx) {
		t.Fatalf("parser consumed %d bytes, want %d", stream.pos, len(tx))
	}
}

func TestParseBlankOutputScriptIsNonStandard(t *testing.T) {
	tx := buildTransaction([]uint64{100000000}, [][20]byte{hashOf(0xCC)})

	// Corrupt the sole output's script length to zero (a blank script),
	// leaving the rest of the stream shaped like a valid transaction.
	scriptLenOffset := 4 + 1 + 32 + 4 + 1 + 4 + 1 + 8
	tx[scriptLenOffset] = 0x00

	stream := &byteStream{data: tx}
	_, _, code := Parse(stream, uint32(len(tx)), address.MainNetPubKeyHashAddrID, nil)
	if code != NonStandard {
		t.Fatalf("Parse with blank output script = %v, want NonStandard", code)
	}
	if stream.pos != len(tx) {
		t.Fatalf("parser consumed %d bytes, want %d (totality under error)", stream.pos, len(tx))
	}
}

func TestParseRejectsWrongVersion(t *testing.T) {
	tx := buildTransaction([]uint64{100000000}, [][20]byte{hashOf(0x11)})
	tx[0] = 2 // version 2

	stream := &byteStream{data: tx}
	_, _, code := Parse(stream, uint32(len(tx)), address.MainNetPubKeyHashAddrID, nil)
	if code != NonStandard {
		t.Fatalf("Parse with wrong version = %v, want NonStandard", code)
	}
	if stream.pos != len(tx) {
		t.Fatalf("parser consumed %d bytes, want %d", stream.pos, len(tx))
	}
}

func TestParseRejectsNonFinalSequence(t *testing.T) {
	tx := buildTransaction([]uint64{100000000}, [][20]byte{hashOf(0x22)})
	sequenceOffset := 4 + 1 + 32 + 4 + 1
	tx[sequenceOffset] = 0x00 // sequence no longer 0xFFFFFFFF

	stream := &byteStream{data: tx}
	_, _, code := Parse(stream, uint32(len(tx)), address.MainNetPubKeyHashAddrID, nil)
	if code != NonStandard {
		t.Fatalf("Parse with non-final sequence = %v, want NonStandard", code)
	}
}

func TestParseRejectsOversizeAmount(t *testing.T) {
	tx := buildTransaction([]uint64{maxSatoshis + 1}, [][20]byte{hashOf(0x33)})

	stream := &byteStream{data: tx}
	_, _, code := Parse(stream, uint32(len(tx)), address.MainNetPubKeyHashAddrID, nil)
	if code != InvalidAmount {
		t.Fatalf("Parse with oversize amount = %v, want InvalidAmount", code)
	}
}

func TestParseTooManyInputsRejected(t *testing.T) {
	var tx []byte
	tx = putU32LE(tx, txVersion)
	tx = append(tx, 0xfd) // varint prefix for 2-byte count
	tx = append(tx, byte(MaxInputs+1), byte((MaxInputs+1)>>8))

	stream := &byteStream{data: tx}
	_, _, code := Parse(stream, uint32(len(tx)), address.MainNetPubKeyHashAddrID, nil)
	if code != TooManyInputs {
		t.Fatalf("Parse with num_inputs > MaxInputs = %v, want TooManyInputs", code)
	}
}

func TestParseVarintRejects8ByteForm(t *testing.T) {
	var tx []byte
	tx = putU32LE(tx, txVersion)
	tx = append(tx, 0xff) // 8-byte varint prefix, always rejected
	tx = append(tx, make([]byte, 8)...)

	stream := &byteStream{data: tx}
	_, _, code := Parse(stream, uint32(len(tx)), address.MainNetPubKeyHashAddrID, nil)
	if code != InvalidFormat {
		t.Fatalf("Parse with 0xff varint prefix = %v, want InvalidFormat", code)
	}
}

func TestParseTruncatedStreamIsReadError(t *testing.T) {
	tx := buildTransaction([]uint64{100000000}, [][20]byte{hashOf(0x44)})
	truncated := tx[:len(tx)-5]

	stream := &byteStream{data: truncated}
	_, _, code := Parse(stream, uint32(len(tx)), address.MainNetPubKeyHashAddrID, nil)
	if code != ReadError {
		t.Fatalf("Parse on truncated stream = %v, want ReadError", code)
	}
}

func TestParseTooLargeRejectsUpfront(t *testing.T) {
	stream := &byteStream{data: make([]byte, 0)}
	_, _, code := Parse(stream, MaxTransactionSize+1, address.MainNetPubKeyHashAddrID, nil)
	if code != TooLarge {
		t.Fatalf("Parse with length > MaxTransactionSize = %v, want TooLarge", code)
	}
}
