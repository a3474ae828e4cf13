// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txparser

import (
	"crypto/sha256"
	"fmt"

	"github.com/EXCCoin/hwwallet-core/address"
	"github.com/EXCCoin/hwwallet-core/hostio"
)

// Limits chosen to keep a worst-case transaction within MaxTransactionSize,
// the stricter of the two conflicting RAM budgets carried forward from the
// original firmware revisions.
const (
	MaxTransactionSize = 200000
	MaxInputs          = 500
	MaxOutputs         = 500

	txVersion       = 1
	sequenceFinal   = 0xFFFFFFFF
	outputScriptLen = 0x19 // OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG
	sighashAll      = 1
	maxSatoshis     = 21000000 * 100000000 // 21,000,000 BTC in satoshis

	opDup         = 0x76
	opHash160     = 0xa9
	opData20      = 0x14
	opEqualVerify = 0x88
	opCheckSig    = 0xac
)

// OutputSeenFunc is invoked once per output, in output order, before any
// consent interjection is issued for the enclosing signing request.
type OutputSeenFunc func(amountText, addressText string)

// Parse consumes exactly length bytes from stream (in the absence of a
// stream read error — see ErrorCode.Error's ReadError case), producing the
// double-SHA-256 signature hash (every byte) and single-SHA-256
// transaction-identity hash (every byte except input scripts) of a
// standard single-version-1, P2PKH-only transaction.
//
// versionByte selects which network's address version byte new-output
// addresses are rendered under.
func Parse(stream hostio.ByteStream, length uint32, versionByte byte, onOutput OutputSeenFunc) (sigHash, txHash [32]byte, err ErrorCode) {
	if length > MaxTransactionSize {
		drainStream(stream, length)
		return [32]byte{}, [32]byte{}, TooLarge
	}

	p := &parser{
		stream:    stream,
		remaining: length,
		sig:       sha256.New(),
		tx:        sha256.New(),
	}

	code := p.run(versionByte, onOutput)
	if code == ReadError {
		return [32]byte{}, [32]byte{}, ReadError
	}
	if code == Ok && p.remaining != 0 {
		code = InvalidFormat
	}
	if code != Ok {
		p.drainRemaining()
		return [32]byte{}, [32]byte{}, code
	}

	first := p.sig.Sum(nil)
	second := sha256.Sum256(first)
	var sh, th [32]byte
	copy(sh[:], second[:])
	copy(th[:], p.tx.Sum(nil))
	return sh, th, Ok
}

func drainStream(stream hostio.ByteStream, length uint32) {
	for i := uint32(0); i < length; i++ {
		if _, err := stream.GetByte(); err != nil {
			return
		}
	}
}

// parser carries the two concurrent hash contexts and the byte budget for
// one Parse call.
type parser struct {
	stream    hostio.ByteStream
	remaining uint32
	sig       hasher
	tx        hasher
	skipTx    bool
}

// hasher is the subset of hash.Hash this package needs; named so the field
// types above read clearly without importing hash directly.
type hasher interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
}

func (p *parser) getByte() (byte, ErrorCode) {
	if p.remaining == 0 {
		return 0, InvalidFormat
	}
	b, err := p.stream.GetByte()
	p.remaining--
	if err != nil {
		return 0, ReadError
	}
	p.sig.Write([]byte{b})
	if !p.skipTx {
		p.tx.Write([]byte{b})
	}
	return b, Ok
}

func (p *parser) readBytes(n int) ([]byte, ErrorCode) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, code := p.getByte()
		if code != Ok {
			return nil, code
		}
		out[i] = b
	}
	return out, Ok
}

func (p *parser) readU32LE() (uint32, ErrorCode) {
	b, code := p.readBytes(4)
	if code != Ok {
		return 0, code
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, Ok
}

func (p *parser) readU64LE() (uint64, ErrorCode) {
	b, code := p.readBytes(8)
	if code != Ok {
		return 0, code
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, Ok
}

// readVarint implements the accepted subset of Bitcoin's varint encoding:
// a prefix byte under 0xfd is the value itself, 0xfd/0xfe introduce a
// 2-byte/4-byte little-endian value, and 0xff is rejected outright as out
// of range for anything this parser needs to represent.
func (p *parser) readVarint() (uint64, ErrorCode) {
	prefix, code := p.getByte()
	if code != Ok {
		return 0, code
	}
	switch {
	case prefix < 0xfd:
		return uint64(prefix), Ok
	case prefix == 0xfd:
		b, code := p.readBytes(2)
		if code != Ok {
			return 0, code
		}
		return uint64(b[0]) | uint64(b[1])<<8, Ok
	case prefix == 0xfe:
		v, code := p.readU32LE()
		return uint64(v), code
	default:
		return 0, InvalidFormat
	}
}

func (p *parser) drainRemaining() {
	for p.remaining > 0 {
		if _, err := p.stream.GetByte(); err != nil {
			p.remaining = 0
			return
		}
		p.remaining--
	}
}

func (p *parser) run(versionByte byte, onOutput OutputSeenFunc) ErrorCode {
	version, code := p.readU32LE()
	if code != Ok {
		return code
	}
	if version != txVersion {
		return NonStandard
	}

	numInputs, code := p.readVarint()
	if code != Ok {
		return code
	}
	if numInputs < 1 || numInputs > MaxInputs {
		return TooManyInputs
	}
	for i := uint64(0); i < numInputs; i++ {
		if code := p.parseInput(); code != Ok {
			return code
		}
	}

	numOutputs, code := p.readVarint()
	if code != Ok {
		return code
	}
	if numOutputs < 1 || numOutputs > MaxOutputs {
		return TooManyOutputs
	}
	for i := uint64(0); i < numOutputs; i++ {
		if code := p.parseOutput(versionByte, onOutput); code != Ok {
			return code
		}
	}

	locktime, code := p.readU32LE()
	if code != Ok {
		return code
	}
	if locktime != 0 {
		return NonStandard
	}

	hashtype, code := p.readU32LE()
	if code != Ok {
		return code
	}
	if hashtype != sighashAll {
		return NonStandard
	}

	return Ok
}

func (p *parser) parseInput() ErrorCode {
	if _, code := p.readBytes(32); code != Ok { // previous-tx hash
		return code
	}
	if _, code := p.readU32LE(); code != Ok { // previous output index
		return code
	}

	scriptLen, code := p.readVarint()
	if code != Ok {
		return code
	}
	if scriptLen > MaxTransactionSize {
		return InvalidReference
	}

	p.skipTx = true
	_, code = p.readBytes(int(scriptLen))
	p.skipTx = false
	if code != Ok {
		return code
	}

	sequence, code := p.readU32LE()
	if code != Ok {
		return code
	}
	if sequence != sequenceFinal {
		return NonStandard
	}
	return Ok
}

func (p *parser) parseOutput(versionByte byte, onOutput OutputSeenFunc) ErrorCode {
	amount, code := p.readU64LE()
	if code != Ok {
		return code
	}
	if amount > maxSatoshis {
		return InvalidAmount
	}

	scriptLen, code := p.readVarint()
	if code != Ok {
		return code
	}
	if scriptLen != outputScriptLen {
		return NonStandard
	}

	script, code := p.readBytes(int(scriptLen))
	if code != Ok {
		return code
	}

	hash160 := extractPubKeyHash(script)
	if hash160 == nil {
		return NonStandard
	}

	if onOutput != nil {
		onOutput(formatAmount(amount), address.Encode(versionByte, hash160))
	}
	return Ok
}

// extractPubKeyHash returns the 20-byte recipient hash if script is exactly
// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG, else nil.
func extractPubKeyHash(script []byte) []byte {
	if len(script) != 25 {
		return nil
	}
	if script[0] != opDup || script[1] != opHash160 || script[2] != opData20 {
		return nil
	}
	if script[23] != opEqualVerify || script[24] != opCheckSig {
		return nil
	}
	return script[3:23]
}

// formatAmount renders sats as a decimal BTC string with exactly 8
// fractional digits, e.g. 1234567 -> "0.01234567".
func formatAmount(sats uint64) string {
	const satsPerBTC = 100000000
	whole := sats / satsPerBTC
	frac := sats % satsPerBTC
	return fmt.Sprintf("%d.%08d", whole, frac)
}
