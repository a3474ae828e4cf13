// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txparser implements the streaming Bitcoin transaction parser:
// single-pass, fixed memory, producing both the per-input signature hash
// and the input-invariant transaction-identity hash as it goes.
package txparser

// ErrorCode is the txparser subsystem's namespaced error enum, distinct
// from wallet.ErrorCode and protocol's miscellaneous errors.
type ErrorCode int

const (
	Ok ErrorCode = iota
	InvalidFormat
	TooManyInputs
	TooManyOutputs
	TooLarge
	NonStandard
	InvalidAmount
	InvalidReference
	ReadError
)

func (e ErrorCode) Error() string {
	switch e {
	case Ok:
		return "ok"
	case InvalidFormat:
		return "invalid transaction format"
	case TooManyInputs:
		return "too many inputs"
	case TooManyOutputs:
		return "too many outputs"
	case TooLarge:
		return "transaction exceeds maximum size"
	case NonStandard:
		return "non-standard transaction"
	case InvalidAmount:
		return "output amount out of range"
	case InvalidReference:
		return "invalid previous-output reference"
	case ReadError:
		return "stream read error"
	default:
		return "unknown transaction parse error"
	}
}
