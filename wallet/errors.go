// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet implements the encrypted wallet record format, its
// lifecycle (new/init/uninit), and address-handle-to-key derivation.
package wallet

// ErrorCode is the wallet subsystem's single namespaced error enum,
// distinct from txparser.ErrorCode and protocol's miscellaneous errors
// (see the spec's §9 discussion of the original numeric-code collision
// between taxonomies).
type ErrorCode int

const (
	Ok ErrorCode = iota
	Full
	Empty
	ReadError
	WriteError
	NotThere
	NotLoaded
	InvalidHandle
	BackupError
	RngFailure
	InvalidWalletNum
	InvalidOperation
	AlreadyExists
	BadAddress
)

func (e ErrorCode) Error() string {
	switch e {
	case Ok:
		return "ok"
	case Full:
		return "wallet is full"
	case Empty:
		return "wallet is empty"
	case ReadError:
		return "storage read error"
	case WriteError:
		return "storage write error"
	case NotThere:
		return "wallet not present or password incorrect"
	case NotLoaded:
		return "no wallet is loaded"
	case InvalidHandle:
		return "invalid address handle"
	case BackupError:
		return "backup operation failed"
	case RngFailure:
		return "hardware RNG self-test failing"
	case InvalidWalletNum:
		return "invalid wallet slot"
	case InvalidOperation:
		return "operation invalid for current wallet state"
	case AlreadyExists:
		return "a wallet already occupies this slot"
	case BadAddress:
		return "address handle is a reserved sentinel"
	default:
		return "unknown wallet error"
	}
}
