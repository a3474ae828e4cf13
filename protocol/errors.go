// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package protocol implements the packet-level host dialogue: framing,
// message dispatch, the consent-interjection state machine, and the
// transaction-signing flow built on top of wallet and txparser.
package protocol

import "fmt"

// ErrorCode is the protocol subsystem's namespaced miscellaneous-error
// enum: transport and dialogue failures that are neither a wallet error
// nor a transaction-parse error.
type ErrorCode int

const (
	Ok ErrorCode = iota
	InvalidPacket
	UnexpectedPacket
	PermissionDeniedUser
	PermissionDeniedHost
	OtpMismatch
	ParameterTooLarge
)

func (e ErrorCode) Error() string {
	switch e {
	case Ok:
		return "ok"
	case InvalidPacket:
		return "invalid packet"
	case UnexpectedPacket:
		return "unexpected packet"
	case PermissionDeniedUser:
		return "permission denied by user"
	case PermissionDeniedHost:
		return "permission denied by host"
	case OtpMismatch:
		return "otp mismatch"
	case ParameterTooLarge:
		return "parameter too large"
	default:
		return "unknown protocol error"
	}
}

// ErrorSet identifies which taxonomy (Miscellaneous, Wallet, Transaction)
// a Failure payload's code belongs to, replacing the original firmware's
// single numeric code whose value collided across taxonomies (wallet 5 vs
// transaction 5).
const (
	setMisc ErrorSet = 0
	setWallet ErrorSet = 1
	setTransaction ErrorSet = 2
)

type ErrorSet uint16

// FailurePayload is the content of a Failure response packet: a
// namespaced error code plus a human-readable message for on-device or
// host-side logging.
type FailurePayload struct {
	Set     ErrorSet
	Code    uint16
	Message string
}

// NewFailure builds a FailurePayload for a protocol-level error.
func NewFailure(set ErrorSet, code uint16, err error) FailurePayload {
	return FailurePayload{Set: set, Code: code, Message: fmt.Sprintf("%v", err)}
}
