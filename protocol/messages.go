// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

// MessageID identifies a packet's payload type. The ranges below
// partition the id space by concern, mirroring the way the teacher's wire
// package separates message types even though here a single 16-bit id
// space (rather than per-type Go types keyed by command string) is used,
// since the device-to-host wire is a fixed framing rather than a
// self-describing command string.
type MessageID uint16

const (
	// Initialization / ping.
	MsgInitialize MessageID = iota + 1
	MsgPing
	MsgFeatures

	// Wallet management.
	MsgListWallets
	MsgNewWallet
	MsgRestoreWallet
	MsgDeleteWallet
	MsgLoadWallet
	MsgBackupWallet
	MsgChangeWalletName
	MsgChangeEncryptionKey
	MsgFormat

	// Address derivation.
	MsgNewAddress
	MsgGetNumAddresses
	MsgGetPublicKey

	// Signing.
	MsgSignTransaction

	// Device info.
	MsgGetUUID
	MsgGetEntropy
	MsgGetMasterKey

	// Interjection requests (device -> host).
	MsgButtonRequest
	MsgPinRequest
	MsgOtpRequest

	// Interjection responses (host -> device).
	MsgButtonAck
	MsgButtonCancel
	MsgPinAck
	MsgPinCancel
	MsgOtpAck
	MsgOtpCancel

	// Terminal responses.
	MsgSuccess
	MsgFailure

	// Payload-carrying responses.
	MsgAddress
	MsgPublicKey
	MsgSignature
	MsgUUID
	MsgEntropy
	MsgMasterKey
	MsgWalletList
	// MsgOutputSeen is a one-way, unacknowledged notification the device
	// sends once per transaction output during SignTransaction, in output
	// order and before the signing ButtonRequest, so the host can render
	// every destination and amount before the user is asked to approve.
	MsgOutputSeen
)

// mutatingOrKeyRevealing marks the message ids whose dispatch must obtain
// user consent (a button, pin, or otp interjection) before any
// non-volatile write or key-bearing response, per the consent-enforcement
// invariant. MsgSignTransaction is deliberately absent: its handler runs
// its own button interjection, but only when the transaction's identity
// hash differs from the one most recently approved, so a multi-input
// signing dialogue across several SignTransaction calls needs only one
// approval instead of one per call.
var mutatingOrKeyRevealing = map[MessageID]bool{
	MsgNewWallet:           true,
	MsgRestoreWallet:       true,
	MsgDeleteWallet:        true,
	MsgLoadWallet:          true,
	MsgBackupWallet:        true,
	MsgChangeWalletName:    true,
	MsgChangeEncryptionKey: true,
	MsgFormat:              true,
	MsgNewAddress:          true,
	MsgGetPublicKey:        true,
	MsgGetMasterKey:        true,
}

// RequiresConsent reports whether dispatching id must run the
// consent-interjection state machine before completing.
func RequiresConsent(id MessageID) bool {
	return mutatingOrKeyRevealing[id]
}
