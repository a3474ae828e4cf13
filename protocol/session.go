// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/EXCCoin/hwwallet-core/hostio"
	"github.com/EXCCoin/hwwallet-core/storage"
	"github.com/EXCCoin/hwwallet-core/wallet"
)

// Session is the one owned state struct the dispatch loop threads
// through every packet: the session id the host echoes to detect an
// unexpected device reset, the most recently approved transaction
// identity (so a multi-input signing dialogue needs only one consent),
// and the single Loaded/Unloaded wallet slot.
type Session struct {
	ID uint64

	lastApprovedTxHash  [32]byte
	lastApprovedValid   bool
	loadedSlot          int
	wlt                 *wallet.Wallet

	store   *storage.Store
	stream  hostio.ByteStream
	consent *Consent
	rng     hostio.RandomSource
}

// maxAddressesPerWallet bounds make-new-address, matching the bitset
// sizing wallet.Wallet issues handles against.
const maxAddressesPerWallet = storage.MaxAddressesPerWallet

// NewSession constructs a fresh session (equivalent to the device's
// Initialize message): a freshly drawn session id, no approved
// transaction, no loaded wallet.
func NewSession(store *storage.Store, stream hostio.ByteStream, ui hostio.UserInterface, rng hostio.RandomSource) *Session {
	s := &Session{
		store:   store,
		stream:  stream,
		consent: NewConsent(stream, ui, rng),
		rng:     rng,
	}
	s.Reset()
	return s
}

// Reset regenerates the session id and clears approval/load state,
// invoked by NewSession and by the Initialize message (see dispatch.go),
// so the host can detect an unexpected device reset by the session id
// changing. A FatalError returned from ServeOne does not call Reset.
func (s *Session) Reset() {
	var idBytes [8]byte
	if _, err := rand.Read(idBytes[:]); err == nil {
		s.ID = binary.BigEndian.Uint64(idBytes[:])
	}
	s.lastApprovedValid = false
	if s.wlt != nil {
		s.wlt.UninitWallet()
	}
	s.wlt = nil
}

// approvedForSigning reports whether txHash matches the last transaction
// the user approved signing for, letting a multi-input signing dialogue
// reuse one consent across inputs.
func (s *Session) approvedForSigning(txHash [32]byte) bool {
	return s.lastApprovedValid && s.lastApprovedHashEquals(txHash)
}

func (s *Session) lastApprovedHashEquals(txHash [32]byte) bool {
	return s.lastApprovedTxHash == txHash
}

func (s *Session) recordApproval(txHash [32]byte) {
	s.lastApprovedTxHash = txHash
	s.lastApprovedValid = true
}
