// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/EXCCoin/hwwallet-core/address"
	"github.com/EXCCoin/hwwallet-core/internal/ecdsa"
	"github.com/EXCCoin/hwwallet-core/storage"
	"github.com/EXCCoin/hwwallet-core/txparser"
	"github.com/EXCCoin/hwwallet-core/wallet"
)

// FatalError is returned by ServeOne when a fault indicating memory or
// invariant corruption is detected (e.g. a point serialisation of
// unexpected length). Per the spec, a fatal error halts the device
// forever after displaying a stream-error message; the caller's only
// recourse is to drop the Session and start a new one after a simulated
// device reset.
type FatalError struct {
	Cause error
}

func (e *FatalError) Error() string { return "protocol: fatal error: " + e.Cause.Error() }

// ServeOne reads one request packet, dispatches it, and writes exactly
// one response packet, satisfying the per-message checklist: the
// request's payload is always fully consumed before any response byte is
// written, every sensitive action obtains consent first, and every
// wallet/transaction error is translated into a Failure payload rather
// than propagated raw. A bad magic or an oversize declared length is a
// Miscellaneous protocol error like any other, not a fatal condition: it
// drains the declared payload (when the length was actually read) and
// replies with Failure, leaving the session open. Only a genuine
// transport I/O failure or a FatalError ends the session.
func (s *Session) ServeOne() error {
	h, err := ReadHeader(s.stream)
	if err != nil {
		if code, ok := err.(ErrorCode); ok {
			if h.Length > 0 {
				if _, drainErr := ReadPayload(s.stream, h); drainErr != nil {
					return drainErr
				}
			}
			return WritePacket(s.stream, MsgFailure, encodeFailure(FailurePayload{Set: setMisc, Code: uint16(code)}))
		}
		return err
	}
	payload, err := ReadPayload(s.stream, h)
	if err != nil {
		return err
	}

	id, resp, ferr := s.handle(h.ID, payload)
	if ferr != nil {
		return ferr
	}
	return WritePacket(s.stream, id, resp)
}

// handle dispatches one already-fully-read request to its handler,
// translating any subsystem error into a Failure payload. It never
// returns a non-nil error except for a FatalError, which the caller must
// treat as terminal.
func (s *Session) handle(id MessageID, payload []byte) (MessageID, []byte, *FatalError) {
	if RequiresConsent(id) {
		if err := s.consent.Button(commandName(id)); err != nil {
			return s.fail(setMisc, failureCode(err))
		}
	}

	switch id {
	case MsgInitialize:
		s.Reset()
		return s.success()
	case MsgPing:
		return MsgPing, payload, nil
	case MsgFeatures:
		return s.features()
	case MsgListWallets:
		return s.listWallets()
	case MsgNewWallet:
		return s.newWallet(payload)
	case MsgRestoreWallet:
		return s.restoreWallet(payload)
	case MsgDeleteWallet:
		return s.deleteWallet(payload)
	case MsgLoadWallet:
		return s.loadWallet(payload)
	case MsgChangeWalletName:
		return s.changeWalletName(payload)
	case MsgChangeEncryptionKey:
		return s.changeEncryptionKey(payload)
	case MsgFormat:
		return s.format()
	case MsgNewAddress:
		return s.newAddress()
	case MsgGetNumAddresses:
		return s.getNumAddresses()
	case MsgGetPublicKey:
		return s.getPublicKey(payload)
	case MsgSignTransaction:
		return s.signTransaction(payload)
	case MsgGetUUID:
		return s.getUUID()
	case MsgGetEntropy:
		return s.getEntropy(payload)
	case MsgGetMasterKey:
		return s.getMasterKey()
	case MsgBackupWallet:
		return s.backupWallet()
	default:
		return MsgFailure, encodeFailure(NewFailure(setMisc, uint16(UnexpectedPacket), UnexpectedPacket)), nil
	}
}

func (s *Session) success() (MessageID, []byte, *FatalError) {
	return MsgSuccess, nil, nil
}

func (s *Session) fail(set ErrorSet, code uint16) (MessageID, []byte, *FatalError) {
	return MsgFailure, encodeFailure(FailurePayload{Set: set, Code: code}), nil
}

func encodeFailure(f FailurePayload) []byte {
	var w payloadWriter
	w.u32(uint32(f.Set))
	w.u32(uint32(f.Code))
	w.str(f.Message)
	return w.bytes()
}

func failureCode(err error) uint16 {
	switch e := err.(type) {
	case ErrorCode:
		return uint16(e)
	case wallet.ErrorCode:
		return uint16(e)
	case txparser.ErrorCode:
		return uint16(e)
	default:
		return uint16(InvalidPacket)
	}
}

func errorSetOf(err error) ErrorSet {
	switch err.(type) {
	case wallet.ErrorCode:
		return setWallet
	case txparser.ErrorCode:
		return setTransaction
	default:
		return setMisc
	}
}

func commandName(id MessageID) string {
	switch id {
	case MsgNewWallet:
		return "new_wallet"
	case MsgRestoreWallet:
		return "restore_wallet"
	case MsgDeleteWallet:
		return "delete_wallet"
	case MsgLoadWallet:
		return "load_wallet"
	case MsgBackupWallet:
		return "backup_wallet"
	case MsgChangeWalletName:
		return "change_wallet_name"
	case MsgChangeEncryptionKey:
		return "change_encryption_key"
	case MsgFormat:
		return "format"
	case MsgNewAddress:
		return "new_address"
	case MsgGetPublicKey:
		return "get_public_key"
	case MsgSignTransaction:
		return "sign_transaction"
	case MsgGetMasterKey:
		return "get_master_key"
	default:
		return "unknown"
	}
}

func (s *Session) features() (MessageID, []byte, *FatalError) {
	var w payloadWriter
	w.str("hwwallet-core")
	w.u32(1) // major
	w.u32(0) // minor
	w.u32(0) // patch
	return MsgFeatures, w.bytes(), nil
}

func (s *Session) listWallets() (MessageID, []byte, *FatalError) {
	var w payloadWriter
	var count byte
	for slot := 0; slot < storage.MaxWalletSlots; slot++ {
		var versionBuf [storage.LenVersion]byte
		if err := s.store.Read(storage.Accounts, storage.RecordOffset(slot)+storage.OffsetVersion, versionBuf[:]); err != nil {
			continue
		}
		version := storage.VersionTag(uint32(versionBuf[0]) | uint32(versionBuf[1])<<8 | uint32(versionBuf[2])<<16 | uint32(versionBuf[3])<<24)
		if version != storage.Unencrypted && version != storage.Encrypted {
			continue
		}
		count++
	}
	w.byte(count)
	for slot := 0; slot < storage.MaxWalletSlots && count > 0; slot++ {
		var versionBuf [storage.LenVersion]byte
		if err := s.store.Read(storage.Accounts, storage.RecordOffset(slot)+storage.OffsetVersion, versionBuf[:]); err != nil {
			continue
		}
		version := storage.VersionTag(uint32(versionBuf[0]) | uint32(versionBuf[1])<<8 | uint32(versionBuf[2])<<16 | uint32(versionBuf[3])<<24)
		if version != storage.Unencrypted && version != storage.Encrypted {
			continue
		}
		w.u32(uint32(slot))
	}
	return MsgWalletList, w.bytes(), nil
}

func parseNewWalletPayload(payload []byte) (slot int, name, password string, ok bool) {
	r := newPayloadReader(payload)
	slotU, ok1 := r.u32()
	n, ok2 := r.str()
	p, ok3 := r.str()
	if !ok1 || !ok2 || !ok3 {
		return 0, "", "", false
	}
	return int(slotU), n, p, true
}

func (s *Session) newWallet(payload []byte) (MessageID, []byte, *FatalError) {
	slot, name, password, ok := parseNewWalletPayload(payload)
	if !ok {
		return s.fail(setMisc, uint16(InvalidPacket))
	}
	w := wallet.New(s.store, slot)
	if err := w.NewWallet(name, password, nil); err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	s.wlt = w
	s.loadedSlot = slot
	return s.success()
}

func (s *Session) restoreWallet(payload []byte) (MessageID, []byte, *FatalError) {
	r := newPayloadReader(payload)
	slotU, ok1 := r.u32()
	name, ok2 := r.str()
	password, ok3 := r.str()
	seed, ok4 := r.bytesField()
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return s.fail(setMisc, uint16(InvalidPacket))
	}
	w := wallet.New(s.store, int(slotU))
	if err := w.NewWallet(name, password, seed); err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	s.wlt = w
	s.loadedSlot = int(slotU)
	return s.success()
}

func (s *Session) deleteWallet(payload []byte) (MessageID, []byte, *FatalError) {
	r := newPayloadReader(payload)
	slotU, ok := r.u32()
	if !ok {
		return s.fail(setMisc, uint16(InvalidPacket))
	}
	w := wallet.New(s.store, int(slotU))
	if err := w.DeleteWallet(); err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	if s.wlt != nil && s.loadedSlot == int(slotU) {
		s.wlt = nil
	}
	return s.success()
}

func (s *Session) loadWallet(payload []byte) (MessageID, []byte, *FatalError) {
	r := newPayloadReader(payload)
	slotU, ok := r.u32()
	if !ok {
		return s.fail(setMisc, uint16(InvalidPacket))
	}

	password, err := s.consent.Password()
	if err != nil {
		return s.fail(errorSetOf(err), failureCode(err))
	}

	w := wallet.New(s.store, int(slotU))
	if err := w.InitWallet(password); err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	s.wlt = w
	s.loadedSlot = int(slotU)
	return s.success()
}

func (s *Session) changeWalletName(payload []byte) (MessageID, []byte, *FatalError) {
	if s.wlt == nil {
		return s.fail(setWallet, uint16(wallet.NotLoaded))
	}
	r := newPayloadReader(payload)
	name, ok := r.str()
	if !ok {
		return s.fail(setMisc, uint16(InvalidPacket))
	}
	if err := s.wlt.ChangeWalletName(name); err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	return s.success()
}

func (s *Session) changeEncryptionKey(payload []byte) (MessageID, []byte, *FatalError) {
	if s.wlt == nil {
		return s.fail(setWallet, uint16(wallet.NotLoaded))
	}
	r := newPayloadReader(payload)
	password, ok := r.str()
	if !ok {
		return s.fail(setMisc, uint16(InvalidPacket))
	}
	if err := s.wlt.ChangeEncryptionKey(password); err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	return s.success()
}

func (s *Session) format() (MessageID, []byte, *FatalError) {
	for slot := 0; slot < storage.MaxWalletSlots; slot++ {
		if err := storage.Sanitize(s.store, storage.Accounts, storage.RecordOffset(slot), storage.WalletRecordSize); err != nil {
			return s.fail(setWallet, uint16(wallet.WriteError))
		}
	}
	s.wlt = nil
	return s.success()
}

func (s *Session) newAddress() (MessageID, []byte, *FatalError) {
	if s.wlt == nil {
		return s.fail(setWallet, uint16(wallet.NotLoaded))
	}
	handle, err := s.wlt.MakeNewAddress(uint32(maxAddressesPerWallet))
	if err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	var w payloadWriter
	w.u32(handle)
	return MsgAddress, w.bytes(), nil
}

func (s *Session) getNumAddresses() (MessageID, []byte, *FatalError) {
	if s.wlt == nil {
		return s.fail(setWallet, uint16(wallet.NotLoaded))
	}
	n, err := s.wlt.GetNumAddresses()
	if err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	var w payloadWriter
	w.u32(n)
	return MsgAddress, w.bytes(), nil
}

func (s *Session) getPublicKey(payload []byte) (MessageID, []byte, *FatalError) {
	if s.wlt == nil {
		return s.fail(setWallet, uint16(wallet.NotLoaded))
	}
	r := newPayloadReader(payload)
	handle, ok := r.u32()
	if !ok {
		return s.fail(setMisc, uint16(InvalidPacket))
	}
	addr, pub, err := s.wlt.GetAddressAndPublicKey(handle, address.MainNetPubKeyHashAddrID)
	if err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	if len(pub) != 33 {
		return MsgFailure, nil, &FatalError{Cause: wallet.BadAddress}
	}
	var w payloadWriter
	w.str(addr)
	w.bytesField(pub)
	return MsgPublicKey, w.bytes(), nil
}

// signTransaction implements the spec's transaction-signing flow: parse
// the transaction bytes (already read into memory as part of the request
// payload, not streamed from the transport), compare the tx-identity hash
// to the last approved one (skipping consent on a match so a multi-input transaction
// needs only one approval), otherwise run the button interjection before
// fetching the key and signing.
func (s *Session) signTransaction(payload []byte) (MessageID, []byte, *FatalError) {
	if s.wlt == nil {
		return s.fail(setWallet, uint16(wallet.NotLoaded))
	}
	r := newPayloadReader(payload)
	handle, ok1 := r.u32()
	txBytes, ok2 := r.bytesField()
	if !ok1 || !ok2 {
		return s.fail(setMisc, uint16(InvalidPacket))
	}

	stream := &memoryStream{data: txBytes}
	var notifyErr error
	onOutput := func(amountText, addressText string) {
		if notifyErr != nil {
			return
		}
		var w payloadWriter
		w.str(amountText)
		w.str(addressText)
		notifyErr = WritePacket(s.stream, MsgOutputSeen, w.bytes())
	}
	sigHash, txHash, code := txparser.Parse(stream, uint32(len(txBytes)), address.MainNetPubKeyHashAddrID, onOutput)
	if notifyErr != nil {
		return MsgFailure, nil, &FatalError{Cause: notifyErr}
	}
	if code != txparser.Ok {
		return s.fail(setTransaction, uint16(code))
	}

	if !s.approvedForSigning(txHash) {
		if err := s.consent.Button("sign_transaction"); err != nil {
			return s.fail(setMisc, failureCode(err))
		}
		s.recordApproval(txHash)
	}

	priv, err := s.wlt.GetPrivateKey(handle)
	if err != nil {
		return s.fail(setWallet, failureCode(err))
	}

	sig, err := ecdsa.Sign(priv, sigHash)
	if err != nil {
		return MsgFailure, nil, &FatalError{Cause: err}
	}
	der := ecdsa.EncodeDER(sig)

	var w payloadWriter
	w.bytesField(der)
	return MsgSignature, w.bytes(), nil
}

// getEntropy returns up to 32 bytes drawn directly from the hardware RNG,
// for a host that wants to mix in its own seed material rather than trust
// the device alone.
func (s *Session) getEntropy(payload []byte) (MessageID, []byte, *FatalError) {
	r := newPayloadReader(payload)
	count, ok := r.byte()
	if !ok || count == 0 || count > 32 {
		return s.fail(setMisc, uint16(ParameterTooLarge))
	}
	entropy, ok := s.rng.Random256()
	if !ok {
		return MsgFailure, nil, &FatalError{Cause: hwrngFailure}
	}
	var w payloadWriter
	w.bytesField(entropy[:count])
	return MsgEntropy, w.bytes(), nil
}

// getMasterKey exposes the wallet's raw seed. Gated by RequiresConsent
// (button) plus an additional otp challenge, since it is the single most
// sensitive value the device holds.
func (s *Session) getMasterKey() (MessageID, []byte, *FatalError) {
	if s.wlt == nil {
		return s.fail(setWallet, uint16(wallet.NotLoaded))
	}
	if err := s.consent.OTP("get_master_key"); err != nil {
		return s.fail(errorSetOf(err), failureCode(err))
	}
	seed, err := s.wlt.GetMasterSeed()
	if err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	var w payloadWriter
	w.bytesField(seed)
	return MsgMasterKey, w.bytes(), nil
}

// backupWallet re-exposes the wallet's seed for the host to persist as a
// recovery backup. Distinct message id from GetMasterKey so host UIs can
// offer "view key" and "backup" as separate, separately-audited actions
// even though both ultimately read the same seed. Key-revealing, so it
// carries the same otp interjection getMasterKey does on top of the
// button gate already run in handle().
func (s *Session) backupWallet() (MessageID, []byte, *FatalError) {
	if s.wlt == nil {
		return s.fail(setWallet, uint16(wallet.NotLoaded))
	}
	if err := s.consent.OTP("backup_wallet"); err != nil {
		return s.fail(errorSetOf(err), failureCode(err))
	}
	seed, err := s.wlt.GetMasterSeed()
	if err != nil {
		return s.fail(setWallet, failureCode(err))
	}
	var w payloadWriter
	w.bytesField(seed)
	return MsgMasterKey, w.bytes(), nil
}

func (s *Session) getUUID() (MessageID, []byte, *FatalError) {
	var uuid [storage.GlobalLenUUID]byte
	if err := s.store.Read(storage.Global, storage.GlobalOffsetUUID, uuid[:]); err != nil {
		return s.fail(setMisc, uint16(InvalidPacket))
	}
	var w payloadWriter
	w.bytesField(uuid[:])
	return MsgUUID, w.bytes(), nil
}

// memoryStream adapts a byte slice already read off the wire into the
// hostio.ByteStream interface txparser.Parse expects, since the
// transaction bytes here have already been extracted from the enclosing
// SignTransaction payload rather than arriving directly off the
// transport.
type memoryStream struct {
	data []byte
	pos  int
}

func (m *memoryStream) GetByte() (byte, error) {
	if m.pos >= len(m.data) {
		return 0, errShortStream
	}
	b := m.data[m.pos]
	m.pos++
	return b, nil
}

func (m *memoryStream) PutByte(b byte) error {
	m.data = append(m.data, b)
	return nil
}

var errShortStream = &streamError{"protocol: transaction payload shorter than declared length"}
var hwrngFailure = &streamError{"protocol: hardware RNG self-test failing"}

type streamError struct{ msg string }

func (e *streamError) Error() string { return e.msg }
