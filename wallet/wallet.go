// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"bytes"
	"crypto/rand"

	"github.com/EXCCoin/hwwallet-core/address"
	"github.com/EXCCoin/hwwallet-core/internal/bigint"
	"github.com/EXCCoin/hwwallet-core/internal/bip32"
	"github.com/EXCCoin/hwwallet-core/internal/curve"
	"github.com/EXCCoin/hwwallet-core/internal/hwlog"
	"github.com/EXCCoin/hwwallet-core/internal/xex"
	"github.com/EXCCoin/hwwallet-core/storage"
	"github.com/jrick/bitset"
)

// BadHandleLow and BadHandleHigh are the reserved address-handle
// sentinels: 0 and the top two values of the 32-bit handle space are never
// valid, leaving [1, num_addresses] as the valid range.
const (
	BadHandleLow     uint32 = 0
	BadHandleHighA   uint32 = 0xFFFFFFFE
	BadHandleHighB   uint32 = 0xFFFFFFFF
)

// State is Loaded or Unloaded, per the spec's wallet lifecycle.
type State int

const (
	Unloaded State = iota
	Loaded
)

// Wallet is one loaded (or not) wallet slot. Every field making up the
// "Loaded" resource — keys, cached count, state — is acquired together by
// Init/New and released together by Uninit, with guaranteed
// key-zeroisation on every release path.
type Wallet struct {
	store *storage.Store
	slot  int

	state        State
	keys         xex.Keys
	numAddresses uint32
	issued       bitset.Bitset
}

// New constructs a Wallet bound to slot within store, initially Unloaded.
func New(store *storage.Store, slot int) *Wallet {
	return &Wallet{store: store, slot: slot, state: Unloaded}
}

// NewWallet sanitises slot, derives an encryption key from password
// (unless password is empty, in which case the wallet is stored
// unencrypted with an all-zero XEX key), and writes a fresh record: name,
// a random nonce, either a caller-supplied seed or 64 bytes of fresh
// entropy, and num_addresses = 0. It leaves the wallet Loaded.
func (w *Wallet) NewWallet(name string, password string, fromSeed []byte) error {
	if err := storage.Sanitize(w.store, storage.Accounts, storage.RecordOffset(w.slot), storage.WalletRecordSize); err != nil {
		hwlog.Wlet.Errorf("sanitize failed for new wallet: %v", err)
		return WriteError
	}

	keys, version, err := deriveKeysAndVersion(name, password)
	if err != nil {
		return RngFailure
	}

	var nameBuf [storage.LenName]byte
	copy(nameBuf[:], padName(name))

	var seedBuf [storage.LenSeed]byte
	if fromSeed != nil {
		if len(fromSeed) != storage.LenSeed {
			return InvalidOperation
		}
		copy(seedBuf[:], fromSeed)
	} else if _, err := rand.Read(seedBuf[:]); err != nil {
		return RngFailure
	}

	var nonceBuf [8]byte
	if _, err := rand.Read(nonceBuf[:]); err != nil {
		return RngFailure
	}

	r := record{
		version:      version,
		name:         nameBuf,
		numAddresses: 0,
		nonce:        le64(nonceBuf[:]),
		seed:         seedBuf,
	}
	r.checksum = computeChecksum(r)

	if err := writeRecord(w.store, w.slot, keys, r, version); err != nil {
		return err.(ErrorCode)
	}

	w.state = Loaded
	w.keys = keys
	w.numAddresses = 0
	w.issued = bitset.New(storage.MaxAddressesPerWallet)
	return nil
}

// InitWallet reads the record at slot, derives a candidate key from
// password, and verifies the checksum. A mismatch — whether from a wrong
// password or storage corruption — surfaces identically as NotThere, so a
// host cannot distinguish the two from the response alone.
func (w *Wallet) InitWallet(password string) error {
	var versionBuf [storage.LenVersion]byte
	if err := w.store.Read(storage.Accounts, storage.RecordOffset(w.slot)+storage.OffsetVersion, versionBuf[:]); err != nil {
		return ReadError
	}
	version := storage.VersionTag(le32(versionBuf[:]))
	if version != storage.Unencrypted && version != storage.Encrypted {
		return NotThere
	}

	var nameBuf [storage.LenName]byte
	if err := w.store.Read(storage.Accounts, storage.RecordOffset(w.slot)+storage.OffsetName, nameBuf[:]); err != nil {
		return ReadError
	}

	var keys xex.Keys
	if version == storage.Encrypted {
		derived, err := DeriveKeys(password, nameBuf[:])
		if err != nil {
			return RngFailure
		}
		keys = derived
	}

	r, err := readRecord(w.store, w.slot, keys)
	if err != nil {
		return ReadError
	}

	want := computeChecksum(r)
	if !bytes.Equal(want[:], r.checksum[:]) {
		return NotThere
	}

	w.state = Loaded
	w.keys = keys
	w.numAddresses = r.numAddresses
	w.issued = bitset.New(storage.MaxAddressesPerWallet)
	for i := uint32(0); i < r.numAddresses; i++ {
		w.issued.Set(int(i))
	}
	return nil
}

// UninitWallet zeroises the installed keys and cached state, returning the
// wallet to Unloaded on every call, including when it is already
// Unloaded.
func (w *Wallet) UninitWallet() {
	w.keys = xex.Keys{}
	w.numAddresses = 0
	w.issued = nil
	w.state = Unloaded
}

// IsIssued reports whether handle (1-based) has been issued by
// MakeNewAddress. Requires Loaded.
func (w *Wallet) IsIssued(handle uint32) bool {
	if w.state != Loaded || handle < 1 {
		return false
	}
	return w.issued.Get(int(handle - 1))
}

// GetNumAddresses returns the cached address count. Requires Loaded.
func (w *Wallet) GetNumAddresses() (uint32, error) {
	if w.state != Loaded {
		return 0, NotLoaded
	}
	return w.numAddresses, nil
}

// MakeNewAddress issues the next address handle, persisting the
// incremented counter before returning. It fails Full once the configured
// maximum is reached.
func (w *Wallet) MakeNewAddress(maxAddresses uint32) (uint32, error) {
	if w.state != Loaded {
		return 0, NotLoaded
	}
	if w.numAddresses >= maxAddresses {
		return 0, Full
	}

	next := w.numAddresses + 1
	if err := writeNumAddressesOnly(w.store, w.slot, w.keys, next); err != nil {
		return 0, WriteError
	}
	w.numAddresses = next
	w.issued.Set(int(next - 1))
	return next, nil
}

// validateHandle checks handle is in [1, numAddresses] and not one of the
// reserved sentinels.
func validateHandle(handle uint32, numAddresses uint32) error {
	if handle == BadHandleLow || handle == BadHandleHighA || handle == BadHandleHighB {
		return BadAddress
	}
	if handle < 1 || handle > numAddresses {
		return InvalidHandle
	}
	return nil
}

// derivePrivateKey computes handle's private key as a BIP-32-style
// derivation over the wallet seed: the handle becomes the (hardened)
// child index under the wallet's master node, so distinct wallets with
// distinct seeds never collide and a given handle always recovers the
// same key.
func derivePrivateKey(seed []byte, handle uint32) (bigint.Element, error) {
	master := bip32.MasterFromSeed(seed)
	child, err := bip32.DeriveChild(master, bip32.HardenedOffset+handle)
	if err != nil {
		return bigint.Element{}, err
	}
	return child.PrivateKey, nil
}

// GetPrivateKey returns the private key for handle. Requires Loaded.
func (w *Wallet) GetPrivateKey(handle uint32) (bigint.Element, error) {
	if w.state != Loaded {
		return bigint.Element{}, NotLoaded
	}
	if err := validateHandle(handle, w.numAddresses); err != nil {
		return bigint.Element{}, err
	}

	r, err := readRecord(w.store, w.slot, w.keys)
	if err != nil {
		return bigint.Element{}, ReadError
	}

	priv, err := derivePrivateKey(r.seed[:], handle)
	if err != nil {
		return bigint.Element{}, RngFailure
	}
	return priv, nil
}

// GetMasterSeed returns the wallet's raw seed, the same bytes every
// handle's key is derived from. Requires Loaded; callers must only expose
// this behind the strongest consent dialogue, since it reveals every
// address the wallet will ever issue.
func (w *Wallet) GetMasterSeed() ([]byte, error) {
	if w.state != Loaded {
		return nil, NotLoaded
	}
	r, err := readRecord(w.store, w.slot, w.keys)
	if err != nil {
		return nil, ReadError
	}
	seed := make([]byte, len(r.seed))
	copy(seed, r.seed[:])
	return seed, nil
}

// GetAddressAndPublicKey returns handle's base58check P2PKH address
// (versionByte chosen by the caller) and its compressed public key.
func (w *Wallet) GetAddressAndPublicKey(handle uint32, versionByte byte) (addr string, pubKey []byte, err error) {
	priv, kerr := w.GetPrivateKey(handle)
	if kerr != nil {
		return "", nil, kerr
	}

	pub := curve.Mul(priv, curve.Generator()).ToAffine()
	compressed := curve.SerializeCompressed(pub)

	h := address.Hash160(compressed)
	a := address.Encode(versionByte, h)
	return a, compressed, nil
}

// ChangeEncryptionKey re-encrypts the record's encrypted region under a
// new password (or clears encryption if newPassword is empty), updating
// the version tag and checksum.
func (w *Wallet) ChangeEncryptionKey(newPassword string) error {
	if w.state != Loaded {
		return NotLoaded
	}

	var nameBuf [storage.LenName]byte
	if err := w.store.Read(storage.Accounts, storage.RecordOffset(w.slot)+storage.OffsetName, nameBuf[:]); err != nil {
		return ReadError
	}

	r, err := readRecord(w.store, w.slot, w.keys)
	if err != nil {
		return ReadError
	}

	newKeys, newVersion, derr := deriveKeysAndVersion(string(nameBuf[:]), newPassword)
	if derr != nil {
		return RngFailure
	}

	r.version = newVersion
	r.checksum = computeChecksum(r)
	if werr := writeRecord(w.store, w.slot, newKeys, r, newVersion); werr != nil {
		return werr.(ErrorCode)
	}

	w.keys = newKeys
	return nil
}

// ChangeWalletName rewrites the unencrypted name field and the checksum
// (the name is hashed into the checksum, so changing it invalidates the
// old checksum and a new one must be computed and stored).
func (w *Wallet) ChangeWalletName(name string) error {
	if w.state != Loaded {
		return NotLoaded
	}

	var versionBuf [storage.LenVersion]byte
	if err := w.store.Read(storage.Accounts, storage.RecordOffset(w.slot)+storage.OffsetVersion, versionBuf[:]); err != nil {
		return ReadError
	}
	version := storage.VersionTag(le32(versionBuf[:]))

	r, err := readRecord(w.store, w.slot, w.keys)
	if err != nil {
		return ReadError
	}
	copy(r.name[:], padName(name))
	r.checksum = computeChecksum(r)

	if werr := writeRecord(w.store, w.slot, w.keys, r, version); werr != nil {
		return werr.(ErrorCode)
	}
	return nil
}

// DeleteWallet sanitises the slot and returns the Wallet to Unloaded.
func (w *Wallet) DeleteWallet() error {
	if err := storage.Sanitize(w.store, storage.Accounts, storage.RecordOffset(w.slot), storage.WalletRecordSize); err != nil {
		return WriteError
	}
	w.UninitWallet()
	return nil
}

func deriveKeysAndVersion(name, password string) (xex.Keys, storage.VersionTag, error) {
	if password == "" {
		return xex.Keys{}, storage.Unencrypted, nil
	}
	keys, err := DeriveKeys(password, padName(name))
	if err != nil {
		return xex.Keys{}, storage.NothingThere, err
	}
	return keys, storage.Encrypted, nil
}

func padName(name string) []byte {
	out := make([]byte, storage.LenName)
	for i := range out {
		out[i] = ' '
	}
	copy(out, name)
	return out
}
