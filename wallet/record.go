// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"crypto/sha256"

	"github.com/EXCCoin/hwwallet-core/internal/xex"
	"github.com/EXCCoin/hwwallet-core/storage"
)

// record is the decoded, decrypted form of a 160-byte on-disk wallet
// record.
type record struct {
	version      storage.VersionTag
	name         [storage.LenName]byte
	numAddresses uint32
	nonce        uint64
	seed         [storage.LenSeed]byte
	checksum     [storage.LenChecksum]byte
}

// readRecord reads and decrypts the record at slot, without validating its
// checksum; callers that need the checksum validated compare it against
// computeChecksum themselves (as InitWallet does), since new_wallet needs to write a record before any
// checksum exists to verify.
func readRecord(s *storage.Store, slot int, keys xex.Keys) (record, error) {
	base := storage.RecordOffset(slot)
	var r record

	var versionBuf [storage.LenVersion]byte
	if err := s.Read(storage.Accounts, base+storage.OffsetVersion, versionBuf[:]); err != nil {
		return record{}, ReadError
	}
	r.version = storage.VersionTag(le32(versionBuf[:]))

	if err := s.Read(storage.Accounts, base+storage.OffsetName, r.name[:]); err != nil {
		return record{}, ReadError
	}

	encLen := storage.WalletRecordSize - storage.EncryptionBoundary
	ciphertext := make([]byte, encLen)
	if err := s.Read(storage.Accounts, base+storage.EncryptionBoundary, ciphertext); err != nil {
		return record{}, ReadError
	}
	plaintext, err := xex.DecryptRange(keys, uint64(base+storage.EncryptionBoundary), ciphertext)
	if err != nil {
		return record{}, ReadError
	}

	r.numAddresses = le32(plaintext[0:4])
	r.nonce = le64(plaintext[4:12])
	copy(r.seed[:], plaintext[16:16+storage.LenSeed])
	copy(r.checksum[:], plaintext[16+storage.LenSeed:16+storage.LenSeed+storage.LenChecksum])

	return r, nil
}

// writeRecord encrypts and writes every field of r to slot, then flushes.
func writeRecord(s *storage.Store, slot int, keys xex.Keys, r record, version storage.VersionTag) error {
	base := storage.RecordOffset(slot)

	var versionBuf [storage.LenVersion]byte
	putLE32(versionBuf[:], uint32(version))
	if err := s.Write(storage.Accounts, base+storage.OffsetVersion, versionBuf[:]); err != nil {
		return WriteError
	}
	if err := s.Write(storage.Accounts, base+storage.OffsetName, r.name[:]); err != nil {
		return WriteError
	}

	plaintext := make([]byte, storage.WalletRecordSize-storage.EncryptionBoundary)
	putLE32(plaintext[0:4], r.numAddresses)
	putLE64(plaintext[4:12], r.nonce)
	copy(plaintext[16:16+storage.LenSeed], r.seed[:])
	copy(plaintext[16+storage.LenSeed:16+storage.LenSeed+storage.LenChecksum], r.checksum[:])

	ciphertext, err := xex.EncryptRange(keys, uint64(base+storage.EncryptionBoundary), plaintext)
	if err != nil {
		return WriteError
	}
	if err := s.Write(storage.Accounts, base+storage.EncryptionBoundary, ciphertext); err != nil {
		return WriteError
	}

	if err := s.Flush(); err != nil {
		return WriteError
	}
	return nil
}

// writeNumAddressesOnly rewrites only the encrypted num_addresses field
// (and flushes), exploiting the invariant that the checksum does not cover
// num_addresses: an address can be appended without recomputing it.
func writeNumAddressesOnly(s *storage.Store, slot int, keys xex.Keys, numAddresses uint32) error {
	base := storage.RecordOffset(slot)
	plaintext := make([]byte, xex.BlockSize)
	putLE32(plaintext[0:4], numAddresses)

	// The first 16-byte block of the encrypted region holds
	// num_addresses, nonce, and reserved; re-encrypt that whole block
	// with the refreshed counter but the same decrypted nonce/reserved
	// bytes so nothing else in the block changes.
	existingCiphertext := make([]byte, xex.BlockSize)
	if err := s.Read(storage.Accounts, base+storage.EncryptionBoundary, existingCiphertext); err != nil {
		return ReadError
	}
	existingPlain, err := xex.DecryptBlock(keys, uint64(base+storage.EncryptionBoundary), existingCiphertext)
	if err != nil {
		return ReadError
	}
	copy(plaintext[4:], existingPlain[4:])

	ciphertext, err := xex.EncryptBlock(keys, uint64(base+storage.EncryptionBoundary), plaintext)
	if err != nil {
		return WriteError
	}
	if err := s.Write(storage.Accounts, base+storage.EncryptionBoundary, ciphertext); err != nil {
		return WriteError
	}
	if err := s.Flush(); err != nil {
		return WriteError
	}
	return nil
}

// computeChecksum hashes the version, name, nonce and seed fields; the two
// reserved fields are hashed as zero bytes rather than as read from
// storage. num_addresses and the checksum field itself are left out, so
// appending an address does not require recomputing the checksum.
func computeChecksum(r record) [storage.LenChecksum]byte {
	h := sha256.New()

	var versionBuf [storage.LenVersion]byte
	putLE32(versionBuf[:], uint32(r.version))
	h.Write(versionBuf[:])

	var reserved0 [storage.LenReserved0]byte
	h.Write(reserved0[:])

	h.Write(r.name[:])

	var nonceBuf [storage.LenNonce]byte
	putLE64(nonceBuf[:], r.nonce)
	h.Write(nonceBuf[:])

	var reserved1 [storage.LenReserved1]byte
	h.Write(reserved1[:])

	h.Write(r.seed[:])

	var out [storage.LenChecksum]byte
	copy(out[:], h.Sum(nil))
	return out
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func le64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func putLE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}
