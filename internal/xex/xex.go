// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package xex implements the tweakable block-cipher wrapper the wallet
// record's encrypted region is stored under: for a 16-byte block at byte
// offset o, ciphertext = E_k1(plaintext XOR T) XOR T where T = E_k2(o as a
// block). This gives distinct ciphertexts for identical plaintext blocks
// stored at different offsets, which a bare block cipher in ECB mode would
// not.
package xex

import (
	"crypto/aes"
	"errors"
)

// BlockSize is the tweak/plaintext/ciphertext block size in bytes.
const BlockSize = aes.BlockSize // 16

// KeySize is the size in bytes of each of the two independent keys.
const KeySize = 32

// ErrShortBlock is returned when a buffer passed to EncryptBlock or
// DecryptBlock is not exactly BlockSize bytes.
var ErrShortBlock = errors.New("xex: buffer is not one block")

// Keys holds the two independent AES-256 keys XEX mode requires: k1
// encrypts the tweaked plaintext/ciphertext, k2 derives the tweak itself
// from the block offset. An all-zero Keys value is the "unencrypted"
// marker: EncryptBlock/DecryptBlock become the identity function, letting
// an unencrypted wallet record share the exact on-disk layout of an
// encrypted one.
type Keys struct {
	K1, K2 [KeySize]byte
}

// IsZero reports whether both keys are all-zero, i.e. the "unencrypted"
// marker.
func (k Keys) IsZero() bool {
	var acc byte
	for _, b := range k.K1 {
		acc |= b
	}
	for _, b := range k.K2 {
		acc |= b
	}
	return acc == 0
}

func tweak(k2 [KeySize]byte, blockOffset uint64) ([BlockSize]byte, error) {
	var t [BlockSize]byte
	t[0] = byte(blockOffset)
	t[1] = byte(blockOffset >> 8)
	t[2] = byte(blockOffset >> 16)
	t[3] = byte(blockOffset >> 24)
	t[4] = byte(blockOffset >> 32)
	t[5] = byte(blockOffset >> 40)
	t[6] = byte(blockOffset >> 48)
	t[7] = byte(blockOffset >> 56)

	block, err := aes.NewCipher(k2[:])
	if err != nil {
		return t, err
	}
	var out [BlockSize]byte
	block.Encrypt(out[:], t[:])
	return out, nil
}

func xorBlock(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// EncryptBlock encrypts one BlockSize-byte plaintext block located at the
// given 16-byte-aligned block offset within the record.
func EncryptBlock(keys Keys, blockOffset uint64, plaintext []byte) ([]byte, error) {
	if len(plaintext) != BlockSize {
		return nil, ErrShortBlock
	}
	if keys.IsZero() {
		out := make([]byte, BlockSize)
		copy(out, plaintext)
		return out, nil
	}

	t, err := tweak(keys.K2, blockOffset)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(keys.K1[:])
	if err != nil {
		return nil, err
	}

	tweaked := make([]byte, BlockSize)
	xorBlock(tweaked, plaintext, t[:])

	out := make([]byte, BlockSize)
	block.Encrypt(out, tweaked)
	xorBlock(out, out, t[:])
	return out, nil
}

// DecryptBlock inverts EncryptBlock.
func DecryptBlock(keys Keys, blockOffset uint64, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != BlockSize {
		return nil, ErrShortBlock
	}
	if keys.IsZero() {
		out := make([]byte, BlockSize)
		copy(out, ciphertext)
		return out, nil
	}

	t, err := tweak(keys.K2, blockOffset)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(keys.K1[:])
	if err != nil {
		return nil, err
	}

	untweaked := make([]byte, BlockSize)
	xorBlock(untweaked, ciphertext, t[:])

	out := make([]byte, BlockSize)
	block.Decrypt(out, untweaked)
	xorBlock(out, out, t[:])
	return out, nil
}

// EncryptRange encrypts data (a multiple of BlockSize bytes) block by
// block, starting at startOffset.
func EncryptRange(keys Keys, startOffset uint64, data []byte) ([]byte, error) {
	return transformRange(keys, startOffset, data, EncryptBlock)
}

// DecryptRange decrypts data (a multiple of BlockSize bytes) block by
// block, starting at startOffset.
func DecryptRange(keys Keys, startOffset uint64, data []byte) ([]byte, error) {
	return transformRange(keys, startOffset, data, DecryptBlock)
}

func transformRange(keys Keys, startOffset uint64, data []byte, op func(Keys, uint64, []byte) ([]byte, error)) ([]byte, error) {
	if len(data)%BlockSize != 0 {
		return nil, ErrShortBlock
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i += BlockSize {
		block, err := op(keys, startOffset+uint64(i), data[i:i+BlockSize])
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}
