// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bip32 implements hierarchical deterministic key derivation:
// seed-to-master and hardened/non-hardened child derivation.
package bip32

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"

	"github.com/EXCCoin/hwwallet-core/internal/bigint"
	"github.com/EXCCoin/hwwallet-core/internal/curve"
)

// ErrDerivationFailed is returned on the astronomically unlikely event
// that a derived I_L is >= the curve order, or the derived child private
// key would be zero. Per BIP 32 this is a permanent failure for that
// specific path; the caller is expected to pick a different index.
var ErrDerivationFailed = errors.New("bip32: derivation failed for this index, choose a different index")

// HardenedOffset is added to an index to mark it hardened.
const HardenedOffset = 0x80000000

// Node is one point in the derivation tree: a private key and its chain
// code.
type Node struct {
	PrivateKey bigint.Element
	ChainCode  [32]byte
}

// MasterFromSeed derives the master node from 64 bytes (or fewer; BIP 32
// permits 128-512 bits) of seed entropy, per BIP 32's
// HMAC-SHA512(key="Bitcoin seed", data=seed) construction: the left 32
// bytes of the output become the master private key, the right 32 become
// the master chain code.
func MasterFromSeed(seed []byte) Node {
	mac := hmac.New(sha512.New, []byte("Bitcoin seed"))
	mac.Write(seed)
	i := mac.Sum(nil)

	var node Node
	node.PrivateKey = bigint.SetBytesBE(i[:32])
	copy(node.ChainCode[:], i[32:])
	return node
}

// DeriveChild derives the child node at the given index from parent.
// Indices with the high bit set (index >= HardenedOffset) are hardened
// derivations, which mix in the parent's private key rather than its
// public key, so that a hardened child cannot be derived from the parent's
// extended public key alone.
func DeriveChild(parent Node, index uint32) (Node, error) {
	data := make([]byte, 0, 37)
	if index >= HardenedOffset {
		data = append(data, 0x00)
		privBytes := parent.PrivateKey.BytesBE()
		data = append(data, privBytes[:]...)
	} else {
		pub := curve.Mul(parent.PrivateKey, curve.Generator()).ToAffine()
		data = append(data, curve.SerializeCompressed(pub)...)
	}
	data = append(data, byte(index>>24), byte(index>>16), byte(index>>8), byte(index))

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write(data)
	i := mac.Sum(nil)

	il := bigint.SetBytesBE(i[:32])
	n := bigint.FieldN
	if bigint.Cmp3(il, n.N) != bigint.Less {
		return Node{}, ErrDerivationFailed
	}

	childKey := bigint.AddMod(il, parent.PrivateKey, n)
	if childKey.IsZero() {
		return Node{}, ErrDerivationFailed
	}

	var child Node
	child.PrivateKey = childKey
	copy(child.ChainCode[:], i[32:])
	return child, nil
}

// DerivePath walks path one index at a time from node, stopping at the
// first failure.
func DerivePath(node Node, path []uint32) (Node, error) {
	current := node
	for _, idx := range path {
		next, err := DeriveChild(current, idx)
		if err != nil {
			return Node{}, err
		}
		current = next
	}
	return current, nil
}
