// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"github.com/EXCCoin/hwwallet-core/internal/xex"
	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. N is deliberately expensive: the spec requires
// the password KDF to be "deterministic and slow", since it is the only
// thing standing between an attacker with read access to a stolen flash
// image and the encrypted seed.
const (
	scryptN = 1 << 16
	scryptR = 8
	scryptP = 1
)

// DeriveKeys turns a user password and the wallet's per-record salt (the
// wallet name, which is stored unencrypted and is therefore available
// before the encrypted region can be read) into the XEX key pair that
// guards the record's encrypted region.
func DeriveKeys(password string, salt []byte) (xex.Keys, error) {
	material, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, 2*xex.KeySize)
	if err != nil {
		return xex.Keys{}, err
	}

	var keys xex.Keys
	copy(keys.K1[:], material[:xex.KeySize])
	copy(keys.K2[:], material[xex.KeySize:])
	return keys, nil
}
