// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hostsim

import "crypto/rand"

// OSRandomSource implements hostio.RandomSource over the OS CSPRNG,
// standing in for the hardware RNG and its entropy-pool health check: the
// simulator has no failure mode to exercise, so Random256 only ever
// returns false if the OS source itself errors, which in practice never
// happens on a supported platform.
type OSRandomSource struct{}

// Random256 returns 32 bytes of OS-provided entropy.
func (OSRandomSource) Random256() ([32]byte, bool) {
	var out [32]byte
	if _, err := rand.Read(out[:]); err != nil {
		return [32]byte{}, false
	}
	return out, true
}
