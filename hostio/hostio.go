// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hostio declares the collaborator interfaces the spec treats as
// external: byte-level stream I/O, hardware entropy, and the button/OTP
// user-interface surface. None of these are implemented here; hostsim
// provides software stand-ins for testing, and a real firmware build
// would wire these to USART/USB, the hardware RNG, and the LCD/button
// driver respectively.
package hostio

// ByteStream is the blocking byte-level transport the protocol layer is
// built on. txparser.Parse reads a transaction from a ByteStream one byte
// at a time; the protocol's SignTransaction handler reads the whole request
// payload into memory first and parses the transaction from that copy.
type ByteStream interface {
	GetByte() (byte, error)
	PutByte(b byte) error
}

// RandomSource reports 32 bytes of entropy, or failure if the hardware
// RNG's self-test is failing.
type RandomSource interface {
	Random256() ([32]byte, bool)
}

// UserInterface is the LCD/button/OTP surface the protocol layer drives
// during a consent interjection.
type UserInterface interface {
	// UserDenied reports whether the physical user declined cmd at the
	// button prompt.
	UserDenied(cmd string) bool
	// DisplayOTP shows a freshly generated OTP on the device screen.
	DisplayOTP(cmd string, otp string)
	// ClearOTP removes the OTP from the display once consumed.
	ClearOTP()
	// GetString prompts for and returns a string value (e.g. a
	// password) from an on-device input method; set/spec identify
	// which string is being requested.
	GetString(set int, spec int) (string, error)
}
