// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"

	"github.com/EXCCoin/hwwallet-core/hostio"
)

// Consent runs one of the three interjection sub-dialogues the spec
// describes: button, password (pin), or OTP. Each variant is a strictly
// interleaved request/response pair — the device emits exactly one
// request packet and blocks for exactly one response packet before
// returning.
type Consent struct {
	stream hostio.ByteStream
	ui     hostio.UserInterface
	rng    hostio.RandomSource
}

// NewConsent builds a Consent driver over the given transport and
// human-interface collaborators.
func NewConsent(stream hostio.ByteStream, ui hostio.UserInterface, rng hostio.RandomSource) *Consent {
	return &Consent{stream: stream, ui: ui, rng: rng}
}

// Button runs the button-interjection dialogue for the named command. It
// sends ButtonRequest, waits for ButtonAck or ButtonCancel, and on Ack
// consults the physical user via UserDenied. A host ButtonCancel and a
// physical user denial are surfaced identically as "not approved" to the
// caller, but with PermissionDeniedHost vs PermissionDeniedUser
// respectively so the Failure payload can report the right cause.
func (c *Consent) Button(cmd string) error {
	if err := WritePacket(c.stream, MsgButtonRequest, []byte(cmd)); err != nil {
		return err
	}
	h, err := ReadHeader(c.stream)
	if err != nil {
		return err
	}
	if _, err := ReadPayload(c.stream, h); err != nil {
		return err
	}

	switch h.ID {
	case MsgButtonCancel:
		return PermissionDeniedHost
	case MsgButtonAck:
		if c.ui.UserDenied(cmd) {
			return PermissionDeniedUser
		}
		return nil
	default:
		return UnexpectedPacket
	}
}

// Password runs the pin-interjection dialogue (load wallet): PinRequest,
// then either PinCancel or PinAck carrying the password the device hashes
// deterministically via the wallet package's own KDF.
func (c *Consent) Password() (string, error) {
	if err := WritePacket(c.stream, MsgPinRequest, nil); err != nil {
		return "", err
	}
	h, err := ReadHeader(c.stream)
	if err != nil {
		return "", err
	}
	payload, err := ReadPayload(c.stream, h)
	if err != nil {
		return "", err
	}

	switch h.ID {
	case MsgPinCancel:
		return "", PermissionDeniedHost
	case MsgPinAck:
		return string(payload), nil
	default:
		return "", UnexpectedPacket
	}
}

// otpAlphabet is restricted to characters that read unambiguously on a
// small LCD (no 0/O or 1/I confusion).
const otpAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// generateOTP derives a 6-character human-readable code from the device's
// random source.
func generateOTP(rng hostio.RandomSource) (string, error) {
	entropy, ok := rng.Random256()
	if !ok {
		return "", fmt.Errorf("protocol: hardware RNG self-test failing")
	}
	out := make([]byte, 6)
	for i := range out {
		out[i] = otpAlphabet[int(entropy[i])%len(otpAlphabet)]
	}
	return string(out), nil
}

// OTP runs the otp-interjection dialogue for destructive or key-revealing
// actions: generate and display a code, send OtpRequest, and compare the
// host's OtpAck payload against it.
func (c *Consent) OTP(cmd string) error {
	code, err := generateOTP(c.rng)
	if err != nil {
		return err
	}
	c.ui.DisplayOTP(cmd, code)
	defer c.ui.ClearOTP()

	if err := WritePacket(c.stream, MsgOtpRequest, []byte(cmd)); err != nil {
		return err
	}
	h, err := ReadHeader(c.stream)
	if err != nil {
		return err
	}
	payload, err := ReadPayload(c.stream, h)
	if err != nil {
		return err
	}

	switch h.ID {
	case MsgOtpCancel:
		return PermissionDeniedHost
	case MsgOtpAck:
		if string(payload) != code {
			return OtpMismatch
		}
		return nil
	default:
		return UnexpectedPacket
	}
}
