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

// magic is the two-byte literal that opens every packet.
var magic = [2]byte{'#', '#'}

// MaxPayloadSize bounds a single packet's payload; a SignTransaction
// payload carrying transaction bytes is the largest legitimate message,
// so this tracks txparser.MaxTransactionSize plus room for the handle and
// framing overhead a real implementation would size precisely. Anything
// larger is rejected as ParameterTooLarge before an allocation is made.
const MaxPayloadSize = 262144

// Header is the fixed 8-byte prefix of every packet: 2 magic bytes, a
// big-endian message id, and a big-endian payload length.
type Header struct {
	ID     MessageID
	Length uint32
}

// ReadHeader reads and validates the 8-byte packet header from stream.
func ReadHeader(stream hostio.ByteStream) (Header, error) {
	var m [2]byte
	for i := range m {
		b, err := stream.GetByte()
		if err != nil {
			return Header{}, fmt.Errorf("protocol: reading magic: %w", err)
		}
		m[i] = b
	}
	if m != magic {
		return Header{}, InvalidPacket
	}

	idBytes, err := readN(stream, 2)
	if err != nil {
		return Header{}, err
	}
	id := MessageID(uint16(idBytes[0])<<8 | uint16(idBytes[1]))

	lenBytes, err := readN(stream, 4)
	if err != nil {
		return Header{}, err
	}
	length := uint32(lenBytes[0])<<24 | uint32(lenBytes[1])<<16 | uint32(lenBytes[2])<<8 | uint32(lenBytes[3])
	if length > MaxPayloadSize {
		// The declared length is still returned alongside the error so the
		// caller can drain exactly that many bytes before replying,
		// keeping the half-duplex request/response ordering intact.
		return Header{ID: id, Length: length}, ParameterTooLarge
	}

	return Header{ID: id, Length: length}, nil
}

// ReadPayload reads exactly h.Length bytes following a header already read
// by ReadHeader.
func ReadPayload(stream hostio.ByteStream, h Header) ([]byte, error) {
	return readN(stream, int(h.Length))
}

// WritePacket writes a complete packet: magic, id, length, payload.
func WritePacket(stream hostio.ByteStream, id MessageID, payload []byte) error {
	if len(payload) > MaxPayloadSize {
		return ParameterTooLarge
	}
	if err := writeN(stream, magic[:]); err != nil {
		return err
	}
	idBuf := []byte{byte(id >> 8), byte(id)}
	if err := writeN(stream, idBuf); err != nil {
		return err
	}
	n := uint32(len(payload))
	lenBuf := []byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	if err := writeN(stream, lenBuf); err != nil {
		return err
	}
	return writeN(stream, payload)
}

func readN(stream hostio.ByteStream, n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := stream.GetByte()
		if err != nil {
			return nil, fmt.Errorf("protocol: short read: %w", err)
		}
		out[i] = b
	}
	return out, nil
}

func writeN(stream hostio.ByteStream, buf []byte) error {
	for _, b := range buf {
		if err := stream.PutByte(b); err != nil {
			return fmt.Errorf("protocol: short write: %w", err)
		}
	}
	return nil
}
