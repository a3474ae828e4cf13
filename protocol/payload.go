// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import "encoding/binary"

// payloadWriter and payloadReader implement the simplified field-by-field
// codec payloads are encoded with: each variable-length field is a 1-byte
// length prefix followed by its bytes, each fixed-width numeric field is
// big-endian. This stands in for the protobuf codec the spec describes as
// an external collaborator (see DESIGN.md for why no protobuf dependency
// is wired).
type payloadWriter struct {
	buf []byte
}

func (w *payloadWriter) byte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *payloadWriter) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *payloadWriter) u64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *payloadWriter) str(s string) {
	w.buf = append(w.buf, byte(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *payloadWriter) bytesField(b []byte) {
	w.buf = append(w.buf, byte(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *payloadWriter) bytes() []byte {
	return w.buf
}

type payloadReader struct {
	buf []byte
	pos int
}

func newPayloadReader(b []byte) *payloadReader {
	return &payloadReader{buf: b}
}

func (r *payloadReader) byte() (byte, bool) {
	if r.pos >= len(r.buf) {
		return 0, false
	}
	b := r.buf[r.pos]
	r.pos++
	return b, true
}

func (r *payloadReader) u32() (uint32, bool) {
	if r.pos+4 > len(r.buf) {
		return 0, false
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, true
}

func (r *payloadReader) u64() (uint64, bool) {
	if r.pos+8 > len(r.buf) {
		return 0, false
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, true
}

func (r *payloadReader) str() (string, bool) {
	n, ok := r.byte()
	if !ok || r.pos+int(n) > len(r.buf) {
		return "", false
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, true
}

func (r *payloadReader) bytesField() ([]byte, bool) {
	n, ok := r.byte()
	if !ok || r.pos+int(n) > len(r.buf) {
		return nil, false
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, true
}
