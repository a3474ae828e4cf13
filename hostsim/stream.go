// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hostsim provides software stand-ins for the collaborators the
// spec treats as external hardware: a WebSocket-backed byte stream in
// place of the USART/USB transport, a hardware RNG backed by the OS CSPRNG,
// and a scriptable user-interface surface in place of the LCD/button panel.
package hostsim

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketStream adapts a *websocket.Conn into hostio.ByteStream. Every
// PutByte sends one binary WebSocket message and every GetByte reads one;
// a USART shift register moves one byte at a time too, so the simulator's
// granularity matches the hardware it stands in for even though a real
// network transport would batch far more efficiently.
type WebSocketStream struct {
	conn *websocket.Conn

	mu      sync.Mutex
	readBuf []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The simulator is a local development and test harness, not a
	// production device endpoint; the origin check a browser-facing
	// service would need is irrelevant to a loopback test transport.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Accept upgrades an incoming HTTP request to a WebSocket and wraps the
// connection as a WebSocketStream, simulating the device side of the
// transport.
func Accept(w http.ResponseWriter, r *http.Request) (*WebSocketStream, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("hostsim: upgrade: %w", err)
	}
	return &WebSocketStream{conn: conn}, nil
}

// Dial connects to a running simulator as the host side of the transport.
func Dial(url string) (*WebSocketStream, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("hostsim: dial: %w", err)
	}
	return &WebSocketStream{conn: conn}, nil
}

// GetByte blocks until a byte is available, reading a new WebSocket
// message when the internal buffer is drained. A message may legitimately
// carry more than one byte if the peer is a non-hostsim client batching
// writes, so the buffer drains a multi-byte message across several calls.
func (s *WebSocketStream) GetByte() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.readBuf) == 0 {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return 0, fmt.Errorf("hostsim: read: %w", err)
		}
		s.readBuf = data
	}
	b := s.readBuf[0]
	s.readBuf = s.readBuf[1:]
	return b, nil
}

// PutByte sends b as a single-byte binary WebSocket message.
func (s *WebSocketStream) PutByte(b byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteMessage(websocket.BinaryMessage, []byte{b}); err != nil {
		return fmt.Errorf("hostsim: write: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *WebSocketStream) Close() error {
	return s.conn.Close()
}
