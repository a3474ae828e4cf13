// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hostsim

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebSocketStreamRoundTrip(t *testing.T) {
	serverReady := make(chan *WebSocketStream, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := Accept(w, r)
		if err != nil {
			t.Errorf("Accept: %v", err)
			return
		}
		serverReady <- s
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	client, err := Dial(url)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	server := <-serverReady
	defer server.Close()

	want := []byte{0x01, 0x02, 0xFF, 0x00}
	go func() {
		for _, b := range want {
			if err := client.PutByte(b); err != nil {
				t.Errorf("PutByte: %v", err)
				return
			}
		}
	}()

	for i, wb := range want {
		got, err := server.GetByte()
		if err != nil {
			t.Fatalf("GetByte(%d): %v", i, err)
		}
		if got != wb {
			t.Fatalf("byte %d = %#x, want %#x", i, got, wb)
		}
	}
}

func TestOSRandomSourceReturnsDistinctValues(t *testing.T) {
	var r OSRandomSource
	a, ok := r.Random256()
	if !ok {
		t.Fatal("Random256 reported failure")
	}
	b, ok := r.Random256()
	if !ok {
		t.Fatal("Random256 reported failure")
	}
	if a == b {
		t.Fatal("two draws produced identical entropy")
	}
}

func TestAutoApproveUINeverDeniesAndReturnsScriptedString(t *testing.T) {
	ui := &AutoApproveUI{NextString: "hunter2"}
	if ui.UserDenied("format") {
		t.Fatal("AutoApproveUI denied a request")
	}
	s, err := ui.GetString(0, 0)
	if err != nil || s != "hunter2" {
		t.Fatalf("GetString = %q, %v", s, err)
	}
	// The scripted string is consumed once.
	s2, _ := ui.GetString(0, 0)
	if s2 != "" {
		t.Fatalf("GetString second call = %q, want empty", s2)
	}
}
