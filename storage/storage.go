// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage is the non-volatile partition abstraction described by
// the spec: read/write/flush over a small set of named partitions, backed
// here by a goleveldb instance standing in for the raw flash driver (an
// explicit external collaborator the spec puts out of scope). A
// goleveldb-backed Store is also used directly by the test suite and by
// the cmd/hwwalletd simulator, in place of hardware flash.
package storage

import (
	"encoding/binary"
	"sync"

	"github.com/EXCCoin/hwwallet-core/internal/hwlog"
	"github.com/syndtr/goleveldb/leveldb"
)

// Partition names the two non-volatile regions the spec requires.
type Partition int

const (
	// Global holds the device UUID and entropy-pool health-check state.
	Global Partition = iota
	// Accounts holds wallet records, one per slot, 160 bytes apart.
	Accounts
)

// ErrorKind enumerates the result of a Store operation.
type ErrorKind int

const (
	Ok ErrorKind = iota
	InvalidAddress
	IoError
)

func (k ErrorKind) Error() string {
	switch k {
	case Ok:
		return "ok"
	case InvalidAddress:
		return "invalid address"
	case IoError:
		return "io error"
	default:
		return "unknown storage error"
	}
}

// partitionCapacity bounds each partition so that InvalidAddress can be
// detected without asking the backing store; a real flash device would
// define these from its linker script.
const (
	globalCapacity   = 4096
	accountsCapacity = 160 * 256 // MaxWalletSlots * WalletRecordSize
)

// Store is the partitioned non-volatile storage abstraction. Writes are
// buffered in memory until Flush commits them to the backing database,
// matching the spec's requirement that durability-dependent operations
// call Flush explicitly.
type Store struct {
	mu      sync.Mutex
	db      *leveldb.DB
	pending map[string][]byte
}

// Open creates or opens a Store backed by a goleveldb database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, IoError
	}
	return &Store{db: db, pending: make(map[string][]byte)}, nil
}

// Close releases the backing database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func capacityOf(p Partition) int {
	switch p {
	case Global:
		return globalCapacity
	case Accounts:
		return accountsCapacity
	default:
		return 0
	}
}

func dbKey(p Partition, offset uint32) []byte {
	key := make([]byte, 5)
	key[0] = byte(p)
	binary.BigEndian.PutUint32(key[1:], offset)
	return key
}

// Read copies length bytes starting at offset within partition p into buf.
// Uncommitted buffered writes from a prior Write are visible to a
// subsequent Read even before Flush, matching how a real write-combining
// flash cache behaves.
func (s *Store) Read(p Partition, offset uint32, buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	length := uint32(len(buf))
	if offset+length > uint32(capacityOf(p)) {
		return InvalidAddress
	}

	for i := uint32(0); i < length; i++ {
		key := dbKey(p, offset+i)
		if v, ok := s.pending[string(key)]; ok {
			buf[i] = v[0]
			continue
		}
		v, err := s.db.Get(key, nil)
		if err == leveldb.ErrNotFound {
			buf[i] = 0
			continue
		}
		if err != nil {
			return IoError
		}
		buf[i] = v[0]
	}
	return nil
}

// Write buffers length bytes from buf to be stored at offset within
// partition p. The write is not guaranteed durable until Flush is called.
func (s *Store) Write(p Partition, offset uint32, buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	length := uint32(len(buf))
	if offset+length > uint32(capacityOf(p)) {
		return InvalidAddress
	}

	for i, b := range buf {
		key := dbKey(p, offset+uint32(i))
		s.pending[string(key)] = []byte{b}
	}
	return nil
}

// Flush commits every buffered write to the backing database. Callers
// MUST call Flush before any operation whose correctness depends on
// durability: version tag updates, checksum updates, address-count
// updates.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}
	batch := new(leveldb.Batch)
	for k, v := range s.pending {
		batch.Put([]byte(k), v)
	}
	if err := s.db.Write(batch, nil); err != nil {
		hwlog.Stor.Errorf("flush failed: %v", err)
		return IoError
	}
	s.pending = make(map[string][]byte)
	return nil
}
