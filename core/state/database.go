// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.
package state

import (
	"errors"
	"fmt"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/aionnetwork/unitychain/core/rawdb"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/rlp"
)

// ErrMissingState is returned when the world state of a root is not
// readable from the state store.
var ErrMissingState = errors.New("missing world state")

// EmptyRoot is the root of the world state without any accounts.
var EmptyRoot = crypto.Keccak256Hash(emptyStateBlob)

// emptyStateBlob is the RLP encoding of an empty account list.
var emptyStateBlob = []byte{0xc0}

// Database wraps access to the root-addressed world states kept in the
// key-value store. Decoded blobs are kept in a clean cache; presence checks
// always go to disk.
type Database struct {
	disk  ethdb.KeyValueStore
	clean *fastcache.Cache
}

// NewDatabase creates a state database over disk with a clean cache of the
// given size in bytes. A zero size disables the cache.
func NewDatabase(disk ethdb.KeyValueStore, cacheBytes int) *Database {
	db := &Database{disk: disk}
	if cacheBytes > 0 {
		db.clean = fastcache.New(cacheBytes)
	}
	return db
}

// DiskDB returns the underlying key-value store.
func (db *Database) DiskDB() ethdb.KeyValueStore {
	return db.disk
}

// HasState reports whether the world state under root can be read.
func (db *Database) HasState(root common.Hash) bool {
	if root == EmptyRoot {
		return true
	}
	return rawdb.HasStateBlob(db.disk, root)
}

// blob loads the encoded state under root.
func (db *Database) blob(root common.Hash) ([]byte, error) {
	if root == EmptyRoot {
		return emptyStateBlob, nil
	}
	if db.clean != nil {
		if enc, ok := db.clean.HasGet(nil, root[:]); ok {
			return enc, nil
		}
	}
	enc := rawdb.ReadStateBlob(db.disk, root)
	if len(enc) == 0 {
		return nil, fmt.Errorf("%w: root %x", ErrMissingState, root)
	}
	if crypto.Keccak256Hash(enc) != root {
		return nil, fmt.Errorf("%w: root %x has corrupt content", ErrMissingState, root)
	}
	if db.clean != nil {
		db.clean.Set(root[:], enc)
	}
	return enc, nil
}

// write stages the encoded state under root into w. The clean cache is only
// filled once the blob is read back from disk.
func (db *Database) write(w ethdb.KeyValueWriter, root common.Hash, enc []byte) error {
	if root == EmptyRoot {
		return nil
	}
	return rawdb.WriteStateBlob(w, root, enc)
}

// accountRLP is the consensus encoding of one account inside a state blob.
type accountRLP struct {
	Address common.Address
	Account Account
}

func decodeAccounts(enc []byte) ([]accountRLP, error) {
	var accounts []accountRLP
	if err := rlp.DecodeBytes(enc, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}
